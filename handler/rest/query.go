package rest

import (
	"net/http"
	"overseer/core"
	"overseer/handler/render"
	"overseer/handler/views"
)

func loanHandler(codec core.AddressCodec, overseers core.OverseerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		borrower, err := borrowerParam(codec, r)
		if err != nil {
			render.Error(w, err)
			return
		}

		loan, err := overseers.Loan(r.Context(), borrower)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LoanView(codec, loan))
	}
}

func borrowLimitHandler(codec core.AddressCodec, overseers core.OverseerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		borrower, err := borrowerParam(codec, r)
		if err != nil {
			render.Error(w, err)
			return
		}

		loan, limit, err := overseers.BorrowLimit(r.Context(), borrower)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.BorrowLimitView(codec, loan, limit))
	}
}

func whitelistHandler(codec core.AddressCodec, whitelists core.WhitelistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := whitelists.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		vs := make([]*views.WhitelistItem, 0, len(items))
		for _, item := range items {
			vs = append(vs, views.WhitelistItemView(codec, item))
		}

		render.JSON(w, vs)
	}
}

func protocolHandler(codec core.AddressCodec, protocols core.ProtocolConfigStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := protocols.Get(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ProtocolView(codec, cfg))
	}
}
