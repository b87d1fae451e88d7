package rest

import (
	"net/http"
	"overseer/core"
	"overseer/handler/auth"
	"overseer/handler/metrics"
	"overseer/handler/render"
	"overseer/handler/views"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	codec core.AddressCodec,
	overseers core.OverseerService,
	whitelists core.WhitelistStore,
	protocols core.ProtocolConfigStore,
	m *metrics.Metrics,
) http.Handler {
	router := chi.NewRouter()
	router.Use(auth.HandleAuthentication(codec))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"msg":"not found"}`))
	})

	router.Route("/loans", func(r chi.Router) {
		r.With(auth.RequireSender).Post("/lock", lockHandler(codec, overseers, m))
		r.With(auth.RequireSender).Post("/unlock", unlockHandler(codec, overseers, m))
		r.With(auth.RequireSender).Post("/borrow", borrowHandler(overseers, m))
		r.Post("/liquidate", liquidateHandler(codec, overseers, m))

		r.Get("/{borrower}", loanHandler(codec, overseers))
		r.Get("/{borrower}/borrow-limit", borrowLimitHandler(codec, overseers))
	})

	router.Get("/whitelist", whitelistHandler(codec, whitelists))
	router.Get("/protocol", protocolHandler(codec, protocols))

	return router
}

func borrowerParam(codec core.AddressCodec, r *http.Request) (core.Address, error) {
	return codec.Canonical(chi.URLParam(r, "borrower"))
}

func renderAction(w http.ResponseWriter, m *metrics.Metrics, action string, resp *core.Response, err error) {
	m.ObserveAction(action, err)

	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, views.ResponseView(resp))
}
