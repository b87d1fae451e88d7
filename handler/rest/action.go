package rest

import (
	"fmt"
	"net/http"
	"overseer/core"
	"overseer/handler/metrics"
	"overseer/handler/param"
	"overseer/handler/render"
	"overseer/handler/request"

	"github.com/holiman/uint256"
)

type collateralParam struct {
	Asset  string `json:"asset" valid:"required"`
	Amount string `json:"amount" valid:"required,numeric"`
}

func parseAmount(s string) (uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("%w: amount %q: %v", core.ErrInvalidArgument, s, err)
	}

	return *v, nil
}

func parseCollaterals(codec core.AddressCodec, params []collateralParam) (core.Collaterals, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: no collateral", core.ErrInvalidArgument)
	}

	cs := make(core.Collaterals, 0, len(params))
	for _, p := range params {
		asset, err := codec.Canonical(p.Asset)
		if err != nil {
			return nil, err
		}

		amount, err := parseAmount(p.Amount)
		if err != nil {
			return nil, err
		}

		cs = append(cs, core.Collateral{Asset: asset, Amount: amount})
	}

	return cs, nil
}

func lockHandler(codec core.AddressCodec, overseers core.OverseerService, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sender, _ := request.SenderFrom(ctx)

		var params struct {
			Deposits []collateralParam `json:"deposits"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		deposits, err := parseCollaterals(codec, params.Deposits)
		if err != nil {
			render.Error(w, err)
			return
		}

		resp, err := overseers.LockCollateral(ctx, sender, deposits)
		renderAction(w, m, "lock_collateral", resp, err)
	}
}

func unlockHandler(codec core.AddressCodec, overseers core.OverseerService, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sender, _ := request.SenderFrom(ctx)

		var params struct {
			Withdrawals []collateralParam `json:"withdrawals"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		withdrawals, err := parseCollaterals(codec, params.Withdrawals)
		if err != nil {
			render.Error(w, err)
			return
		}

		resp, err := overseers.UnlockCollateral(ctx, sender, withdrawals)
		renderAction(w, m, "unlock_collateral", resp, err)
	}
}

func borrowHandler(overseers core.OverseerService, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sender, _ := request.SenderFrom(ctx)

		var params struct {
			Amount string `json:"amount" valid:"required,numeric"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		resp, err := overseers.Borrow(ctx, sender, amount)
		renderAction(w, m, "borrow", resp, err)
	}
}

func liquidateHandler(codec core.AddressCodec, overseers core.OverseerService, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		borrower, err := codec.Canonical(params.Borrower)
		if err != nil {
			render.Error(w, err)
			return
		}

		resp, err := overseers.LiquidateCollateral(r.Context(), borrower)
		renderAction(w, m, "liquidate_collateral", resp, err)
	}
}
