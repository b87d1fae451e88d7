package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// OraclePrice price of quote denominated in base
type OraclePrice struct {
	Rate decimal.Decimal `json:"rate"`
	// unix seconds
	LastUpdatedBase  int64 `json:"last_updated_base"`
	LastUpdatedQuote int64 `json:"last_updated_quote"`
}

// PriceOracle oracle collaborator
type PriceOracle interface {
	// Price queries oracle for the price of quote in base
	Price(ctx context.Context, oracle, base, quote string) (*OraclePrice, error)
}
