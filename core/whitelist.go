package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WhitelistItem collateral asset accepted by the protocol
type WhitelistItem struct {
	ID uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	// canonical collateral address, hex encoded
	Collateral string `sql:"size:40;unique_index:whitelist_collateral_idx" json:"collateral"`
	Name       string `sql:"size:64" json:"name"`
	Symbol     string `sql:"size:20" json:"symbol"`
	// loan to value ratio in [0, 1]
	LTV       decimal.Decimal `sql:"type:decimal(38,18)" json:"ltv"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Address canonical collateral address
func (w *WhitelistItem) Address() (Address, error) {
	return AddressFromHex(w.Collateral)
}

// WhitelistStore whitelist store interface
type WhitelistStore interface {
	Save(ctx context.Context, item *WhitelistItem) error
	// Find returns an item with ID == 0 when the collateral is not whitelisted
	Find(ctx context.Context, collateral Address) (*WhitelistItem, error)
	All(ctx context.Context) ([]*WhitelistItem, error)
}
