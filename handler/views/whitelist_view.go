package views

import (
	"overseer/core"

	"github.com/shopspring/decimal"
)

// WhitelistItem whitelist view
type WhitelistItem struct {
	Collateral string          `json:"collateral"`
	Name       string          `json:"name"`
	Symbol     string          `json:"symbol"`
	LTV        decimal.Decimal `json:"ltv"`
}

// Protocol protocol config view
type Protocol struct {
	MarketContract string `json:"market_contract"`
	OracleContract string `json:"oracle_contract"`
	BaseDenom      string `json:"base_denom"`
}

// WhitelistItemView render whitelist item with a human collateral address
func WhitelistItemView(codec core.AddressCodec, item *core.WhitelistItem) *WhitelistItem {
	v := &WhitelistItem{
		Collateral: item.Collateral,
		Name:       item.Name,
		Symbol:     item.Symbol,
		LTV:        item.LTV,
	}

	if addr, err := item.Address(); err == nil {
		v.Collateral = codec.MustHuman(addr)
	}

	return v
}

// ProtocolView render protocol config
func ProtocolView(codec core.AddressCodec, cfg *core.ProtocolConfig) *Protocol {
	return &Protocol{
		MarketContract: codec.MustHuman(cfg.MarketContract),
		OracleContract: codec.MustHuman(cfg.OracleContract),
		BaseDenom:      cfg.BaseDenom,
	}
}
