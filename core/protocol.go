package core

import "context"

// ProtocolConfig protocol wide settings, written once at deployment
type ProtocolConfig struct {
	MarketContract Address `json:"market_contract"`
	OracleContract Address `json:"oracle_contract"`
	BaseDenom      string  `json:"base_denom"`
}

// ProtocolConfigStore protocol config singleton
type ProtocolConfigStore interface {
	// Get fails with ErrConfigNotFound before the first Save
	Get(ctx context.Context) (*ProtocolConfig, error)
	Save(ctx context.Context, cfg *ProtocolConfig) error
}
