package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"overseer/core"

	"github.com/fox-one/pkg/property"
)

const configKey = "overseer:protocol_config"

type keyValue interface {
	get(ctx context.Context, key string) (string, error)
	save(ctx context.Context, key, value string) error
}

type propertyKeyValue struct {
	properties property.Store
}

func (p propertyKeyValue) get(ctx context.Context, key string) (string, error) {
	v, err := p.properties.Get(ctx, key)
	if err != nil {
		return "", err
	}

	return v.String(), nil
}

func (p propertyKeyValue) save(ctx context.Context, key, value string) error {
	return p.properties.Save(ctx, key, value)
}

type protocolStore struct {
	kv keyValue
}

// New protocol config store kept as a single property
func New(properties property.Store) core.ProtocolConfigStore {
	return &protocolStore{kv: propertyKeyValue{properties: properties}}
}

func (s *protocolStore) Get(ctx context.Context) (*core.ProtocolConfig, error) {
	raw, err := s.kv.get(ctx, configKey)
	if err != nil {
		return nil, err
	}

	if raw == "" {
		return nil, core.ErrConfigNotFound
	}

	var cfg core.ProtocolConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decode protocol config: %w", err)
	}

	return &cfg, nil
}

func (s *protocolStore) Save(ctx context.Context, cfg *core.ProtocolConfig) error {
	if cfg.BaseDenom == "" || cfg.MarketContract.IsZero() || cfg.OracleContract.IsZero() {
		return fmt.Errorf("%w: incomplete protocol config", core.ErrInvalidArgument)
	}

	bs, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return s.kv.save(ctx, configKey, string(bs))
}
