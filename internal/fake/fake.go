// Package fake provides in-memory collaborators for tests.
package fake

import (
	"context"
	"fmt"
	"overseer/core"
	"overseer/pkg/number"
	"sync"
)

// Oracle in-memory price oracle keyed by (base, quote)
type Oracle struct {
	mu     sync.Mutex
	prices map[[2]string]core.OraclePrice
	Calls  int
}

// NewOracle empty oracle
func NewOracle() *Oracle {
	return &Oracle{prices: map[[2]string]core.OraclePrice{}}
}

// Set price of quote in base
func (o *Oracle) Set(base, quote, rate string, updatedAt int64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.prices[[2]string{base, quote}] = core.OraclePrice{
		Rate:             number.Decimal(rate),
		LastUpdatedBase:  updatedAt,
		LastUpdatedQuote: updatedAt,
	}
}

// Remove make the pair unavailable
func (o *Oracle) Remove(base, quote string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.prices, [2]string{base, quote})
}

func (o *Oracle) Price(ctx context.Context, oracle, base, quote string) (*core.OraclePrice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.Calls++
	price, ok := o.prices[[2]string{base, quote}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", core.ErrPriceUnavailable, base, quote)
	}

	return &price, nil
}

// Whitelist in-memory whitelist store
type Whitelist struct {
	mu    sync.Mutex
	items map[string]*core.WhitelistItem
}

// NewWhitelist empty whitelist
func NewWhitelist() *Whitelist {
	return &Whitelist{items: map[string]*core.WhitelistItem{}}
}

// Set whitelist asset with ltv
func (w *Whitelist) Set(asset core.Address, ltv string) {
	_ = w.Save(context.Background(), &core.WhitelistItem{
		Collateral: asset.Hex(),
		LTV:        number.Decimal(ltv),
	})
}

func (w *Whitelist) Save(ctx context.Context, item *core.WhitelistItem) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if current, ok := w.items[item.Collateral]; ok {
		item.ID = current.ID
	} else {
		item.ID = uint64(len(w.items) + 1)
	}

	w.items[item.Collateral] = item
	return nil
}

func (w *Whitelist) Find(ctx context.Context, collateral core.Address) (*core.WhitelistItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if item, ok := w.items[collateral.Hex()]; ok {
		return item, nil
	}

	return &core.WhitelistItem{}, nil
}

func (w *Whitelist) All(ctx context.Context) ([]*core.WhitelistItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := make([]*core.WhitelistItem, 0, len(w.items))
	for _, item := range w.items {
		items = append(items, item)
	}

	return items, nil
}

// Protocol in-memory protocol config store
type Protocol struct {
	Config *core.ProtocolConfig
}

func (p *Protocol) Get(ctx context.Context) (*core.ProtocolConfig, error) {
	if p.Config == nil {
		return nil, core.ErrConfigNotFound
	}

	cfg := *p.Config
	return &cfg, nil
}

func (p *Protocol) Save(ctx context.Context, cfg *core.ProtocolConfig) error {
	c := *cfg
	p.Config = &c
	return nil
}

// Address deterministic address for tests
func Address(b byte) core.Address {
	var addr core.Address
	for i := range addr {
		addr[i] = b
	}

	return addr
}
