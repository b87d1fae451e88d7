package whitelist

import (
	"context"
	"overseer/core"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache read through cache in front of store. Only whitelisted items are cached so a
// newly whitelisted collateral is visible immediately.
func Cache(store core.WhitelistStore, size int, exp time.Duration) core.WhitelistStore {
	return &cacheWhitelistStore{
		WhitelistStore: store,
		cache:          gcache.New(size).LRU().Expiration(exp).Build(),
		sf:             &singleflight.Group{},
	}
}

type cacheWhitelistStore struct {
	core.WhitelistStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheWhitelistStore) Save(ctx context.Context, item *core.WhitelistItem) error {
	if err := s.WhitelistStore.Save(ctx, item); err != nil {
		return err
	}

	s.cache.Remove(item.Collateral)
	return nil
}

func (s *cacheWhitelistStore) Find(ctx context.Context, collateral core.Address) (*core.WhitelistItem, error) {
	key := collateral.Hex()
	if v, err := s.cache.Get(key); err == nil {
		if item, ok := v.(*core.WhitelistItem); ok {
			return item, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		item, err := s.WhitelistStore.Find(ctx, collateral)
		if err != nil {
			return nil, err
		}

		if item.ID > 0 {
			_ = s.cache.Set(key, item)
		}

		return item, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.WhitelistItem), nil
}
