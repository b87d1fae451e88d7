package whitelist

import (
	"context"
	"overseer/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type whitelistStore struct {
	db *db.DB
}

// New new whitelist store
func New(db *db.DB) core.WhitelistStore {
	return &whitelistStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.WhitelistItem{})
		if err := tx.AutoMigrate(core.WhitelistItem{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *whitelistStore) Save(ctx context.Context, item *core.WhitelistItem) error {
	return s.db.Tx(func(tx *db.DB) error {
		var current core.WhitelistItem
		err := tx.Update().Where("collateral=?", item.Collateral).First(&current).Error
		if gorm.IsRecordNotFoundError(err) {
			return tx.Update().Create(item).Error
		}

		if err != nil {
			return err
		}

		version := current.Version
		item.ID = current.ID
		item.Version = version + 1
		return tx.Update().Model(core.WhitelistItem{}).
			Where("collateral=? and version=?", item.Collateral, version).
			Updates(map[string]interface{}{
				"name":    item.Name,
				"symbol":  item.Symbol,
				"ltv":     item.LTV,
				"version": item.Version,
			}).Error
	})
}

func (s *whitelistStore) Find(ctx context.Context, collateral core.Address) (*core.WhitelistItem, error) {
	var item core.WhitelistItem
	if err := s.db.View().Where("collateral=?", collateral.Hex()).First(&item).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &item, nil
		}

		return nil, err
	}

	return &item, nil
}

func (s *whitelistStore) All(ctx context.Context) ([]*core.WhitelistItem, error) {
	var items []*core.WhitelistItem
	if err := s.db.View().Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
