package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"woo_dash_v1_202608/internal/model"
)

// ConfigRepository 店铺配置仓储
type ConfigRepository interface {
	// Get 读取配置单例，未配置时返回 (nil, nil)
	Get(ctx context.Context) (*model.StoreConfig, error)
	// Save 覆盖写配置单例
	Save(ctx context.Context, cfg *model.StoreConfig) error
}

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(ctx context.Context) (*model.StoreConfig, error) {
	var cfg model.StoreConfig
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", model.StoreConfigID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) Save(ctx context.Context, cfg *model.StoreConfig) error {
	cfg.ID = model.StoreConfigID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"url", "consumer_key", "consumer_secret",
			"tax_rate", "gateway_fee", "fixed_fee", "updated_at",
		}),
	}).Create(cfg).Error
}
