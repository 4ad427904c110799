package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"woo_dash_v1_202608/internal/model"
)

// CostRepository 商品成本仓储
type CostRepository interface {
	// Upsert 按 product_id 写入成本，已存在则覆盖
	Upsert(ctx context.Context, productID int64, cost float64) error
	// BatchUpsert 批量写入，导入表格用
	BatchUpsert(ctx context.Context, costs []model.ProductCost) error
	// GetByProductID 未录入成本时返回 (nil, nil)
	GetByProductID(ctx context.Context, productID int64) (*model.ProductCost, error)
	// CostMap 全量成本映射 product_id -> cost
	CostMap(ctx context.Context) (map[int64]float64, error)
}

type costRepository struct {
	db *gorm.DB
}

func NewCostRepository(db *gorm.DB) CostRepository {
	return &costRepository{db: db}
}

func (r *costRepository) Upsert(ctx context.Context, productID int64, cost float64) error {
	record := model.ProductCost{ProductID: productID, Cost: cost}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cost", "updated_at"}),
	}).Create(&record).Error
}

func (r *costRepository) BatchUpsert(ctx context.Context, costs []model.ProductCost) error {
	if len(costs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cost", "updated_at"}),
	}).Create(&costs).Error
}

func (r *costRepository) GetByProductID(ctx context.Context, productID int64) (*model.ProductCost, error) {
	var record model.ProductCost
	err := r.db.WithContext(ctx).First(&record, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *costRepository) CostMap(ctx context.Context) (map[int64]float64, error) {
	var records []model.ProductCost
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	result := make(map[int64]float64, len(records))
	for _, record := range records {
		result[record.ProductID] = record.Cost
	}
	return result, nil
}
