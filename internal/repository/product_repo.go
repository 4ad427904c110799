package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"woo_dash_v1_202608/internal/model"
)

// ProductRepository 商品镜像仓储
type ProductRepository interface {
	// BatchUpsert 按 woo_id 批量写入，已存在的行覆盖镜像字段
	BatchUpsert(ctx context.Context, products []model.Product) error
	// List 分页查询，按 woo_id 升序
	List(ctx context.Context, page, pageSize int) ([]model.Product, int64, error)
	// ListAll 全量查询，导出用
	ListAll(ctx context.Context) ([]model.Product, error)
	GetByWooID(ctx context.Context, wooID int64) (*model.Product, error)
	// LastSyncTime 最近一次同步时间，空表返回 nil
	LastSyncTime(ctx context.Context) (*time.Time, error)
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) BatchUpsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "woo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "sku", "price", "regular_price", "sale_price",
			"stock_quantity", "categories", "images", "permalink",
			"last_synced_at", "updated_at",
		}),
	}).Create(&products).Error
}

func (r *productRepository) List(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("woo_id ASC").Offset(offset).Limit(pageSize).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("woo_id ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetByWooID(ctx context.Context, wooID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "woo_id = ?", wooID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) LastSyncTime(ctx context.Context) (*time.Time, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("last_synced_at IS NOT NULL").
		Order("last_synced_at DESC").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product.LastSyncedAt, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}
