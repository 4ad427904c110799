package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"woo_dash_v1_202608/internal/model"
)

// OrderRepository 订单镜像仓储
type OrderRepository interface {
	BatchUpsert(ctx context.Context, orders []model.Order) error
	// ListAll 全量查询，按下单时间倒序
	ListAll(ctx context.Context) ([]model.Order, error)
	// ListSince 查询某时间点之后的订单，统计用；since 为 nil 时等价于 ListAll
	ListSince(ctx context.Context, since *time.Time) ([]model.Order, error)
	LastSyncTime(ctx context.Context) (*time.Time, error)
	Count(ctx context.Context) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) BatchUpsert(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "woo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"number", "status", "date_created", "total",
			"customer_name", "customer_email", "customer_phone",
			"line_items", "last_synced_at", "updated_at",
		}),
	}).Create(&orders).Error
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Order("date_created DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListSince(ctx context.Context, since *time.Time) ([]model.Order, error) {
	query := r.db.WithContext(ctx).Order("date_created DESC")
	if since != nil {
		query = query.Where("date_created >= ?", *since)
	}
	var orders []model.Order
	err := query.Find(&orders).Error
	return orders, err
}

func (r *orderRepository) LastSyncTime(ctx context.Context) (*time.Time, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("last_synced_at IS NOT NULL").
		Order("last_synced_at DESC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order.LastSyncedAt, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}
