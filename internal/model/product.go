package model

import (
	"strconv"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Product 商品镜像
// 以 WooCommerce 商品 ID (woo_id) 为业务主键，同步时整行覆盖
type Product struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	WooID         int64          `gorm:"uniqueIndex;not null" json:"woo_id"`
	Name          string         `gorm:"size:500" json:"name"`
	SKU           string         `gorm:"size:100" json:"sku"`
	Price         string         `gorm:"size:50" json:"price"`         // 当前售价，保留原始字符串
	RegularPrice  string         `gorm:"size:50" json:"regular_price"` // 原价
	SalePrice     string         `gorm:"size:50" json:"sale_price"`    // 促销价
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	Categories    pq.StringArray `gorm:"type:text[]" json:"categories"`
	Images        datatypes.JSON `gorm:"type:jsonb" json:"images"` // [{"id":..,"src":..}]
	Permalink     string         `gorm:"size:500" json:"permalink"`
	LastSyncedAt  *time.Time     `json:"last_synced_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// PriceValue 解析售价，空串或非法值按 0 处理
func (p *Product) PriceValue() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// ProductCost 成本覆盖层
// 成本是本地录入的数据，独立成表，商品镜像重刷不会碰它
type ProductCost struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"uniqueIndex;not null" json:"product_id"` // 对应 Product.WooID
	Cost      float64   `gorm:"default:0" json:"cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductCost) TableName() string {
	return "product_costs"
}
