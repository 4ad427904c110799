package model

import (
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Order 订单镜像
// 只镜像 processing / on-hold / completed 三种状态的订单
type Order struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	WooID         int64          `gorm:"uniqueIndex;not null" json:"woo_id"`
	Number        string         `gorm:"size:50" json:"number"`
	Status        string         `gorm:"size:50;index" json:"status"`
	DateCreated   time.Time      `gorm:"index" json:"date_created"`
	Total         string         `gorm:"size:50" json:"total"` // 订单总额，保留原始字符串
	CustomerName  string         `gorm:"size:255" json:"customer_name"`
	CustomerEmail string         `gorm:"size:255" json:"customer_email"`
	CustomerPhone string         `gorm:"size:50" json:"customer_phone"`
	LineItems     datatypes.JSON `gorm:"type:jsonb" json:"line_items"`
	LastSyncedAt  *time.Time     `json:"last_synced_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderLineItem 订单行，存进 LineItems JSON 字段
type OrderLineItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// LineItemList 解析订单行，JSON 损坏时返回空列表
func (o *Order) LineItemList() []OrderLineItem {
	var items []OrderLineItem
	if len(o.LineItems) == 0 {
		return items
	}
	if err := json.Unmarshal(o.LineItems, &items); err != nil {
		return nil
	}
	return items
}

// TotalValue 解析订单总额，非法值按 0 处理
func (o *Order) TotalValue() float64 {
	v, err := strconv.ParseFloat(o.Total, 64)
	if err != nil {
		return 0
	}
	return v
}
