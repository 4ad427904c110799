package model

import "time"

// StoreConfigID 配置单例行 ID，整个系统只有一行配置
const StoreConfigID = 1

// StoreConfig 店铺配置
// WooCommerce 地址 + REST 凭证 + 费率参数，全部由运营在表单里维护
type StoreConfig struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	URL            string  `gorm:"size:255" json:"url"`
	ConsumerKey    string  `gorm:"size:255" json:"consumer_key"`
	ConsumerSecret string  `gorm:"size:255" json:"consumer_secret"`
	TaxRate        float64 `gorm:"default:0" json:"tax_rate"`    // 税率 (%)
	GatewayFee     float64 `gorm:"default:0" json:"gateway_fee"` // 支付网关费率 (%)
	FixedFee       float64 `gorm:"default:0" json:"fixed_fee"`   // 每单固定手续费

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoreConfig) TableName() string {
	return "store_config"
}

// IsComplete 同步所需的必填项是否齐全
func (c *StoreConfig) IsComplete() bool {
	return c != nil && c.URL != "" && c.ConsumerKey != "" && c.ConsumerSecret != ""
}
