package dto

// ConfigRequest 店铺配置保存请求
type ConfigRequest struct {
	URL            string  `json:"url" binding:"required"`
	ConsumerKey    string  `json:"consumer_key" binding:"required"`
	ConsumerSecret string  `json:"consumer_secret" binding:"required"`
	TaxRate        float64 `json:"tax_rate"`
	GatewayFee     float64 `json:"gateway_fee"`
	FixedFee       float64 `json:"fixed_fee"`
}

// ConfigResponse 店铺配置响应
type ConfigResponse struct {
	URL            string  `json:"url"`
	ConsumerKey    string  `json:"consumer_key"`
	ConsumerSecret string  `json:"consumer_secret"`
	TaxRate        float64 `json:"tax_rate"`
	GatewayFee     float64 `json:"gateway_fee"`
	FixedFee       float64 `json:"fixed_fee"`
}
