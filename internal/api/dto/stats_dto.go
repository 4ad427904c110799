package dto

// StatsResponse 仪表盘统计
type StatsResponse struct {
	Period        string  `json:"period"` // 30 / 90 / all
	ProductsCount int64   `json:"products_count"`
	OrdersCount   int     `json:"orders_count"`
	Revenue       float64 `json:"revenue"`
	Profit        float64 `json:"profit"`
	AvgMargin     float64 `json:"avg_margin"`
}
