package dto

// OrderView 订单列表条目，镜像数据 + 费用拆解后的利润
type OrderView struct {
	ID            int64   `json:"id"`
	Number        string  `json:"number"`
	Status        string  `json:"status"`
	DateCreated   string  `json:"date_created"`
	Total         float64 `json:"total"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	TotalCost     float64 `json:"total_cost"`
	Taxes         float64 `json:"taxes"`
	GatewayFees   float64 `json:"gatewayFees"`
	Profit        float64 `json:"profit"`
	ItemsCount    int     `json:"items_count"`
}
