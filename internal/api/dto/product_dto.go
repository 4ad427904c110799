package dto

// ProductImage 商品图片
type ProductImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// ProductView 商品列表条目，镜像数据 + 成本覆盖 + 利润指标
type ProductView struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	SKU           string         `json:"sku"`
	Price         string         `json:"price"`
	RegularPrice  string         `json:"regular_price"`
	SalePrice     string         `json:"sale_price"`
	StockQuantity int            `json:"stock_quantity"`
	Categories    []string       `json:"categories"`
	Images        []ProductImage `json:"images"`
	Permalink     string         `json:"permalink"`
	Cost          float64        `json:"cost"`
	Margin        float64        `json:"margin"`
	Markup        float64        `json:"markup"`
	Health        string         `json:"health"`
}

// ProductListResponse 商品分页响应
type ProductListResponse struct {
	Products []ProductView `json:"products"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PerPage  int           `json:"per_page"`
}

// CostRequest 成本录入请求
type CostRequest struct {
	Cost float64 `json:"cost"`
}

// ImportResult 成本表格导入响应
type ImportResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}
