package woo

// ==================== WooCommerce REST 响应结构 ====================
// 对应 /wp-json/wc/v3 返回的原始 JSON，字段只保留业务需要的部分

// ProductData 商品数据 (GET /wp-json/wc/v3/products)
type ProductData struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	SKU           string         `json:"sku"`
	Price         string         `json:"price"` // Woo 返回字符串金额，原样保留
	RegularPrice  string         `json:"regular_price"`
	SalePrice     string         `json:"sale_price"`
	StockQuantity int            `json:"stock_quantity"`
	Permalink     string         `json:"permalink"`
	DateModified  string         `json:"date_modified"`
	Images        []ImageData    `json:"images"`
	Categories    []CategoryData `json:"categories"`
}

// ImageData 商品图片
type ImageData struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// CategoryData 商品分类
type CategoryData struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderData 订单数据 (GET /wp-json/wc/v3/orders)
type OrderData struct {
	ID          int64          `json:"id"`
	Number      string         `json:"number"`
	Status      string         `json:"status"`
	DateCreated string         `json:"date_created"` // 2006-01-02T15:04:05 格式
	Total       string         `json:"total"`
	Billing     BillingData    `json:"billing"`
	LineItems   []LineItemData `json:"line_items"`
}

// BillingData 账单联系人
type BillingData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// LineItemData 订单行项目
// 成本核算只依赖 product_id 和 quantity
type LineItemData struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}
