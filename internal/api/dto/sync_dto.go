package dto

// SyncRequest 同步触发请求，force=true 时全量同步
type SyncRequest struct {
	Force bool `json:"force"`
}

// SyncResult 同步完成响应
type SyncResult struct {
	Success       bool `json:"success"`
	ProductsCount int  `json:"productsCount"`
	OrdersCount   int  `json:"ordersCount"`
}

// ProgressMessage SSE 进度帧
type ProgressMessage struct {
	Message string `json:"message"`
}
