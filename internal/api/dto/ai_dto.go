package dto

// AnalyzeRequest 商品健康度分析请求
type AnalyzeRequest struct {
	ProductName string  `json:"productName" binding:"required"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Margin      float64 `json:"margin"`
	Markup      float64 `json:"markup"`
}

// ProductAnalysis 分析结论
type ProductAnalysis struct {
	Status         string `json:"status"` // healthy / warning / critical
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}
