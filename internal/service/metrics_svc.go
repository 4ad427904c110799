package service

import (
	"context"
	"fmt"
	"time"

	"woo_dash_v1_202608/internal/api/dto"
	"woo_dash_v1_202608/internal/model"
	"woo_dash_v1_202608/internal/repository"
)

// 健康度分档阈值（毛利率百分比）
const (
	MarginHealthyThreshold  = 30.0
	MarginCriticalThreshold = 0.0
)

// 健康度档位
const (
	HealthHealthy  = "healthy"
	HealthWarning  = "warning"
	HealthCritical = "critical"
)

// ==================== 纯计算 ====================

// ProductMargin 毛利率 (price-cost)/price*100，成本未录入按 0
func ProductMargin(price, cost float64) float64 {
	if cost <= 0 || price <= 0 {
		return 0
	}
	return (price - cost) / price * 100
}

// ProductMarkup 加价倍数 price/cost，成本未录入按 0
func ProductMarkup(price, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return price / cost
}

// HealthBucket 按毛利率分档
func HealthBucket(margin float64) string {
	switch {
	case margin >= MarginHealthyThreshold:
		return HealthHealthy
	case margin <= MarginCriticalThreshold:
		return HealthCritical
	default:
		return HealthWarning
	}
}

// OrderProfit 订单净利润 = 总额 - 商品成本 - 税费 - 网关费
// 成本按行项目数量乘以录入成本累加，未录入成本的商品按 0
func OrderProfit(order *model.Order, costMap map[int64]float64, cfg *model.StoreConfig) (totalCost, taxes, gatewayFees, profit float64) {
	total := order.TotalValue()
	for _, item := range order.LineItemList() {
		totalCost += float64(item.Quantity) * costMap[item.ProductID]
	}
	if cfg != nil {
		taxes = total * cfg.TaxRate / 100
		gatewayFees = total*cfg.GatewayFee/100 + cfg.FixedFee
	}
	profit = total - totalCost - taxes - gatewayFees
	return
}

// ==================== MetricsService ====================

// MetricsService 利润指标服务，负责列表组装和仪表盘统计
type MetricsService struct {
	configRepo  repository.ConfigRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	costRepo    repository.CostRepository
}

// NewMetricsService 创建指标服务
func NewMetricsService(
	configRepo repository.ConfigRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	costRepo repository.CostRepository,
) *MetricsService {
	return &MetricsService{
		configRepo:  configRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		costRepo:    costRepo,
	}
}

// ListOrders 订单列表，按下单时间倒序，逐单计算利润拆解
func (s *MetricsService) ListOrders(ctx context.Context) ([]dto.OrderView, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	costMap, err := s.costRepo.CostMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询成本失败: %w", err)
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取店铺配置失败: %w", err)
	}

	views := make([]dto.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, buildOrderView(&orders[i], costMap, cfg))
	}
	return views, nil
}

func buildOrderView(order *model.Order, costMap map[int64]float64, cfg *model.StoreConfig) dto.OrderView {
	totalCost, taxes, gatewayFees, profit := OrderProfit(order, costMap, cfg)
	return dto.OrderView{
		ID:            order.WooID,
		Number:        order.Number,
		Status:        order.Status,
		DateCreated:   order.DateCreated.Format(time.RFC3339),
		Total:         order.TotalValue(),
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		TotalCost:     totalCost,
		Taxes:         taxes,
		GatewayFees:   gatewayFees,
		Profit:        profit,
		ItemsCount:    len(order.LineItemList()),
	}
}

// DashboardStats 仪表盘统计，period 取 30/90/all（天数窗口）
func (s *MetricsService) DashboardStats(ctx context.Context, period string) (*dto.StatsResponse, error) {
	var since *time.Time
	switch period {
	case "30":
		t := time.Now().AddDate(0, 0, -30)
		since = &t
	case "90":
		t := time.Now().AddDate(0, 0, -90)
		since = &t
	case "", "all":
		period = "all"
	default:
		return nil, fmt.Errorf("无效的统计周期: %s", period)
	}

	orders, err := s.orderRepo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	costMap, err := s.costRepo.CostMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询成本失败: %w", err)
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取店铺配置失败: %w", err)
	}
	productsCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计商品数失败: %w", err)
	}

	stats := &dto.StatsResponse{
		Period:        period,
		ProductsCount: productsCount,
		OrdersCount:   len(orders),
	}
	for i := range orders {
		_, _, _, profit := OrderProfit(&orders[i], costMap, cfg)
		stats.Revenue += orders[i].TotalValue()
		stats.Profit += profit
	}

	// 平均毛利率只统计已录入成本的商品
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	var marginSum float64
	var marginCount int
	for i := range products {
		cost, ok := costMap[products[i].WooID]
		if !ok || cost <= 0 {
			continue
		}
		marginSum += ProductMargin(products[i].PriceValue(), cost)
		marginCount++
	}
	if marginCount > 0 {
		stats.AvgMargin = marginSum / float64(marginCount)
	}
	return stats, nil
}
