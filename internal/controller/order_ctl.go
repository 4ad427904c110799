package controller

import (
	"github.com/gin-gonic/gin"

	"woo_dash_v1_202608/internal/service"
)

// OrderController 订单控制器
type OrderController struct {
	metricsService *service.MetricsService
}

// NewOrderController 创建订单控制器
func NewOrderController(metricsService *service.MetricsService) *OrderController {
	return &OrderController{metricsService: metricsService}
}

// GetOrders 订单列表
// @Summary 获取订单列表（含逐单利润拆解）
// @Tags Order
// @Success 200 {array} dto.OrderView
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	orders, err := ctrl.metricsService.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, orders)
}

// GetStats 仪表盘统计
// @Summary 获取仪表盘统计
// @Tags Order
// @Param period query string false "统计窗口 30/90/all" default(all)
// @Success 200 {object} dto.StatsResponse
// @Router /api/stats [get]
func (ctrl *OrderController) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")

	stats, err := ctrl.metricsService.DashboardStats(c.Request.Context(), period)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, stats)
}
