package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"woo_dash_v1_202608/internal/api/dto"
	"woo_dash_v1_202608/internal/service"
)

// ProductController 商品控制器
type ProductController struct {
	productService *service.ProductService
	aiService      *service.AIService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService, aiService *service.AIService) *ProductController {
	return &ProductController{
		productService: productService,
		aiService:      aiService,
	}
}

// ==================== 查询接口 ====================

// GetProducts 商品分页列表
// @Summary 获取商品列表（含成本和利润指标）
// @Tags Product
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(20)
// @Success 200 {object} dto.ProductListResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	resp, err := ctrl.productService.ListProducts(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, resp)
}

// ==================== 成本录入 ====================

// UpdateCost 录入商品成本
// @Summary 录入或覆盖单个商品成本
// @Tags Product
// @Param id path int true "商品 ID"
// @Param request body dto.CostRequest true "成本"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id}/cost [post]
func (ctrl *ProductController) UpdateCost(c *gin.Context) {
	wooID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || wooID <= 0 {
		c.JSON(400, gin.H{"error": "无效的商品 ID"})
		return
	}

	var req dto.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := ctrl.productService.UpdateCost(c.Request.Context(), wooID, req.Cost); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

// ==================== AI 分析 ====================

// AnalyzeProduct 商品健康度分析
// @Summary AI 分析商品利润健康度
// @Tags Product
// @Param id path int true "商品 ID"
// @Param request body dto.AnalyzeRequest true "商品指标"
// @Success 200 {object} dto.ProductAnalysis
// @Router /api/products/{id}/analyze [post]
func (ctrl *ProductController) AnalyzeProduct(c *gin.Context) {
	if _, err := strconv.ParseInt(c.Param("id"), 10, 64); err != nil {
		c.JSON(400, gin.H{"error": "无效的商品 ID"})
		return
	}

	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	// 分析失败内部已降级，永远返回 200
	result := ctrl.aiService.AnalyzeProductHealth(c.Request.Context(), &req)
	c.JSON(200, result)
}
