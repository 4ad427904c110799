package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"woo_dash_v1_202608/internal/service"
)

// ExportController 表格导出导入控制器
type ExportController struct {
	exportService *service.ExportService
}

// NewExportController 创建导出控制器
func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// ExportProducts 导出商品目录
// @Summary 导出商品目录 CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} file
// @Router /api/export/products [get]
func (ctrl *ExportController) ExportProducts(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.ProductExportFilename()))

	if err := ctrl.exportService.ExportProducts(c.Request.Context(), c.Writer); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
}

// ExportOrders 导出订单报表
// @Summary 导出订单报表 CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} file
// @Router /api/export/orders [get]
func (ctrl *ExportController) ExportOrders(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.OrderExportFilename()))

	if err := ctrl.exportService.ExportOrders(c.Request.Context(), c.Writer); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
}

// ImportCosts 导入成本表格
// @Summary 从 CSV 批量导入商品成本
// @Tags Export
// @Accept multipart/form-data
// @Param file formData file true "成本表格"
// @Success 200 {object} dto.ImportResult
// @Router /api/import/costs [post]
func (ctrl *ExportController) ImportCosts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "缺少上传文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, gin.H{"error": "打开上传文件失败: " + err.Error()})
		return
	}
	defer file.Close()

	count, err := ctrl.exportService.ImportCosts(c.Request.Context(), file)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true, "count": count})
}
