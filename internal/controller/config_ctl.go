package controller

import (
	"github.com/gin-gonic/gin"

	"woo_dash_v1_202608/internal/api/dto"
	"woo_dash_v1_202608/internal/service"
)

// ConfigController 店铺配置控制器
type ConfigController struct {
	configService *service.ConfigService
}

// NewConfigController 创建配置控制器
func NewConfigController(configService *service.ConfigService) *ConfigController {
	return &ConfigController{configService: configService}
}

// GetConfig 读取店铺配置
// @Summary 获取店铺配置
// @Tags Config
// @Success 200 {object} dto.ConfigResponse
// @Router /api/config [get]
func (ctrl *ConfigController) GetConfig(c *gin.Context) {
	cfg, err := ctrl.configService.Get(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	// 未配置返回 null，前端据此渲染初始配置表单
	c.JSON(200, cfg)
}

// SaveConfig 保存店铺配置
// @Summary 保存店铺配置
// @Tags Config
// @Param config body dto.ConfigRequest true "店铺配置"
// @Success 200 {object} map[string]interface{}
// @Router /api/config [post]
func (ctrl *ConfigController) SaveConfig(c *gin.Context) {
	var req dto.ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := ctrl.configService.Save(c.Request.Context(), &req); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"success": true})
}
