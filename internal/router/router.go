package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"woo_dash_v1_202608/internal/controller"
	"woo_dash_v1_202608/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	configCtl *controller.ConfigController,
	syncCtl *controller.SyncController,
	productCtl *controller.ProductController,
	orderCtl *controller.OrderController,
	exportCtl *controller.ExportController) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:3001/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// config 店铺配置
		api.GET("/config", configCtl.GetConfig)
		api.POST("/config", configCtl.SaveConfig)

		// sync 同步
		api.POST("/sync", middleware.SyncRateLimit(0), syncCtl.TriggerSync)
		api.GET("/sync/progress", syncCtl.SyncProgress)

		// products 商品
		products := api.Group("/products")
		{
			products.GET("", productCtl.GetProducts)
			products.POST("/:id/cost", productCtl.UpdateCost)
			products.POST("/:id/analyze", productCtl.AnalyzeProduct)
		}

		// orders 订单与统计
		api.GET("/orders", orderCtl.GetOrders)
		api.GET("/stats", orderCtl.GetStats)

		// export / import 表格
		api.GET("/export/products", exportCtl.ExportProducts)
		api.GET("/export/orders", exportCtl.ExportOrders)
		api.POST("/import/costs", exportCtl.ImportCosts)
	}
}
