package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"woo_dash_v1_202608/internal/controller"
	"woo_dash_v1_202608/internal/model"
	"woo_dash_v1_202608/internal/repository"
	"woo_dash_v1_202608/internal/router"
	"woo_dash_v1_202608/internal/service"
	"woo_dash_v1_202608/internal/task"
	"woo_dash_v1_202608/pkg/database"
)

// @title WooCommerce 利润看板 API
// @version 1.0
// @description 商品/订单镜像同步、成本管理与利润分析
// @BasePath /
func main() {
	// .env 不存在时静默忽略，生产环境用真实环境变量
	_ = godotenv.Load()

	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	syncTask := initTasks(deps)
	if syncTask != nil {
		defer syncTask.Stop()
	}

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Config,
		deps.Controllers.Sync,
		deps.Controllers.Product,
		deps.Controllers.Order,
		deps.Controllers.Export,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Config  repository.ConfigRepository
	Product repository.ProductRepository
	Order   repository.OrderRepository
	Cost    repository.CostRepository
}

// Services 服务集合
type Services struct {
	Config  *service.ConfigService
	Sync    *service.SyncService
	Product *service.ProductService
	Metrics *service.MetricsService
	Export  *service.ExportService
	AI      *service.AIService
}

// Controllers 控制器集合
type Controllers struct {
	Config  *controller.ConfigController
	Sync    *controller.SyncController
	Product *controller.ProductController
	Order   *controller.OrderController
	Export  *controller.ExportController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL",
		"host=localhost user=postgres password=postgres dbname=woo_dash port=5432 sslmode=disable")

	return database.InitDB(dsn,
		&model.StoreConfig{},
		&model.Product{},
		&model.ProductCost{},
		&model.Order{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Config:  repository.NewConfigRepository(db),
		Product: repository.NewProductRepository(db),
		Order:   repository.NewOrderRepository(db),
		Cost:    repository.NewCostRepository(db),
	}

	// -------- 业务服务 --------
	services := &Services{
		Config:  service.NewConfigService(repos.Config),
		Sync:    service.NewSyncService(repos.Config, repos.Product, repos.Order),
		Product: service.NewProductService(repos.Product, repos.Cost),
		Metrics: service.NewMetricsService(repos.Config, repos.Product, repos.Order, repos.Cost),
		Export:  service.NewExportService(repos.Config, repos.Product, repos.Order, repos.Cost),
		AI: service.NewAIService(&service.AIConfig{
			ApiKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", ""),
		}),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Config:  controller.NewConfigController(services.Config),
		Sync:    controller.NewSyncController(services.Sync),
		Product: controller.NewProductController(services.Product, services.AI),
		Order:   controller.NewOrderController(services.Metrics),
		Export:  controller.NewExportController(services.Export),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *task.SyncTask {
	if getEnv("SYNC_CRON_ENABLED", "true") != "true" {
		log.Println("定时同步已禁用")
		return nil
	}

	syncTask := task.NewSyncTask(deps.Services.Sync)
	syncTask.Start()

	log.Println("定时任务已启动")
	return syncTask
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("PORT", "3001")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
