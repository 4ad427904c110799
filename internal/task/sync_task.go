package task

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"woo_dash_v1_202608/internal/service"
)

// ==================== SyncTask 定时同步任务 ====================

// SyncTask 定时增量同步
// 手动触发的同步在跑时本轮直接跳过
type SyncTask struct {
	syncService *service.SyncService
	cron        *cron.Cron
}

// NewSyncTask 创建定时同步任务
func NewSyncTask(syncService *service.SyncService) *SyncTask {
	return &SyncTask{
		syncService: syncService,
		cron:        cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *SyncTask) Start() {
	// 每 30 分钟执行
	_, err := t.cron.AddFunc("0 */30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		t.runOnce(ctx)
	})
	if err != nil {
		log.Printf("[SyncTask] 定时任务启动失败: %v", err)
		return
	}

	t.cron.Start()
	log.Println("[SyncTask] 已启动 (每30分钟增量同步)")
}

// Stop 停止任务
func (t *SyncTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[SyncTask] 已停止")
}

// runOnce 执行一轮增量同步
func (t *SyncTask) runOnce(ctx context.Context) {
	log.Println("[SyncTask] 开始增量同步...")

	result, err := t.syncService.SyncAll(ctx, false)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotConfigured):
			log.Println("[SyncTask] 店铺未配置，跳过本轮")
		case errors.Is(err, service.ErrSyncInProgress):
			log.Println("[SyncTask] 已有同步在执行，跳过本轮")
		default:
			log.Printf("[SyncTask] 同步失败: %v", err)
		}
		return
	}
	log.Printf("[SyncTask] 增量同步完成: products=%d orders=%d", result.ProductsCount, result.OrdersCount)
}
