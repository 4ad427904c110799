package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"woo_dash_v1_202608/internal/api/dto"
	"woo_dash_v1_202608/internal/service"
)

// SyncController 同步控制器
type SyncController struct {
	syncService *service.SyncService
}

// NewSyncController 创建同步控制器
func NewSyncController(syncService *service.SyncService) *SyncController {
	return &SyncController{syncService: syncService}
}

// TriggerSync 触发一次同步
// @Summary 手动触发商品和订单同步
// @Tags Sync
// @Param request body dto.SyncRequest false "force=true 时全量同步"
// @Success 200 {object} dto.SyncResult
// @Failure 400 {object} map[string]interface{} "店铺未配置"
// @Failure 409 {object} map[string]interface{} "同步进行中"
// @Failure 429 {object} map[string]interface{} "限流中"
// @Router /api/sync [post]
func (ctrl *SyncController) TriggerSync(c *gin.Context) {
	var req dto.SyncRequest
	// body 可以为空，为空按增量同步
	_ = c.ShouldBindJSON(&req)

	result, err := ctrl.syncService.SyncAll(c.Request.Context(), req.Force)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotConfigured):
			c.JSON(400, gin.H{"error": "Store not configured"})
		case errors.Is(err, service.ErrSyncInProgress):
			c.JSON(409, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(200, result)
}

// SyncProgress 同步进度推送
// @Summary SSE 推送同步进度
// @Tags Sync
// @Produce text/event-stream
// @Success 200 {string} string "data: {\"message\": \"...\"}"
// @Router /api/sync/progress [get]
func (ctrl *SyncController) SyncProgress(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(500, gin.H{"error": "streaming unsupported"})
		return
	}

	id, ch := ctrl.syncService.Subscribe()
	defer ctrl.syncService.Unsubscribe(id)

	// 先发一帧确认连接建立
	writeProgressFrame(c, flusher, "Conectado")

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case message, ok := <-ch:
			if !ok {
				return
			}
			writeProgressFrame(c, flusher, message)
		}
	}
}

// writeProgressFrame 帧格式固定为 data: {"message": ...}\n\n
func writeProgressFrame(c *gin.Context, flusher http.Flusher, message string) {
	payload, err := json.Marshal(dto.ProgressMessage{Message: message})
	if err != nil {
		log.Printf("[SyncController] 进度帧序列化失败: %v", err)
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
	flusher.Flush()
}
