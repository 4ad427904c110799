package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 同步限流器 ====================

// SyncRateLimiter 同步触发限流器
// 防止前端重复点击导致反复打满 WooCommerce API
type SyncRateLimiter struct {
	mu       sync.Mutex
	lastTime time.Time
}

var globalLimiter = &SyncRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *SyncRateLimiter {
	return globalLimiter
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// CheckOnly 检查是否允许触发，不更新最后触发时间
func (r *SyncRateLimiter) CheckOnly(interval time.Duration) CheckResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastTime)
	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}
	return CheckResult{Allowed: true}
}

// MarkExecuted 记录一次成功触发，开始冷却
func (r *SyncRateLimiter) MarkExecuted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastTime = time.Now()
}

// Reset 重置限流，测试用
func (r *SyncRateLimiter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastTime = time.Time{}
}

// ==================== 中间件 ====================

// DefaultSyncInterval 两次手动同步的最小间隔
const DefaultSyncInterval = 10 * time.Second

// SyncRateLimit 手动同步限流中间件
// interval 为 0 时使用默认间隔
func SyncRateLimit(interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = DefaultSyncInterval
	}

	return func(c *gin.Context) {
		result := GetLimiter().CheckOnly(interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       formatRetryMessage(result.RetryAfter),
				"retry_after": int(result.RetryAfter.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// 触发失败（配置缺失、已在同步中）不消耗冷却额度
		if c.Writer.Status() < 400 {
			GetLimiter().MarkExecuted()
		}
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	if seconds < 60 {
		return fmt.Sprintf("同步冷却中，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60
	if remainingSeconds == 0 {
		return fmt.Sprintf("同步冷却中，请 %d 分钟后重试", minutes)
	}
	return fmt.Sprintf("同步冷却中，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
