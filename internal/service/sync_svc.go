package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"woo_dash_v1_202608/internal/api/dto"
	"woo_dash_v1_202608/internal/model"
	"woo_dash_v1_202608/internal/repository"
	"woo_dash_v1_202608/pkg/woo"
)

var (
	// ErrStoreNotConfigured 店铺配置缺失，无法同步
	ErrStoreNotConfigured = errors.New("store not configured")
	// ErrSyncInProgress 已有同步在跑，拒绝并发触发
	ErrSyncInProgress = errors.New("sincronização já em andamento")
)

// progressBuffer 每个订阅者的进度通道缓冲
const progressBuffer = 16

// ==================== 依赖接口 ====================

// WooFetcher WooCommerce 数据拉取接口，测试时注入假实现
type WooFetcher interface {
	FetchProducts(ctx context.Context, page int, modifiedAfter *time.Time) ([]woo.ProductData, error)
	FetchOrders(ctx context.Context, page int, modifiedAfter *time.Time) ([]woo.OrderData, error)
}

// ==================== SyncService ====================

// SyncService 同步服务
// 串行化同步执行，并通过订阅通道向 SSE 客户端推送进度
type SyncService struct {
	configRepo  repository.ConfigRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository

	clientFactory func(cfg *model.StoreConfig) WooFetcher

	running atomic.Bool

	mu          sync.RWMutex
	subscribers map[string]chan string
}

// NewSyncService 创建同步服务
func NewSyncService(
	configRepo repository.ConfigRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *SyncService {
	return &SyncService{
		configRepo:  configRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		clientFactory: func(cfg *model.StoreConfig) WooFetcher {
			return NewWooClient(cfg)
		},
		subscribers: make(map[string]chan string),
	}
}

// ==================== 进度订阅 ====================

// Subscribe 注册一个进度订阅者，返回订阅 ID 和接收通道
func (s *SyncService) Subscribe() (string, <-chan string) {
	id := uuid.New().String()
	ch := make(chan string, progressBuffer)

	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()

	return id, ch
}

// Unsubscribe 注销订阅者并关闭通道
func (s *SyncService) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subscribers[id]; ok {
		delete(s.subscribers, id)
		close(ch)
	}
}

// notifyProgress 向所有订阅者广播进度，通道满则丢弃该条
func (s *SyncService) notifyProgress(message string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- message:
		default:
		}
	}
}

// ==================== 同步执行 ====================

// IsRunning 是否有同步在执行
func (s *SyncService) IsRunning() bool {
	return s.running.Load()
}

// SyncAll 执行一次完整同步：商品 + 订单
// force=false 时按上次同步时间做增量拉取
func (s *SyncService) SyncAll(ctx context.Context, force bool) (*dto.SyncResult, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取店铺配置失败: %w", err)
	}
	if !cfg.IsComplete() {
		return nil, ErrStoreNotConfigured
	}

	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	client := s.clientFactory(cfg)

	productsCount, err := s.syncProducts(ctx, client, force)
	if err != nil {
		s.notifyProgress(fmt.Sprintf("Erro: %v", err))
		return nil, err
	}

	ordersCount, err := s.syncOrders(ctx, client, force)
	if err != nil {
		s.notifyProgress(fmt.Sprintf("Erro: %v", err))
		return nil, err
	}

	s.notifyProgress("Sincronização concluída!")
	log.Printf("[SyncService] 同步完成: products=%d orders=%d", productsCount, ordersCount)

	return &dto.SyncResult{
		Success:       true,
		ProductsCount: productsCount,
		OrdersCount:   ordersCount,
	}, nil
}

// syncProducts 分页拉全商品后一次性入库
func (s *SyncService) syncProducts(ctx context.Context, client WooFetcher, force bool) (int, error) {
	s.notifyProgress("Iniciando sincronização de produtos...")

	var modifiedAfter *time.Time
	if !force {
		last, err := s.productRepo.LastSyncTime(ctx)
		if err != nil {
			return 0, fmt.Errorf("查询商品同步水位失败: %w", err)
		}
		modifiedAfter = last
	}

	var all []woo.ProductData
	for page := 1; ; page++ {
		batch, err := client.FetchProducts(ctx, page, modifiedAfter)
		if err != nil {
			return 0, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		s.notifyProgress(fmt.Sprintf("Baixados %d produtos...", len(all)))
	}

	now := time.Now()
	products := make([]model.Product, 0, len(all))
	for _, item := range all {
		products = append(products, convertProduct(item, now))
	}
	if err := s.productRepo.BatchUpsert(ctx, products); err != nil {
		return 0, fmt.Errorf("商品入库失败: %w", err)
	}
	return len(products), nil
}

// syncOrders 分页拉全订单后一次性入库
func (s *SyncService) syncOrders(ctx context.Context, client WooFetcher, force bool) (int, error) {
	s.notifyProgress("Iniciando sincronização de pedidos...")

	var modifiedAfter *time.Time
	if !force {
		last, err := s.orderRepo.LastSyncTime(ctx)
		if err != nil {
			return 0, fmt.Errorf("查询订单同步水位失败: %w", err)
		}
		modifiedAfter = last
	}

	var all []woo.OrderData
	for page := 1; ; page++ {
		batch, err := client.FetchOrders(ctx, page, modifiedAfter)
		if err != nil {
			return 0, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		s.notifyProgress(fmt.Sprintf("Baixados %d pedidos...", len(all)))
	}

	now := time.Now()
	orders := make([]model.Order, 0, len(all))
	for _, item := range all {
		orders = append(orders, convertOrder(item, now))
	}
	if err := s.orderRepo.BatchUpsert(ctx, orders); err != nil {
		return 0, fmt.Errorf("订单入库失败: %w", err)
	}
	return len(orders), nil
}

// ==================== 数据转换 ====================

func convertProduct(item woo.ProductData, syncedAt time.Time) model.Product {
	categories := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		categories = append(categories, c.Name)
	}

	imagesJSON, err := json.Marshal(item.Images)
	if err != nil {
		imagesJSON = []byte("[]")
	}

	at := syncedAt
	return model.Product{
		WooID:         item.ID,
		Name:          item.Name,
		SKU:           item.SKU,
		Price:         item.Price,
		RegularPrice:  item.RegularPrice,
		SalePrice:     item.SalePrice,
		StockQuantity: item.StockQuantity,
		Categories:    categories,
		Images:        imagesJSON,
		Permalink:     item.Permalink,
		LastSyncedAt:  &at,
	}
}

func convertOrder(item woo.OrderData, syncedAt time.Time) model.Order {
	lineItems := make([]model.OrderLineItem, 0, len(item.LineItems))
	for _, li := range item.LineItems {
		total, _ := strconv.ParseFloat(li.Total, 64)
		lineItems = append(lineItems, model.OrderLineItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			Total:     total,
		})
	}
	itemsJSON, err := json.Marshal(lineItems)
	if err != nil {
		itemsJSON = []byte("[]")
	}

	at := syncedAt
	return model.Order{
		WooID:         item.ID,
		Number:        item.Number,
		Status:        item.Status,
		DateCreated:   parseWooTime(item.DateCreated),
		Total:         item.Total,
		CustomerName:  strings.TrimSpace(item.Billing.FirstName + " " + item.Billing.LastName),
		CustomerEmail: item.Billing.Email,
		CustomerPhone: item.Billing.Phone,
		LineItems:     itemsJSON,
		LastSyncedAt:  &at,
	}
}

// parseWooTime WooCommerce 的时间字段可能带时区也可能不带
func parseWooTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
