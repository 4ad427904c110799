package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"woo_dash_v1_202608/internal/model"
	"woo_dash_v1_202608/pkg/woo"
)

// wooPageSize WooCommerce REST 单页最大条数
const wooPageSize = 100

// orderStatuses 只同步这三种状态的订单
const orderStatuses = "processing,on-hold,completed"

// ==================== WooClient ====================

// WooClient WooCommerce REST API 客户端
// 每次同步用当时的店铺配置新建一个，不做长连接复用
type WooClient struct {
	client  *resty.Client
	baseURL string
}

// NewWooClient 根据店铺配置创建客户端
func NewWooClient(cfg *model.StoreConfig) *WooClient {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetBasicAuth(cfg.ConsumerKey, cfg.ConsumerSecret)

	return &WooClient{
		client:  client,
		baseURL: normalizeStoreURL(cfg.URL),
	}
}

// normalizeStoreURL 去掉尾部斜杠，缺协议时补 https
func normalizeStoreURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}

// FetchProducts 拉取一页商品，modifiedAfter 非空时做增量过滤
func (c *WooClient) FetchProducts(ctx context.Context, page int, modifiedAfter *time.Time) ([]woo.ProductData, error) {
	var products []woo.ProductData

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("per_page", fmt.Sprintf("%d", wooPageSize)).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetResult(&products)
	if modifiedAfter != nil {
		req.SetQueryParam("modified_after", modifiedAfter.UTC().Format(time.RFC3339))
	}

	resp, err := req.Get(c.baseURL + "/wp-json/wc/v3/products")
	if err != nil {
		return nil, fmt.Errorf("请求商品列表失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("商品列表接口返回异常: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return products, nil
}

// FetchOrders 拉取一页订单，只取 processing/on-hold/completed
func (c *WooClient) FetchOrders(ctx context.Context, page int, modifiedAfter *time.Time) ([]woo.OrderData, error) {
	var orders []woo.OrderData

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("per_page", fmt.Sprintf("%d", wooPageSize)).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("status", orderStatuses).
		SetResult(&orders)
	if modifiedAfter != nil {
		req.SetQueryParam("modified_after", modifiedAfter.UTC().Format(time.RFC3339))
	}

	resp, err := req.Get(c.baseURL + "/wp-json/wc/v3/orders")
	if err != nil {
		return nil, fmt.Errorf("请求订单列表失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("订单列表接口返回异常: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return orders, nil
}
