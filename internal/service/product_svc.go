package service

import (
	"context"
	"encoding/json"
	"fmt"

	"woo_dash_v1_202608/internal/api/dto"
	"woo_dash_v1_202608/internal/repository"
)

// ProductService 商品查询与成本录入服务
type ProductService struct {
	productRepo repository.ProductRepository
	costRepo    repository.CostRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, costRepo repository.CostRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		costRepo:    costRepo,
	}
}

// ListProducts 商品分页列表，附带成本和利润指标
func (s *ProductService) ListProducts(ctx context.Context, page, perPage int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	products, total, err := s.productRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	costMap, err := s.costRepo.CostMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询成本失败: %w", err)
	}

	views := make([]dto.ProductView, 0, len(products))
	for i := range products {
		p := &products[i]
		cost := costMap[p.WooID]
		price := p.PriceValue()
		margin := ProductMargin(price, cost)

		var images []dto.ProductImage
		if len(p.Images) > 0 {
			// 图片 JSON 损坏不影响列表返回
			_ = json.Unmarshal(p.Images, &images)
		}

		views = append(views, dto.ProductView{
			ID:            p.WooID,
			Name:          p.Name,
			SKU:           p.SKU,
			Price:         p.Price,
			RegularPrice:  p.RegularPrice,
			SalePrice:     p.SalePrice,
			StockQuantity: p.StockQuantity,
			Categories:    p.Categories,
			Images:        images,
			Permalink:     p.Permalink,
			Cost:          cost,
			Margin:        margin,
			Markup:        ProductMarkup(price, cost),
			Health:        HealthBucket(margin),
		})
	}

	return &dto.ProductListResponse{
		Products: views,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

// UpdateCost 录入或覆盖商品成本。
// 不校验商品是否已镜像，和批量导入保持一致，成本先于同步到达也能保留。
func (s *ProductService) UpdateCost(ctx context.Context, wooID int64, cost float64) error {
	if cost < 0 {
		return fmt.Errorf("成本不能为负数")
	}
	return s.costRepo.Upsert(ctx, wooID, cost)
}
