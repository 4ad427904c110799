package service

import (
	"context"
	"fmt"

	"woo_dash_v1_202608/internal/api/dto"
	"woo_dash_v1_202608/internal/model"
	"woo_dash_v1_202608/internal/repository"
)

// ConfigService 店铺配置服务
type ConfigService struct {
	configRepo repository.ConfigRepository
}

// NewConfigService 创建配置服务
func NewConfigService(configRepo repository.ConfigRepository) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

// Get 读取配置，未配置时返回 (nil, nil)
func (s *ConfigService) Get(ctx context.Context) (*dto.ConfigResponse, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取店铺配置失败: %w", err)
	}
	if cfg == nil {
		return nil, nil
	}
	return &dto.ConfigResponse{
		URL:            cfg.URL,
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		TaxRate:        cfg.TaxRate,
		GatewayFee:     cfg.GatewayFee,
		FixedFee:       cfg.FixedFee,
	}, nil
}

// Save 覆盖写配置
func (s *ConfigService) Save(ctx context.Context, req *dto.ConfigRequest) error {
	cfg := &model.StoreConfig{
		URL:            req.URL,
		ConsumerKey:    req.ConsumerKey,
		ConsumerSecret: req.ConsumerSecret,
		TaxRate:        req.TaxRate,
		GatewayFee:     req.GatewayFee,
		FixedFee:       req.FixedFee,
	}
	return s.configRepo.Save(ctx, cfg)
}
