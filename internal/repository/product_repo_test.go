package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"woo_dash_v1_202608/internal/model"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.StoreConfig{}, &model.Product{}, &model.ProductCost{}, &model.Order{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func mirrorProduct(wooID int64, name string, syncedAt time.Time) model.Product {
	return model.Product{
		WooID:        wooID,
		Name:         name,
		Price:        "50.00",
		Categories:   []string{"Roupas", "Verão"},
		Images:       []byte(`[{"id":1,"src":"https://img.example.com/a.jpg"}]`),
		LastSyncedAt: &syncedAt,
	}
}

// ==================== 商品镜像 ====================

func TestProductRepository_BatchUpsert(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	first := time.Now().Add(-time.Hour)
	err := repo.BatchUpsert(ctx, []model.Product{mirrorProduct(1, "Camiseta", first)})
	if err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	// 同一 woo_id 再写，覆盖镜像字段而不是新增行
	second := time.Now()
	err = repo.BatchUpsert(ctx, []model.Product{mirrorProduct(1, "Camiseta Premium", second)})
	if err != nil {
		t.Fatalf("二次写入失败: %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	found, err := repo.GetByWooID(ctx, 1)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if found.Name != "Camiseta Premium" {
		t.Errorf("name = %q, want Camiseta Premium", found.Name)
	}
	if len(found.Categories) != 2 || found.Categories[0] != "Roupas" {
		t.Errorf("categories = %v", found.Categories)
	}
}

func TestProductRepository_LastSyncTime(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	// 空表无水位
	last, err := repo.LastSyncTime(ctx)
	if err != nil {
		t.Fatalf("查询水位失败: %v", err)
	}
	if last != nil {
		t.Errorf("last = %v, want nil", last)
	}

	older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	err = repo.BatchUpsert(ctx, []model.Product{
		mirrorProduct(1, "A", older),
		mirrorProduct(2, "B", newer),
	})
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	last, err = repo.LastSyncTime(ctx)
	if err != nil {
		t.Fatalf("查询水位失败: %v", err)
	}
	if last == nil {
		t.Fatal("last = nil, want 最新同步时间")
	}
	// 取的是两条记录里较新的那条
	if last.Unix() != newer.Unix() {
		t.Errorf("last = %v, want %v", last, newer)
	}
}

// ==================== 成本覆盖层 ====================

func TestCostSurvivesResync(t *testing.T) {
	db := setupRepoTestDB(t)
	productRepo := NewProductRepository(db)
	costRepo := NewCostRepository(db)
	ctx := context.Background()

	now := time.Now()
	if err := productRepo.BatchUpsert(ctx, []model.Product{mirrorProduct(1, "Camiseta", now)}); err != nil {
		t.Fatalf("写入商品失败: %v", err)
	}
	if err := costRepo.Upsert(ctx, 1, 25); err != nil {
		t.Fatalf("写入成本失败: %v", err)
	}

	// 重新同步覆盖商品镜像
	if err := productRepo.BatchUpsert(ctx, []model.Product{mirrorProduct(1, "Camiseta v2", time.Now())}); err != nil {
		t.Fatalf("重刷商品失败: %v", err)
	}

	record, err := costRepo.GetByProductID(ctx, 1)
	if err != nil {
		t.Fatalf("查询成本失败: %v", err)
	}
	if record == nil || record.Cost != 25 {
		t.Errorf("cost = %+v, want 25", record)
	}
}

func TestCostRepository_CostMap(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewCostRepository(db)
	ctx := context.Background()

	if err := repo.BatchUpsert(ctx, []model.ProductCost{
		{ProductID: 1, Cost: 10},
		{ProductID: 2, Cost: 20},
	}); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	costMap, err := repo.CostMap(ctx)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(costMap) != 2 || costMap[1] != 10 || costMap[2] != 20 {
		t.Errorf("costMap = %v", costMap)
	}
}

// ==================== 配置单例 ====================

func TestConfigRepository_Singleton(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewConfigRepository(db)
	ctx := context.Background()

	// 未配置返回 nil
	cfg, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if cfg != nil {
		t.Errorf("cfg = %+v, want nil", cfg)
	}

	// 两次保存只留一行
	for _, url := range []string{"https://a.example.com", "https://b.example.com"} {
		err := repo.Save(ctx, &model.StoreConfig{URL: url, ConsumerKey: "ck", ConsumerSecret: "cs"})
		if err != nil {
			t.Fatalf("保存失败: %v", err)
		}
	}

	cfg, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if cfg.URL != "https://b.example.com" {
		t.Errorf("url = %q, want https://b.example.com", cfg.URL)
	}

	var count int64
	db.Model(&model.StoreConfig{}).Count(&count)
	if count != 1 {
		t.Errorf("config rows = %d, want 1", count)
	}
}

// ==================== 订单镜像 ====================

func TestOrderRepository_ListSince(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	now := time.Now()
	orders := []model.Order{
		{WooID: 1, Status: "completed", DateCreated: now.AddDate(0, 0, -60), Total: "10", LastSyncedAt: &now},
		{WooID: 2, Status: "processing", DateCreated: now.AddDate(0, 0, -5), Total: "20", LastSyncedAt: &now},
	}
	if err := repo.BatchUpsert(ctx, orders); err != nil {
		t.Fatalf("写入订单失败: %v", err)
	}

	since := now.AddDate(0, 0, -30)
	recent, err := repo.ListSince(ctx, &since)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(recent) != 1 || recent[0].WooID != 2 {
		t.Errorf("recent = %d 条, want 1 (woo_id=2)", len(recent))
	}

	all, err := repo.ListSince(ctx, nil)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d 条, want 2", len(all))
	}
	// 按下单时间倒序
	if all[0].WooID != 2 {
		t.Errorf("first woo_id = %d, want 2", all[0].WooID)
	}
}
