package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"woo_dash_v1_202608/internal/model"
	"woo_dash_v1_202608/internal/repository"
)

func setupExportService(t *testing.T) (*ExportService, *gorm.DB) {
	t.Helper()
	db := setupSyncTestDB(t)
	svc := NewExportService(
		repository.NewConfigRepository(db),
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
		repository.NewCostRepository(db),
	)
	return svc, db
}

func seedProduct(t *testing.T, db *gorm.DB, wooID int64, name, price string) {
	t.Helper()
	now := time.Now()
	err := repository.NewProductRepository(db).BatchUpsert(context.Background(), []model.Product{
		{WooID: wooID, Name: name, Price: price, StockQuantity: 5, Categories: []string{"Roupas"}, LastSyncedAt: &now},
	})
	if err != nil {
		t.Fatalf("写入商品失败: %v", err)
	}
}

// ==================== 导出 ====================

func TestExportProducts_Headers(t *testing.T) {
	svc, db := setupExportService(t)
	seedProduct(t, db, 7, "Camiseta", "99.90")
	if err := repository.NewCostRepository(db).Upsert(context.Background(), 7, 40); err != nil {
		t.Fatalf("写入成本失败: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportProducts(context.Background(), &buf); err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("解析 CSV 失败: %v", err)
	}
	wantHeader := []string{"ID", "Nome do Produto", "SKU", "Preço (R$)", "Custo (R$)", "Estoque", "Categorias"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want 2", len(records))
	}
	// SKU 为空时导出占位符
	if records[1][2] != "-" {
		t.Errorf("sku = %q, want -", records[1][2])
	}
	if records[1][3] != "99.90" {
		t.Errorf("preço = %q, want 99.90", records[1][3])
	}
	if records[1][4] != "40.00" {
		t.Errorf("custo = %q, want 40.00", records[1][4])
	}
}

func TestExportOrders_ProfitColumn(t *testing.T) {
	svc, db := setupExportService(t)
	ctx := context.Background()

	now := time.Now()
	err := repository.NewOrderRepository(db).BatchUpsert(ctx, []model.Order{{
		WooID:        100,
		Number:       "100",
		Status:       "completed",
		DateCreated:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Total:        "200",
		CustomerName: "Ana Silva",
		LineItems:    []byte(`[{"product_id":7,"quantity":2}]`),
		LastSyncedAt: &now,
	}})
	if err != nil {
		t.Fatalf("写入订单失败: %v", err)
	}
	if err := repository.NewCostRepository(db).Upsert(ctx, 7, 10); err != nil {
		t.Fatalf("写入成本失败: %v", err)
	}
	err = repository.NewConfigRepository(db).Save(ctx, &model.StoreConfig{
		URL: "https://loja.example.com", ConsumerKey: "ck", ConsumerSecret: "cs",
		TaxRate: 5, GatewayFee: 2, FixedFee: 2,
	})
	if err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportOrders(ctx, &buf); err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("解析 CSV 失败: %v", err)
	}
	wantHeader := []string{"ID Pedido", "Número", "Status", "Data", "Cliente", "E-mail", "Total (R$)", "Lucro (R$)"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	// 200 - 20 - 10 - (4+2) = 164
	if records[1][7] != "164.00" {
		t.Errorf("lucro = %q, want 164.00", records[1][7])
	}
}

func TestExportFilenames(t *testing.T) {
	date := time.Now().Format("2006-01-02")
	if got, want := ProductExportFilename(), "Catalogo_CS_Sale_Produtos_"+date+".csv"; got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}
	if got, want := OrderExportFilename(), "Relatorio_CS_Sale_Pedidos_"+date+".csv"; got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}
}

// ==================== 成本导入 ====================

func TestImportCosts(t *testing.T) {
	svc, db := setupExportService(t)
	ctx := context.Background()

	input := "id,cost\n5,12.50\n6,8\n"
	count, err := svc.ImportCosts(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	record, err := repository.NewCostRepository(db).GetByProductID(ctx, 5)
	if err != nil {
		t.Fatalf("查询成本失败: %v", err)
	}
	if record == nil || record.Cost != 12.50 {
		t.Errorf("cost = %+v, want 12.50", record)
	}
}

func TestImportCosts_HeaderAliases(t *testing.T) {
	svc, _ := setupExportService(t)

	// 葡语表头 + 小数逗号
	input := "Product_ID,Custo\n9,\"7,25\"\n"
	count, err := svc.ImportCosts(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestImportCosts_DuplicateIDLastWins(t *testing.T) {
	svc, db := setupExportService(t)
	ctx := context.Background()

	input := "id,cost\n5,10\n5,12.50\n"
	count, err := svc.ImportCosts(ctx, strings.NewReader(input))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	record, err := repository.NewCostRepository(db).GetByProductID(ctx, 5)
	if err != nil {
		t.Fatalf("查询成本失败: %v", err)
	}
	if record == nil || record.Cost != 12.50 {
		t.Errorf("cost = %+v, want 12.50", record)
	}
}

func TestImportCosts_SkipsBadRows(t *testing.T) {
	svc, _ := setupExportService(t)

	input := "id,cost\nabc,10\n5,-3\n6,2.00\n"
	count, err := svc.ImportCosts(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestImportCosts_MissingColumns(t *testing.T) {
	svc, _ := setupExportService(t)

	if _, err := svc.ImportCosts(context.Background(), strings.NewReader("nome,preco\nx,1\n")); err == nil {
		t.Error("缺少必需列时应返回错误")
	}
}
