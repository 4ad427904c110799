package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"woo_dash_v1_202608/internal/model"
	"woo_dash_v1_202608/internal/repository"
)

// ==================== 导出文件名 ====================

const (
	productExportPrefix = "Catalogo_CS_Sale_Produtos"
	orderExportPrefix   = "Relatorio_CS_Sale_Pedidos"
)

// ExportService 表格导出与成本导入
type ExportService struct {
	configRepo  repository.ConfigRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	costRepo    repository.CostRepository
}

// NewExportService 创建导出服务
func NewExportService(
	configRepo repository.ConfigRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	costRepo repository.CostRepository,
) *ExportService {
	return &ExportService{
		configRepo:  configRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		costRepo:    costRepo,
	}
}

// ProductExportFilename 商品目录文件名，带当天日期
func ProductExportFilename() string {
	return fmt.Sprintf("%s_%s.csv", productExportPrefix, time.Now().Format("2006-01-02"))
}

// OrderExportFilename 订单报表文件名，带当天日期
func OrderExportFilename() string {
	return fmt.Sprintf("%s_%s.csv", orderExportPrefix, time.Now().Format("2006-01-02"))
}

// ==================== 商品目录导出 ====================

// ExportProducts 导出商品目录 CSV，表头为葡语
func (s *ExportService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("查询商品失败: %w", err)
	}
	costMap, err := s.costRepo.CostMap(ctx)
	if err != nil {
		return fmt.Errorf("查询成本失败: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ID", "Nome do Produto", "SKU", "Preço (R$)", "Custo (R$)", "Estoque", "Categorias"}); err != nil {
		return err
	}
	for i := range products {
		p := &products[i]
		sku := p.SKU
		if sku == "" {
			sku = "-"
		}
		row := []string{
			strconv.FormatInt(p.WooID, 10),
			p.Name,
			sku,
			formatMoney(p.PriceValue()),
			formatMoney(costMap[p.WooID]),
			strconv.Itoa(p.StockQuantity),
			strings.Join(p.Categories, ", "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ==================== 订单报表导出 ====================

// ExportOrders 导出订单报表 CSV，含逐单利润
func (s *ExportService) ExportOrders(ctx context.Context, w io.Writer) error {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("查询订单失败: %w", err)
	}
	costMap, err := s.costRepo.CostMap(ctx)
	if err != nil {
		return fmt.Errorf("查询成本失败: %w", err)
	}
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("读取店铺配置失败: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ID Pedido", "Número", "Status", "Data", "Cliente", "E-mail", "Total (R$)", "Lucro (R$)"}); err != nil {
		return err
	}
	for i := range orders {
		o := &orders[i]
		_, _, _, profit := OrderProfit(o, costMap, cfg)
		row := []string{
			strconv.FormatInt(o.WooID, 10),
			o.Number,
			o.Status,
			o.DateCreated.Format("2006-01-02"),
			o.CustomerName,
			o.CustomerEmail,
			formatMoney(o.TotalValue()),
			formatMoney(profit),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ==================== 成本导入 ====================

// ImportCosts 导入成本表格，返回成功写入的行数
// 表头兼容 id/product_id/ID 与 cost/custo/Custo
func (s *ExportService) ImportCosts(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("读取表头失败: %w", err)
	}

	idCol, costCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id", "product_id":
			if idCol < 0 {
				idCol = i
			}
		case "cost", "custo":
			if costCol < 0 {
				costCol = i
			}
		}
	}
	if idCol < 0 || costCol < 0 {
		return 0, fmt.Errorf("表头缺少 ID 或成本列")
	}

	// 同一 product_id 重复出现时取最后一行，
	// 否则单条 ON CONFLICT 批量写会在 Postgres 上整体报错
	byProduct := make(map[int64]float64)
	var order []int64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("读取数据行失败: %w", err)
		}
		if idCol >= len(record) || costCol >= len(record) {
			continue
		}

		productID, err := strconv.ParseInt(strings.TrimSpace(record[idCol]), 10, 64)
		if err != nil {
			continue
		}
		costText := strings.TrimSpace(record[costCol])
		// 兼容巴西格式小数逗号
		costText = strings.ReplaceAll(costText, ",", ".")
		cost, err := strconv.ParseFloat(costText, 64)
		if err != nil || cost < 0 {
			continue
		}
		if _, ok := byProduct[productID]; !ok {
			order = append(order, productID)
		}
		byProduct[productID] = cost
	}

	costs := make([]model.ProductCost, 0, len(order))
	for _, productID := range order {
		costs = append(costs, model.ProductCost{ProductID: productID, Cost: byProduct[productID]})
	}

	if err := s.costRepo.BatchUpsert(ctx, costs); err != nil {
		return 0, fmt.Errorf("成本入库失败: %w", err)
	}
	return len(costs), nil
}
