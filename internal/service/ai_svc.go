package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"woo_dash_v1_202608/internal/api/dto"
)

// ==================== 配置 ====================

// AIConfig AI 服务配置
type AIConfig struct {
	ApiKey  string
	Model   string
	BaseURL string // 测试时指向本地假服务
}

// ==================== 服务 ====================

// AIService 商品利润健康度分析
// 分析失败不向调用方报错，降级为人工复核提示
type AIService struct {
	Config *AIConfig
	client *http.Client
}

// NewAIService 创建 AI 服务
func NewAIService(cfg *AIConfig) *AIService {
	// 固定模型配置
	if cfg.Model == "" {
		cfg.Model = "gemini-3-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}

	return &AIService{
		Config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// fallbackAnalysis 分析失败时的兜底结论
func fallbackAnalysis() *dto.ProductAnalysis {
	return &dto.ProductAnalysis{
		Status:         "warning",
		Reason:         "Erro ao analisar dados.",
		Recommendation: "Verifique manualmente as margens.",
	}
}

// ==================== 健康度分析 ====================

// AnalyzeProductHealth 根据价格、成本和毛利指标给商品出诊断结论
func (s *AIService) AnalyzeProductHealth(ctx context.Context, req *dto.AnalyzeRequest) *dto.ProductAnalysis {
	if s.Config.ApiKey == "" {
		log.Printf("[AIService] Gemini API Key 未配置，返回兜底结论")
		return fallbackAnalysis()
	}

	prompt := fmt.Sprintf(`Você é um consultor financeiro de e-commerce. Analise a saúde de margem deste produto:

Produto: %s
Preço de venda: R$ %.2f
Custo: R$ %.2f
Margem de lucro: %.2f%%
Markup: %.2fx

Regras:
- Margem >= 30%%: saudável (healthy)
- Margem entre 0%% e 30%%: atenção (warning)
- Margem <= 0%%: crítico (critical)

Responda APENAS em JSON, sem markdown:
{
  "status": "healthy | warning | critical",
  "reason": "explicação curta em português (1 frase)",
  "recommendation": "ação recomendada em português (1 frase)"
}`, req.ProductName, req.Price, req.Cost, req.Margin, req.Markup)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.Config.BaseURL, s.Config.Model, s.Config.ApiKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		log.Printf("[AIService] 构建请求失败: %v", err)
		return fallbackAnalysis()
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		log.Printf("[AIService] 请求失败: %v", err)
		return fallbackAnalysis()
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("[AIService] Gemini API 错误 [%d]: %s", resp.StatusCode, string(respBody))
		return fallbackAnalysis()
	}

	// 解析响应
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		log.Printf("[AIService] 解析响应失败: %v", err)
		return fallbackAnalysis()
	}

	if len(geminiResp.Candidates) == 0 {
		log.Printf("[AIService] 无生成结果")
		return fallbackAnalysis()
	}

	// 提取 JSON 文本
	var jsonText string
	for _, candidate := range geminiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				jsonText = part.Text
				break
			}
		}
	}

	var result dto.ProductAnalysis
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		log.Printf("[AIService] 解析生成结果失败: %v, raw: %s", err, jsonText)
		return fallbackAnalysis()
	}
	if result.Status == "" {
		return fallbackAnalysis()
	}
	return &result
}
