package listing

import "context"

// Listing 生成的商品上架文案
type Listing struct {
	SKU             string   `json:"sku"`
	Title           string   `json:"title"`
	DescriptionHTML string   `json:"description_html"`
	Bullets         []string `json:"bullets"`
	Tags            []string `json:"tags"`
	SEOTitle        string   `json:"seo_title"`
	SEODescription  string   `json:"seo_description"`
}

// 审核状态
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// AuditResult 单条 Listing 的合规审核结果
// 下游只保留 Status == FAIL 的条目（redlines）
type AuditResult struct {
	SKU    string   `json:"sku"`
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

// TextGen 结构化文本生成接口
type TextGen interface {
	GenerateJSON(ctx context.Context, temperature float64, prompt string, out interface{}) error
}
