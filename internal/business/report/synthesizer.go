package report

import (
	"context"
	"encoding/json"
	"fmt"

	"shopops/dsagent/internal/business/listing"
)

// Stats 单次运行的汇总计数
type Stats struct {
	SelectedCount    int `json:"selected_count"`
	ListingCount     int `json:"listing_count"`
	RedlineCount     int `json:"redline_count"`
	OrderActionCount int `json:"order_action_count"`
}

// TextGen 自由文本生成接口
type TextGen interface {
	GenerateText(ctx context.Context, temperature float64, prompt string) (string, error)
}

// 日报提示词
const dailyReportPromptTemplate = `Generate a Daily Operations Report in Markdown format.
Stats:
- SKUs Sourced: %d
- Listings Generated: %d
- QA Rejections: %d
- Orders Processed: %d
Listing Issues Found: %s
Include a section "Executive Summary" and "Action Items".
`

// 管理层复盘提示词
const managerReviewPromptTemplate = `Review all outputs and provide high-level recommendations.
Current State Summary:
- SKUs Selected: %d
- Listings: %d
- QA Failures: %d
- Orders Processed: %d
`

// Synthesizer 报告合成器
type Synthesizer struct {
	textgen TextGen
}

// NewSynthesizer 创建报告合成器
func NewSynthesizer(textgen TextGen) *Synthesizer {
	return &Synthesizer{textgen: textgen}
}

// Daily 合成运营日报（Markdown 自由文本，要求含 Executive Summary 与 Action Items 小节）
// 生成失败只影响日报本身，先前已落盘的产物不受影响
func (s *Synthesizer) Daily(ctx context.Context, temperature float64, stats Stats, redlines []listing.AuditResult) (string, error) {
	if redlines == nil {
		redlines = []listing.AuditResult{}
	}

	redlinePayload, err := json.Marshal(redlines)
	if err != nil {
		return "", fmt.Errorf("marshal redlines failed: %w", err)
	}

	prompt := fmt.Sprintf(dailyReportPromptTemplate,
		stats.SelectedCount, stats.ListingCount, stats.RedlineCount, stats.OrderActionCount,
		string(redlinePayload))

	content, err := s.textgen.GenerateText(ctx, temperature, prompt)
	if err != nil {
		return "", fmt.Errorf("daily report synthesis failed: %w", err)
	}

	return content, nil
}

// ManagerReview 合成管理层复盘报告（与日报同级降级语义）
func (s *Synthesizer) ManagerReview(ctx context.Context, temperature float64, stats Stats) (string, error) {
	prompt := fmt.Sprintf(managerReviewPromptTemplate,
		stats.SelectedCount, stats.ListingCount, stats.RedlineCount, stats.OrderActionCount)

	content, err := s.textgen.GenerateText(ctx, temperature, prompt)
	if err != nil {
		return "", fmt.Errorf("manager review synthesis failed: %w", err)
	}

	return content, nil
}
