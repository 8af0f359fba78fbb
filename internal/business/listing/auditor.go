package listing

import (
	"context"
	"encoding/json"
	"fmt"

	"shopops/dsagent/internal/framework"
	"shopops/dsagent/pkg/errorutil"
)

// Auditor 上架文案合规审核器
type Auditor struct {
	textgen     TextGen
	pool        *framework.Pool
	temperature float64
	logger      framework.Logger
}

// NewAuditor 创建合规审核器
func NewAuditor(textgen TextGen, pool *framework.Pool, temperature float64, logger framework.Logger) *Auditor {
	return &Auditor{
		textgen:     textgen,
		pool:        pool,
		temperature: temperature,
		logger:      logger,
	}
}

// Audit 审核全部 Listing，返回 FAIL 条目（redlines）
// 单条失败或响应畸形按"无审核结果"跳过并告警，不按 FAIL 计；
// 跳过数可通过 Pool 计数观测
func (a *Auditor) Audit(ctx context.Context, listings []Listing) []AuditResult {
	outcomes := a.pool.Run(ctx, len(listings), func(itemCtx context.Context, index int) (interface{}, error) {
		item := listings[index]
		itemCtx = context.WithValue(itemCtx, "sku", item.SKU)

		payload, err := json.Marshal(item)
		if err != nil {
			return nil, errorutil.PerItemWithDetails("marshal listing for audit failed", err.Error())
		}

		prompt := fmt.Sprintf(auditPromptTemplate, string(payload))

		var result AuditResult
		if err := a.textgen.GenerateJSON(itemCtx, a.temperature, prompt, &result); err != nil {
			return nil, errorutil.PerItemWithDetails("listing audit failed", err.Error())
		}

		if result.Status != StatusPass && result.Status != StatusFail {
			return nil, errorutil.PerItemWithDetails("audit response malformed",
				fmt.Sprintf("unexpected status %q", result.Status))
		}

		result.SKU = item.SKU
		return &result, nil
	})

	// 只保留 FAIL 条目，保持输入顺序
	redlines := make([]AuditResult, 0)
	for _, outcome := range outcomes {
		if outcome.Skipped {
			continue
		}
		result := outcome.Value.(*AuditResult)
		if result.Status == StatusFail {
			redlines = append(redlines, *result)
		}
	}

	return redlines
}
