package orders

import (
	"context"
	"fmt"

	"shopops/dsagent/internal/business/catalog"
	"shopops/dsagent/internal/framework"
)

// 客服邮件提示词
const emailPromptTemplate = `Write a short customer service email regarding order %s. Context: %s. Keep it professional.`

// EmailDraftUnavailable 邮件生成失败时的占位草稿
// 决策不受生成服务可用性影响，只有草稿可能缺失
const EmailDraftUnavailable = "[email draft unavailable]"

// Router 订单分拣器
type Router struct {
	textgen     TextGen
	pool        *framework.Pool
	temperature float64
	logger      framework.Logger
}

// NewRouter 创建订单分拣器
func NewRouter(textgen TextGen, pool *framework.Pool, temperature float64, logger framework.Logger) *Router {
	return &Router{
		textgen:     textgen,
		pool:        pool,
		temperature: temperature,
		logger:      logger,
	}
}

// Route 对全部订单做履约决策并生成客服邮件草稿
// 决策是确定性的纯函数；邮件草稿经条目级并发生成，
// 单条失败只降级为占位草稿，订单决策照常输出
func (r *Router) Route(ctx context.Context, records []OrderRecord, snapshot *catalog.Snapshot) []OrderAction {
	// 1. 先做确定性决策（与生成服务可用性无关）
	actions := make([]OrderAction, len(records))
	contexts := make([]string, len(records))
	for i, order := range records {
		action, emailContext := Classify(order, snapshot)
		actions[i] = OrderAction{
			OrderID: order.OrderID,
			SKU:     order.SKU,
			Action:  action,
		}
		contexts[i] = emailContext
	}

	// 2. 并发生成邮件草稿
	outcomes := r.pool.Run(ctx, len(records), func(itemCtx context.Context, index int) (interface{}, error) {
		order := records[index]
		itemCtx = context.WithValue(itemCtx, "order_id", order.OrderID)

		prompt := fmt.Sprintf(emailPromptTemplate, order.OrderID, contexts[index])

		draft, err := r.textgen.GenerateText(itemCtx, r.temperature, prompt)
		if err != nil {
			return nil, err
		}

		return draft, nil
	})

	// 3. 回填草稿；失败条目使用占位草稿
	for _, outcome := range outcomes {
		if outcome.Skipped {
			actions[outcome.Index].EmailDraft = EmailDraftUnavailable
			continue
		}
		actions[outcome.Index].EmailDraft = outcome.Value.(string)
	}

	return actions
}
