package orders

import (
	"fmt"

	"shopops/dsagent/internal/business/catalog"
)

// Classify 对单笔订单做三路履约决策
// 纯函数：只依赖 (order, snapshot)，订单之间互不影响；
// 对照全量目录快照（而非选品结果），订单可引用任意已知 SKU。
// 返回决策动作与客服邮件的背景描述
func Classify(order OrderRecord, snapshot *catalog.Snapshot) (Action, string) {
	rec, ok := snapshot.Lookup(order.SKU)
	if !ok {
		return ActionCancelRefund, "Item discontinued/not found."
	}

	if rec.Stock >= order.Quantity {
		return ActionFulfill, "Order confirmed and shipping soon."
	}

	return ActionBackorder, fmt.Sprintf("Item temporarily out of stock. Expected delay: %d days.", rec.LeadDays)
}
