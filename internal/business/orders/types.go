package orders

import "context"

// OrderRecord 单笔客户订单
type OrderRecord struct {
	OrderID   string `json:"order_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Country   string `json:"customer_country"`
	OrderDate string `json:"order_date"`
}

// Action 履约动作
type Action string

const (
	// ActionFulfill 库存充足，直发
	ActionFulfill Action = "FULFILL_DROPSHIP"
	// ActionBackorder 库存不足，转入等货
	ActionBackorder Action = "BACKORDER"
	// ActionCancelRefund SKU 不在目录中，取消并退款
	ActionCancelRefund Action = "CANCEL_REFUND"
)

// OrderAction 单笔订单的履约决策与客服邮件草稿
type OrderAction struct {
	OrderID    string `json:"order_id"`
	SKU        string `json:"sku"`
	Action     Action `json:"action"`
	EmailDraft string `json:"email_draft"`
}

// TextGen 自由文本生成接口
type TextGen interface {
	GenerateText(ctx context.Context, temperature float64, prompt string) (string, error)
}
