package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"shopops/dsagent/internal/business/catalog"
)

// PriceUpdate 售价更新记录
type PriceUpdate struct {
	SKU       string          `json:"sku"`
	NewPrice  decimal.Decimal `json:"new_price"`
	CostBasis decimal.Decimal `json:"cost_basis"`
}

// StockUpdate 库存快照记录（选品时点的库存，运行内不再回查）
type StockUpdate struct {
	SKU        string `json:"sku"`
	StockLevel int    `json:"stock_level"`
}

// Formula 定价公式参数
// 公式：price * Divisor = cost + shipping + FixedFee
// Divisor = 1 - (2.9% 交易手续费 + 10% 税 + 25% 目标毛利)，各项均按最终售价的比例计
type Formula struct {
	Divisor   decimal.Decimal
	FixedFee  decimal.Decimal
	RoundStep decimal.Decimal
}

// NewFormula 由配置浮点值构造定价公式参数
func NewFormula(divisor, fixedFee, roundStep float64) Formula {
	return Formula{
		Divisor:   decimal.NewFromFloat(divisor),
		FixedFee:  decimal.NewFromFloat(fixedFee),
		RoundStep: decimal.NewFromFloat(roundStep),
	}
}

// MinPrice 计算覆盖成本与毛利的最低售价（未取整）
func (f Formula) MinPrice(costPrice, shippingCost decimal.Decimal) decimal.Decimal {
	return costPrice.Add(shippingCost).Add(f.FixedFee).Div(f.Divisor)
}

// RoundUp 将售价向上取整到 RoundStep 的整数倍
// 只向上取整，保证毛利下限不被取整破坏
func (f Formula) RoundUp(price decimal.Decimal) decimal.Decimal {
	steps := price.Div(f.RoundStep).Ceil()
	return steps.Mul(f.RoundStep)
}

// Compute 为每个在售 SKU 计算售价与库存快照
// 确定性计算，除上游加载错误外无失败路径
func Compute(selected []catalog.CatalogRecord, formula Formula) ([]PriceUpdate, []StockUpdate) {
	priceUpdates := make([]PriceUpdate, 0, len(selected))
	stockUpdates := make([]StockUpdate, 0, len(selected))

	for _, item := range selected {
		minPrice := formula.MinPrice(item.CostPrice, item.ShippingCost)
		finalPrice := formula.RoundUp(minPrice)

		priceUpdates = append(priceUpdates, PriceUpdate{
			SKU:       item.SKU,
			NewPrice:  finalPrice,
			CostBasis: item.CostPrice.Add(item.ShippingCost),
		})

		stockUpdates = append(stockUpdates, StockUpdate{
			SKU:        item.SKU,
			StockLevel: item.Stock,
		})
	}

	return priceUpdates, stockUpdates
}

// PriceUpdateRows 转换为 CSV 行（表头 sku,new_price,cost_basis）
func PriceUpdateRows(updates []PriceUpdate) ([]string, [][]string) {
	header := []string{"sku", "new_price", "cost_basis"}
	rows := make([][]string, 0, len(updates))
	for _, u := range updates {
		rows = append(rows, []string{u.SKU, u.NewPrice.StringFixed(2), u.CostBasis.StringFixed(2)})
	}
	return header, rows
}

// StockUpdateRows 转换为 CSV 行（表头 sku,stock_level）
func StockUpdateRows(updates []StockUpdate) ([]string, [][]string) {
	header := []string{"sku", "stock_level"}
	rows := make([][]string, 0, len(updates))
	for _, u := range updates {
		rows = append(rows, []string{u.SKU, strconv.Itoa(u.StockLevel)})
	}
	return header, rows
}
