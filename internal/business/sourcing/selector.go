package sourcing

import (
	"sort"

	"shopops/dsagent/internal/business/catalog"
)

// Rule 选品规则
// MinStock：可售库存下限；TopN：选取数量上限
type Rule struct {
	MinStock int
	TopN     int
}

// Select 从目录中筛选并排序出在售 SKU
// 规则：stock >= MinStock 的记录按 stock 降序取前 TopN 个；
// 库存相同的记录保持目录行序（稳定排序）。
// 输入目录的纯函数：不足 TopN 甚至为空都是合法结果
func Select(records []catalog.CatalogRecord, rule Rule) []catalog.CatalogRecord {
	// 1. 库存过滤
	qualified := make([]catalog.CatalogRecord, 0, len(records))
	for _, rec := range records {
		if rec.Stock >= rule.MinStock {
			qualified = append(qualified, rec)
		}
	}

	// 2. 按库存降序稳定排序
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Stock > qualified[j].Stock
	})

	// 3. 截取前 TopN
	if len(qualified) > rule.TopN {
		qualified = qualified[:rule.TopN]
	}

	return qualified
}
