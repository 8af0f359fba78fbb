package listing

import (
	"context"
	"fmt"

	"shopops/dsagent/internal/business/catalog"
	"shopops/dsagent/internal/framework"
	"shopops/dsagent/pkg/errorutil"
)

// Generator 上架文案生成器
type Generator struct {
	textgen     TextGen
	pool        *framework.Pool
	temperature float64
	logger      framework.Logger
}

// NewGenerator 创建上架文案生成器
func NewGenerator(textgen TextGen, pool *framework.Pool, temperature float64, logger framework.Logger) *Generator {
	return &Generator{
		textgen:     textgen,
		pool:        pool,
		temperature: temperature,
		logger:      logger,
	}
}

// Generate 为每个在售 SKU 生成 Listing
// 条目级并发处理；单条失败或响应畸形只跳过该 SKU，不中止批处理。
// 输出保持输入顺序（跳过的 SKU 不占位）
func (g *Generator) Generate(ctx context.Context, selected []catalog.CatalogRecord) []Listing {
	outcomes := g.pool.Run(ctx, len(selected), func(itemCtx context.Context, index int) (interface{}, error) {
		item := selected[index]
		itemCtx = context.WithValue(itemCtx, "sku", item.SKU)

		prompt := fmt.Sprintf(listingPromptTemplate, item.Name, item.Category, item.Description, item.WeightKg)

		var result Listing
		if err := g.textgen.GenerateJSON(itemCtx, g.temperature, prompt, &result); err != nil {
			return nil, errorutil.PerItemWithDetails("listing generation failed", err.Error())
		}

		if err := validateListing(&result); err != nil {
			return nil, errorutil.PerItemWithDetails("listing response malformed", err.Error())
		}

		result.SKU = item.SKU
		g.logger.Infof(itemCtx, "[Listing] Generated listing for %s", item.SKU)

		return &result, nil
	})

	// 按输入顺序收集成功条目
	listings := make([]Listing, 0, len(selected))
	for _, outcome := range outcomes {
		if outcome.Skipped {
			continue
		}
		listings = append(listings, *outcome.Value.(*Listing))
	}

	return listings
}

// validateListing 校验生成响应的必需字段
// 只强校验 title 与 description_html；bullets/tags/seo 字段允许缺失，
// 按空值上架（对端输出约束较弱，缺 SEO 字段不构成拒绝理由）
func validateListing(l *Listing) error {
	if l.Title == "" {
		return fmt.Errorf("title is empty")
	}
	if l.DescriptionHTML == "" {
		return fmt.Errorf("description_html is empty")
	}
	return nil
}
