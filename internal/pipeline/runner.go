package pipeline

import (
	"context"

	"github.com/google/uuid"

	"shopops/dsagent/internal/artifact"
	"shopops/dsagent/internal/business/catalog"
	"shopops/dsagent/internal/business/listing"
	"shopops/dsagent/internal/business/orders"
	"shopops/dsagent/internal/business/pricing"
	"shopops/dsagent/internal/business/report"
	"shopops/dsagent/internal/business/sourcing"
	"shopops/dsagent/internal/framework"
	"shopops/dsagent/pkg/config"
	"shopops/dsagent/pkg/logger"
)

// TextGen 文本生成服务接口（结构化 + 自由文本）
type TextGen interface {
	GenerateJSON(ctx context.Context, temperature float64, prompt string, out interface{}) error
	GenerateText(ctx context.Context, temperature float64, prompt string) (string, error)
}

// Runner 流水线执行器
// 阶段严格顺序执行，数据只向后流动；
// 各阶段只接收所需字段、只返回新增字段，不共享可变全局状态
type Runner struct {
	cfg     *config.Config
	textgen TextGen
	store   *artifact.Store
	logger  logger.Logger
}

// NewRunner 创建流水线执行器
func NewRunner(cfg *config.Config, textgen TextGen, store *artifact.Store, log logger.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		textgen: textgen,
		store:   store,
		logger:  log,
	}
}

// newPool 为单个阶段创建条目级并发池（计数器按阶段独立）
func (r *Runner) newPool() *framework.Pool {
	return framework.NewPool(&framework.PoolConfig{
		Workers:    r.cfg.Pool.Workers,
		BufferSize: r.cfg.Pool.BufferSize,
		Timeout:    r.cfg.Pool.Timeout,
	}, r.logger)
}

// Run 执行整条流水线
// 返回 error 表示致命失败（输入不可读、数据格式错误等）；
// 条目级失败和报告合成失败只降级，不影响返回值
func (r *Runner) Run(ctx context.Context, catalogPath string, ordersPath string) error {
	runID := uuid.NewString()
	ctx = context.WithValue(ctx, "run_id", runID)

	r.logger.Infof(ctx, "[Runner] Run started: catalog=%s, orders=%s, out=%s", catalogPath, ordersPath, r.store.Dir())

	temps := r.cfg.TextGen.Temperatures

	// 阶段间传递的数据（每个阶段只补充自己的字段）
	var (
		snapshot     *catalog.Snapshot
		selected     []catalog.CatalogRecord
		priceUpdates []pricing.PriceUpdate
		stockUpdates []pricing.StockUpdate
		listings     []listing.Listing
		redlines     []listing.AuditResult
		orderActions []orders.OrderAction
	)

	stages := []framework.Stage{
		{Name: "sourcing", Run: func(stageCtx context.Context) error {
			var err error
			snapshot, err = catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			r.logger.Infof(stageCtx, "[Sourcing] Catalog loaded: %d records", len(snapshot.Records))

			selected = sourcing.Select(snapshot.Records, sourcing.Rule{
				MinStock: r.cfg.Sourcing.MinStock,
				TopN:     r.cfg.Sourcing.TopN,
			})
			r.logger.Infof(stageCtx, "[Sourcing] Selected %d SKUs (min_stock=%d, top_n=%d)",
				len(selected), r.cfg.Sourcing.MinStock, r.cfg.Sourcing.TopN)

			return r.store.SaveJSON(artifact.FileSelection, selected)
		}},

		{Name: "pricing", Run: func(stageCtx context.Context) error {
			formula := pricing.NewFormula(r.cfg.Pricing.Divisor, r.cfg.Pricing.FixedFee, r.cfg.Pricing.RoundStep)
			priceUpdates, stockUpdates = pricing.Compute(selected, formula)
			r.logger.Infof(stageCtx, "[Pricing] Computed %d price updates", len(priceUpdates))

			header, rows := pricing.PriceUpdateRows(priceUpdates)
			if err := r.store.SaveCSV(artifact.FilePriceUpdate, header, rows); err != nil {
				return err
			}

			header, rows = pricing.StockUpdateRows(stockUpdates)
			return r.store.SaveCSV(artifact.FileStockUpdate, header, rows)
		}},

		{Name: "listing", Run: func(stageCtx context.Context) error {
			generator := listing.NewGenerator(r.textgen, r.newPool(), temps.Listing, r.logger)
			listings = generator.Generate(stageCtx, selected)
			r.logger.Infof(stageCtx, "[Listing] Generated %d/%d listings", len(listings), len(selected))

			return r.store.SaveJSON(artifact.FileListings, listings)
		}},

		{Name: "audit", Run: func(stageCtx context.Context) error {
			auditor := listing.NewAuditor(r.textgen, r.newPool(), temps.Audit, r.logger)
			redlines = auditor.Audit(stageCtx, listings)
			r.logger.Infof(stageCtx, "[Audit] %d listings flagged FAIL", len(redlines))

			return r.store.SaveJSON(artifact.FileRedlines, redlines)
		}},

		{Name: "routing", Run: func(stageCtx context.Context) error {
			orderRecords, err := orders.Load(ordersPath)
			if err != nil {
				return err
			}
			r.logger.Infof(stageCtx, "[Routing] Orders loaded: %d records", len(orderRecords))

			router := orders.NewRouter(r.textgen, r.newPool(), temps.Email, r.logger)
			orderActions = router.Route(stageCtx, orderRecords, snapshot)

			return r.store.SaveJSON(artifact.FileOrderActions, orderActions)
		}},

		{Name: "report", Run: func(stageCtx context.Context) error {
			synthesizer := report.NewSynthesizer(r.textgen)
			stats := report.Stats{
				SelectedCount:    len(selected),
				ListingCount:     len(listings),
				RedlineCount:     len(redlines),
				OrderActionCount: len(orderActions),
			}

			content, err := synthesizer.Daily(stageCtx, temps.Listing, stats, redlines)
			if err != nil {
				// 降级：日报缺失不影响已落盘产物与退出码
				r.logger.Warnf(stageCtx, "[Report] Daily report degraded: %v", err)
				return nil
			}

			return r.store.SaveMarkdown(artifact.FileDailyReport, content)
		}},

		{Name: "manager_review", Run: func(stageCtx context.Context) error {
			synthesizer := report.NewSynthesizer(r.textgen)
			stats := report.Stats{
				SelectedCount:    len(selected),
				ListingCount:     len(listings),
				RedlineCount:     len(redlines),
				OrderActionCount: len(orderActions),
			}

			content, err := synthesizer.ManagerReview(stageCtx, temps.Manager, stats)
			if err != nil {
				r.logger.Warnf(stageCtx, "[Report] Manager review degraded: %v", err)
				return nil
			}

			return r.store.SaveMarkdown(artifact.FileManagerReport, content)
		}},
	}

	chain := framework.NewChain(stages, r.logger)
	if err := chain.Run(ctx); err != nil {
		r.logger.Errorf(ctx, "[Runner] Run aborted: %v", err)
		return err
	}

	r.logger.Infof(ctx, "[Runner] Run complete: selected=%d, listings=%d, redlines=%d, order_actions=%d, artifacts=%s",
		len(selected), len(listings), len(redlines), len(orderActions), r.store.Dir())

	return nil
}
