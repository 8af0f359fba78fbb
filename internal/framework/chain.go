package framework

import (
	"context"
	"fmt"
	"time"
)

// Chain 阶段链处理器
// 严格顺序执行：前一阶段（含其全部条目级调用）完成后才进入下一阶段
type Chain struct {
	stages []Stage
	logger Logger
}

// NewChain 创建阶段链处理器
func NewChain(stages []Stage, logger Logger) *Chain {
	return &Chain{
		stages: stages,
		logger: logger,
	}
}

// Run 执行阶段链
// 任一阶段返回 error 则立即停止，已落盘的产物保持不动
func (c *Chain) Run(ctx context.Context) error {
	total := len(c.stages)

	for i, stage := range c.stages {
		select {
		case <-ctx.Done():
			return fmt.Errorf("pipeline cancelled before stage %s: %w", stage.Name, ctx.Err())
		default:
		}

		stageCtx := context.WithValue(ctx, "stage", stage.Name)
		startTime := time.Now()

		c.logger.Infof(stageCtx, "[Pipeline] [%d/%d] Stage started: %s", i+1, total, stage.Name)

		if err := stage.Run(stageCtx); err != nil {
			return fmt.Errorf("stage %s failed: %w", stage.Name, err)
		}

		c.logger.Infof(stageCtx, "[Pipeline] [%d/%d] Stage complete: %s, duration: %v",
			i+1, total, stage.Name, time.Since(startTime))
	}

	return nil
}
