package framework

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Pool 条目级并发池
// 条目之间相互独立（仅以 SKU / order_id 为键），可安全并发；
// 每个 Worker 只写结果切片中属于自己的槽位，不需要加锁
type Pool struct {
	cfg       *PoolConfig
	logger    Logger
	processed *atomic.Int64
	skipped   *atomic.Int64
}

// NewPool 创建并发池
func NewPool(cfg *PoolConfig, logger Logger) *Pool {
	return &Pool{
		cfg:       cfg,
		logger:    logger,
		processed: atomic.NewInt64(0),
		skipped:   atomic.NewInt64(0),
	}
}

// Run 并发处理 total 个条目，返回按输入顺序排列的结果
// fn 返回 error 的条目记为 Skipped（不中止批处理）；
// 每个条目受 cfg.Timeout 约束，超时同样按 Skipped 处理
func (p *Pool) Run(ctx context.Context, total int, fn ItemFunc) []Outcome {
	outcomes := make([]Outcome, total)
	if total == 0 {
		return outcomes
	}

	workers := p.cfg.Workers
	if workers > total {
		workers = total
	}

	bufferSize := p.cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = workers
	}

	taskChan := make(chan int, bufferSize)
	var wg sync.WaitGroup

	// 1. 启动处理协程
	for i := 0; i < workers; i++ {
		workerID := i
		wg.Add(1)
		go p.loop(ctx, workerID, taskChan, outcomes, fn, &wg)
	}

	// 2. 派发任务（按输入顺序打下标标签）
	for idx := 0; idx < total; idx++ {
		select {
		case taskChan <- idx:
		case <-ctx.Done():
			// 取消后剩余条目直接记为 Skipped
			for j := idx; j < total; j++ {
				outcomes[j] = Outcome{Index: j, Skipped: true, Reason: "run cancelled"}
				p.skipped.Inc()
			}
			close(taskChan)
			wg.Wait()
			return outcomes
		}
	}

	close(taskChan)
	wg.Wait()

	p.logger.Infof(ctx, "[Pool] Batch complete: total=%d, processed=%d, skipped=%d",
		total, p.processed.Load(), p.skipped.Load())

	return outcomes
}

// Skipped 返回累计跳过条目数
func (p *Pool) Skipped() int64 {
	return p.skipped.Load()
}

// loop 处理循环（单个 Worker）
func (p *Pool) loop(ctx context.Context, workerID int, taskChan <-chan int, outcomes []Outcome, fn ItemFunc, wg *sync.WaitGroup) {
	defer wg.Done()

	for idx := range taskChan {
		outcomes[idx] = p.process(ctx, workerID, idx, fn)
	}
}

// process 处理单个条目
func (p *Pool) process(ctx context.Context, workerID int, idx int, fn ItemFunc) Outcome {
	// 1. 创建超时控制的 Context
	itemCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	startTime := time.Now()

	// 2. 调用业务处理函数（捕获 panic）
	var value interface{}
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("item handler panic: %v", r)
			}
		}()
		value, err = fn(itemCtx, idx)
	}()

	duration := time.Since(startTime)

	// 3. 失败条目记为 Skipped，不影响其余条目
	if err != nil {
		p.skipped.Inc()
		p.logger.Warnf(itemCtx, "[Pool-%d] Item %d skipped: %v, duration: %v", workerID, idx, err, duration)
		return Outcome{Index: idx, Skipped: true, Reason: err.Error()}
	}

	p.processed.Inc()
	p.logger.Debugf(itemCtx, "[Pool-%d] Item %d processed, duration: %v", workerID, idx, duration)

	return Outcome{Index: idx, Value: value}
}
