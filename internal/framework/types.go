package framework

import (
	"context"
	"time"
)

// Logger 日志接口
type Logger interface {
	Debugf(ctx context.Context, format string, args ...interface{})
	Infof(ctx context.Context, format string, args ...interface{})
	Warnf(ctx context.Context, format string, args ...interface{})
	Errorf(ctx context.Context, format string, args ...interface{})
}

// StageFunc 阶段执行函数类型
// 返回 error 则中止整条流水线
type StageFunc func(ctx context.Context) error

// Stage 流水线阶段
type Stage struct {
	Name string    // 阶段名称（用于进度日志）
	Run  StageFunc // 阶段执行函数
}

// ItemFunc 单条目处理函数类型
// index 为条目在输入序列中的下标
type ItemFunc func(ctx context.Context, index int) (interface{}, error)

// Outcome 单条目处理结果
// Skipped 为 true 表示该条目被跳过（Reason 记录原因），不代表批处理失败
type Outcome struct {
	Index   int
	Value   interface{}
	Skipped bool
	Reason  string
}

// PoolConfig 条目级并发池配置
type PoolConfig struct {
	Workers    int           // 并发处理数
	BufferSize int           // 任务 Channel 缓冲大小
	Timeout    time.Duration // 单个条目超时
}
