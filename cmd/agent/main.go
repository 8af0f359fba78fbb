package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopops/dsagent/internal/artifact"
	"shopops/dsagent/internal/pipeline"
	"shopops/dsagent/pkg/config"
	"shopops/dsagent/pkg/logger"
	"shopops/dsagent/pkg/textgen"
)

var (
	configPath  = flag.String("config", "./config/agent.yaml", "配置文件路径")
	catalogPath = flag.String("catalog", "", "供应商目录 CSV 路径")
	ordersPath  = flag.String("orders", "", "订单 CSV 路径")
	outputDir   = flag.String("out", "", "产物输出目录")
)

func main() {
	flag.Parse()

	log.Println("========================================")
	log.Println("  DSAGENT Ops Pipeline Starting...")
	log.Println("========================================")

	if *catalogPath == "" || *ordersPath == "" || *outputDir == "" {
		log.Fatalf("Usage: agent -catalog <csv> -orders <csv> -out <dir> [-config <yaml>]")
	}

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	log.Printf("Config loaded: %s, env: %s, log_level: %s\n", cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// 3. 初始化产物存储（目录不可写立即失败）
	store, err := artifact.NewStore(*outputDir)
	if err != nil {
		log.Fatalf("Failed to init artifact store: %v", err)
	}

	// 4. 初始化文本生成客户端
	textgenClient, err := textgen.NewClient(cfg.TextGen.BaseURL, cfg.TextGen.APIKey, cfg.TextGen.Model, cfg.TextGen.Timeout)
	if err != nil {
		log.Fatalf("Failed to create textgen client: %v", err)
	}

	// 5. 信号触发取消
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 6. 执行流水线（一次性批处理，完成即退出）
	runner := pipeline.NewRunner(cfg, textgenClient, store, zapLogger)
	if err := runner.Run(ctx, *catalogPath, *ordersPath); err != nil {
		log.Printf("Pipeline failed: %v\n", err)
		zapLogger.Sync()
		os.Exit(1)
	}

	log.Println("========================================")
	log.Printf("  Pipeline complete. Artifacts in: %s\n", store.Dir())
	log.Println("========================================")
}
