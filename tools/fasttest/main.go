package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"shopops/dsagent/internal/artifact"
	"shopops/dsagent/internal/pipeline"
	"shopops/dsagent/pkg/config"
	"shopops/dsagent/pkg/logger"
	"shopops/dsagent/pkg/textgen"
)

var (
	dataDir   = flag.String("data", "./data", "样例数据输出目录")
	outputDir = flag.String("out", "./out", "产物输出目录")
	seed      = flag.Int64("seed", 42, "样例数据随机种子")
	runAll    = flag.Bool("run", false, "生成数据后用本地 Stub 服务跑完整流水线")
)

func main() {
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("  FastTest - DSAGENT 快速测试工具")
	fmt.Println("========================================")

	// 1. 生成样例数据
	catalogPath, ordersPath, err := generateData(*dataDir, *seed)
	if err != nil {
		fmt.Printf("❌ Failed to generate sample data: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Generated %s\n", catalogPath)
	fmt.Printf("✅ Generated %s\n", ordersPath)

	if !*runAll {
		fmt.Println("\nRun with -run to execute the full pipeline against a local stub service.")
		return
	}

	// 2. 启动本地 Stub 文本生成服务
	stub := httptest.NewServer(http.HandlerFunc(stubGenerate))
	defer stub.Close()
	fmt.Printf("✅ Stub textgen service listening at %s\n", stub.URL)

	// 3. 组装流水线依赖（默认配置 + Stub 服务地址）
	cfg := config.Default()
	cfg.TextGen.BaseURL = stub.URL

	store, err := artifact.NewStore(*outputDir)
	if err != nil {
		fmt.Printf("❌ Failed to init artifact store: %v\n", err)
		os.Exit(1)
	}

	client, err := textgen.NewClient(cfg.TextGen.BaseURL, cfg.TextGen.APIKey, cfg.TextGen.Model, cfg.TextGen.Timeout)
	if err != nil {
		fmt.Printf("❌ Failed to create textgen client: %v\n", err)
		os.Exit(1)
	}

	// 4. 执行流水线
	fmt.Println("\n========================================")
	fmt.Println("  Running Pipeline")
	fmt.Println("========================================")

	startTime := time.Now()
	runner := pipeline.NewRunner(cfg, client, store, logger.NewNopLogger())
	if err := runner.Run(context.Background(), catalogPath, ordersPath); err != nil {
		fmt.Printf("❌ FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ PASSED\n")
	fmt.Printf("⏱️  Duration: %v\n", time.Since(startTime))
	fmt.Printf("📦 Artifacts in: %s\n", store.Dir())
}

// generateData 生成样例目录与订单 CSV（30 个 SKU，部分库存低于选品下限）
func generateData(dir string, seed int64) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	rng := rand.New(rand.NewSource(seed))
	categories := []string{"Electronics", "Home", "Fitness", "Accessories"}
	countries := []string{"US", "AU", "UK"}

	catalogPath := filepath.Join(dir, "supplier_catalog.csv")
	catalogRows := [][]string{{
		"supplier_sku", "name", "category", "cost_price", "stock",
		"weight_kg", "length_cm", "width_cm", "height_cm",
		"image_url", "description", "brand", "shipping_cost", "supplier_lead_days",
	}}
	for i := 1; i <= 30; i++ {
		cost := 5.0 + rng.Float64()*45.0
		stock := rng.Intn(51)
		catalogRows = append(catalogRows, []string{
			fmt.Sprintf("SKU-%d", 1000+i),
			fmt.Sprintf("Generic Product %d", i),
			categories[rng.Intn(len(categories))],
			strconv.FormatFloat(cost, 'f', 2, 64),
			strconv.Itoa(stock),
			strconv.FormatFloat(0.1+rng.Float64()*1.9, 'f', 1, 64),
			"10", "10", "10",
			fmt.Sprintf("http://img.example.com/%d.jpg", i),
			fmt.Sprintf("A high quality generic product %d for your needs.", i),
			"GenericBrand",
			"5.00",
			"3",
		})
	}
	if err := writeCSV(catalogPath, catalogRows); err != nil {
		return "", "", err
	}

	ordersPath := filepath.Join(dir, "orders.csv")
	orderRows := [][]string{{"order_id", "sku", "quantity", "customer_country", "order_date"}}
	for i := 1; i <= 5; i++ {
		orderRows = append(orderRows, []string{
			fmt.Sprintf("ORD-%d", 5000+i),
			fmt.Sprintf("SKU-%d", 1000+1+rng.Intn(30)),
			strconv.Itoa(1 + rng.Intn(2)),
			countries[rng.Intn(len(countries))],
			"2023-10-27",
		})
	}
	if err := writeCSV(ordersPath, orderRows); err != nil {
		return "", "", err
	}

	return catalogPath, ordersPath, nil
}

// writeCSV 写 CSV 文件（首行表头）
func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// stubGenerate 按提示词内容返回对应形状的固定响应
func stubGenerate(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	var req textgen.GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var content string
	switch {
	case strings.Contains(req.Prompt, "Copywriter"):
		content = `{"title": "Stub Product", "description_html": "<p>Stub description.</p>",
			"bullets": ["Durable", "Lightweight"], "tags": ["stub", "generic"],
			"seo_title": "Stub Product | Shop", "seo_description": "A stub product listing."}`
	case strings.Contains(req.Prompt, "compliance"):
		content = `{"status": "PASS", "issues": []}`
	case strings.Contains(req.Prompt, "customer service email"):
		content = "Dear customer, thank you for your order. We will follow up shortly."
	default:
		content = "# Daily Operations Report\n\n## Executive Summary\nStub run.\n\n## Action Items\n- None.\n"
	}

	resp := textgen.GenerateResponse{Content: content}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
