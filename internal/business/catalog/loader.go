package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"shopops/dsagent/pkg/errorutil"
)

// 目录 CSV 的必需列
var requiredColumns = []string{
	"supplier_sku", "name", "category", "cost_price", "stock",
	"weight_kg", "length_cm", "width_cm", "height_cm",
	"image_url", "description", "brand", "shipping_cost", "supplier_lead_days",
}

// Load 解析供应商目录 CSV
// 缺列或 stock / cost_price / shipping_cost 解析失败时返回数据格式错误（致命）
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorutil.FatalWithDetails("open catalog feed failed", err.Error())
	}
	defer f.Close()

	return Parse(f)
}

// Parse 从 Reader 解析目录记录
func Parse(r io.Reader) (*Snapshot, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errorutil.DataFormat("catalog feed is empty or unreadable")
	}

	colIndex, err := buildColumnIndex(header, requiredColumns)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Records: make([]CatalogRecord, 0),
		Index:   make(map[string]CatalogRecord),
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errorutil.DataFormatf("catalog feed line %d is malformed: %v", line+1, err)
		}
		line++

		rec, err := parseRecord(row, colIndex, line)
		if err != nil {
			return nil, err
		}

		snapshot.Records = append(snapshot.Records, rec)
		if _, exists := snapshot.Index[rec.SKU]; !exists {
			snapshot.Index[rec.SKU] = rec
		}
	}

	return snapshot, nil
}

// parseRecord 解析单行目录记录
func parseRecord(row []string, colIndex map[string]int, line int) (CatalogRecord, error) {
	field := func(name string) string {
		idx := colIndex[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := CatalogRecord{
		SKU:         field("supplier_sku"),
		Name:        field("name"),
		Category:    field("category"),
		LengthCm:    field("length_cm"),
		WidthCm:     field("width_cm"),
		HeightCm:    field("height_cm"),
		ImageURL:    field("image_url"),
		Description: field("description"),
		Brand:       field("brand"),
	}

	// 数值列：解析失败即致命
	stock, err := strconv.Atoi(field("stock"))
	if err != nil || stock < 0 {
		return CatalogRecord{}, errorutil.DataFormatf("catalog line %d: stock %q is not a non-negative integer", line, field("stock"))
	}
	rec.Stock = stock

	costPrice, err := decimal.NewFromString(field("cost_price"))
	if err != nil || costPrice.IsNegative() {
		return CatalogRecord{}, errorutil.DataFormatf("catalog line %d: cost_price %q is not a non-negative number", line, field("cost_price"))
	}
	rec.CostPrice = costPrice

	shippingCost, err := decimal.NewFromString(field("shipping_cost"))
	if err != nil || shippingCost.IsNegative() {
		return CatalogRecord{}, errorutil.DataFormatf("catalog line %d: shipping_cost %q is not a non-negative number", line, field("shipping_cost"))
	}
	rec.ShippingCost = shippingCost

	// 展示类数值列：解析失败按零值透传
	if weight, err := strconv.ParseFloat(field("weight_kg"), 64); err == nil {
		rec.WeightKg = weight
	}
	if leadDays, err := strconv.Atoi(field("supplier_lead_days")); err == nil && leadDays >= 0 {
		rec.LeadDays = leadDays
	}

	return rec, nil
}

// buildColumnIndex 校验必需列并建立列名下标映射
func buildColumnIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	missing := make([]string, 0)
	for _, name := range required {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errorutil.DataFormatf("catalog feed is missing required columns: %s", strings.Join(missing, ", "))
	}

	return colIndex, nil
}
