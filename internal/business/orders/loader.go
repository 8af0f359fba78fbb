package orders

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"shopops/dsagent/pkg/errorutil"
)

// 订单 CSV 的必需列
var requiredColumns = []string{"order_id", "sku", "quantity", "customer_country", "order_date"}

// Load 解析订单 CSV
// 缺列或 quantity 非正整数时返回数据格式错误（致命）
func Load(path string) ([]OrderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorutil.FatalWithDetails("open orders feed failed", err.Error())
	}
	defer f.Close()

	return Parse(f)
}

// Parse 从 Reader 解析订单记录
func Parse(r io.Reader) ([]OrderRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errorutil.DataFormat("orders feed is empty or unreadable")
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	missing := make([]string, 0)
	for _, name := range requiredColumns {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errorutil.DataFormatf("orders feed is missing required columns: %s", strings.Join(missing, ", "))
	}

	records := make([]OrderRecord, 0)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errorutil.DataFormatf("orders feed line %d is malformed: %v", line+1, err)
		}
		line++

		field := func(name string) string {
			idx := colIndex[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		quantity, err := strconv.Atoi(field("quantity"))
		if err != nil || quantity <= 0 {
			return nil, errorutil.DataFormatf("orders line %d: quantity %q is not a positive integer", line, field("quantity"))
		}

		records = append(records, OrderRecord{
			OrderID:   field("order_id"),
			SKU:       field("sku"),
			Quantity:  quantity,
			Country:   field("customer_country"),
			OrderDate: field("order_date"),
		})
	}

	return records, nil
}
