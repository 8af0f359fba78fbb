package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopops/dsagent/internal/business/catalog"
	"shopops/dsagent/internal/framework"
	"shopops/dsagent/pkg/logger"
)

// fakeJSONGen 可编程的结构化生成桩
// respondFor：商品名 → 响应 JSON；缺失条目返回错误
type fakeJSONGen struct {
	respondFor map[string]string
}

func (f *fakeJSONGen) GenerateJSON(ctx context.Context, temperature float64, prompt string, out interface{}) error {
	for name, payload := range f.respondFor {
		if strings.Contains(prompt, name) {
			return json.Unmarshal([]byte(payload), out)
		}
	}
	return fmt.Errorf("collaborator unreachable")
}

func validListingJSON(title string) string {
	return fmt.Sprintf(`{"title": %q, "description_html": "<p>Desc.</p>",
		"bullets": ["b1"], "tags": ["t1"], "seo_title": "seo", "seo_description": "seo desc"}`, title)
}

func newTestPool() *framework.Pool {
	return framework.NewPool(&framework.PoolConfig{
		Workers: 2,
		Timeout: time.Second,
	}, logger.NewNopLogger())
}

func selectedItems(names ...string) []catalog.CatalogRecord {
	records := make([]catalog.CatalogRecord, 0, len(names))
	for i, name := range names {
		records = append(records, catalog.CatalogRecord{
			SKU:      fmt.Sprintf("SKU-%d", 1000+i),
			Name:     name,
			Category: "Home",
			WeightKg: 0.5,
		})
	}
	return records
}

func TestGenerate_AllSucceed(t *testing.T) {
	gen := &fakeJSONGen{respondFor: map[string]string{
		"Alpha": validListingJSON("Alpha Deluxe"),
		"Beta":  validListingJSON("Beta Deluxe"),
	}}
	generator := NewGenerator(gen, newTestPool(), 0.7, logger.NewNopLogger())

	listings := generator.Generate(context.Background(), selectedItems("Alpha", "Beta"))

	require.Len(t, listings, 2)
	// 输出保持输入顺序，SKU 由生成器回填
	assert.Equal(t, "SKU-1000", listings[0].SKU)
	assert.Equal(t, "Alpha Deluxe", listings[0].Title)
	assert.Equal(t, "SKU-1001", listings[1].SKU)
	assert.Equal(t, "Beta Deluxe", listings[1].Title)
}

func TestGenerate_FailedItemIsSkipped(t *testing.T) {
	gen := &fakeJSONGen{respondFor: map[string]string{
		"Alpha": validListingJSON("Alpha Deluxe"),
		"Gamma": validListingJSON("Gamma Deluxe"),
	}}
	generator := NewGenerator(gen, newTestPool(), 0.7, logger.NewNopLogger())

	// Beta 无响应 → 跳过，不中止批处理
	listings := generator.Generate(context.Background(), selectedItems("Alpha", "Beta", "Gamma"))

	require.Len(t, listings, 2)
	assert.Equal(t, "Alpha Deluxe", listings[0].Title)
	assert.Equal(t, "Gamma Deluxe", listings[1].Title)
}

func TestGenerate_MalformedResponseIsSkipped(t *testing.T) {
	gen := &fakeJSONGen{respondFor: map[string]string{
		"Alpha": `{"description_html": "<p>No title.</p>"}`,
		"Beta":  validListingJSON("Beta Deluxe"),
	}}
	generator := NewGenerator(gen, newTestPool(), 0.7, logger.NewNopLogger())

	listings := generator.Generate(context.Background(), selectedItems("Alpha", "Beta"))

	require.Len(t, listings, 1)
	assert.Equal(t, "Beta Deluxe", listings[0].Title)
}

func TestGenerate_EmptySelection(t *testing.T) {
	generator := NewGenerator(&fakeJSONGen{}, newTestPool(), 0.7, logger.NewNopLogger())

	listings := generator.Generate(context.Background(), nil)
	assert.Empty(t, listings)
}
