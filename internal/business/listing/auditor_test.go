package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopops/dsagent/pkg/logger"
)

// fakeAuditGen 审核桩：verdictFor 按 SKU 返回响应 JSON，缺失条目返回错误
type fakeAuditGen struct {
	verdictFor map[string]string

	mu    sync.Mutex
	temps []float64
}

func (f *fakeAuditGen) GenerateJSON(ctx context.Context, temperature float64, prompt string, out interface{}) error {
	f.mu.Lock()
	f.temps = append(f.temps, temperature)
	f.mu.Unlock()

	for sku, payload := range f.verdictFor {
		if strings.Contains(prompt, sku) {
			return json.Unmarshal([]byte(payload), out)
		}
	}
	return fmt.Errorf("collaborator unreachable")
}

func listingsFor(skus ...string) []Listing {
	listings := make([]Listing, 0, len(skus))
	for _, sku := range skus {
		listings = append(listings, Listing{
			SKU:             sku,
			Title:           "Title " + sku,
			DescriptionHTML: "<p>Desc.</p>",
		})
	}
	return listings
}

func TestAudit_OnlyFailuresRetained(t *testing.T) {
	gen := &fakeAuditGen{verdictFor: map[string]string{
		"SKU-1": `{"status": "PASS", "issues": []}`,
		"SKU-2": `{"status": "FAIL", "issues": ["over-promising claim", "seo title too long"]}`,
		"SKU-3": `{"status": "PASS", "issues": []}`,
	}}
	auditor := NewAuditor(gen, newTestPool(), 0.0, logger.NewNopLogger())

	redlines := auditor.Audit(context.Background(), listingsFor("SKU-1", "SKU-2", "SKU-3"))

	require.Len(t, redlines, 1)
	assert.Equal(t, "SKU-2", redlines[0].SKU)
	assert.Equal(t, StatusFail, redlines[0].Status)
	assert.Len(t, redlines[0].Issues, 2)
}

func TestAudit_FailureIsSkippedNotFail(t *testing.T) {
	// 审核失败按"无审核结果"处理，不得按 FAIL 计入 redlines
	gen := &fakeAuditGen{verdictFor: map[string]string{
		"SKU-1": `{"status": "PASS", "issues": []}`,
	}}
	auditor := NewAuditor(gen, newTestPool(), 0.0, logger.NewNopLogger())

	redlines := auditor.Audit(context.Background(), listingsFor("SKU-1", "SKU-2"))
	assert.Empty(t, redlines)
}

func TestAudit_MalformedStatusIsSkipped(t *testing.T) {
	gen := &fakeAuditGen{verdictFor: map[string]string{
		"SKU-1": `{"status": "MAYBE", "issues": []}`,
		"SKU-2": `{"status": "FAIL", "issues": ["grammar"]}`,
	}}
	auditor := NewAuditor(gen, newTestPool(), 0.0, logger.NewNopLogger())

	redlines := auditor.Audit(context.Background(), listingsFor("SKU-1", "SKU-2"))

	require.Len(t, redlines, 1)
	assert.Equal(t, "SKU-2", redlines[0].SKU)
}

func TestAudit_PreservesInputOrder(t *testing.T) {
	gen := &fakeAuditGen{verdictFor: map[string]string{
		"SKU-1": `{"status": "FAIL", "issues": ["a"]}`,
		"SKU-2": `{"status": "FAIL", "issues": ["b"]}`,
		"SKU-3": `{"status": "FAIL", "issues": ["c"]}`,
	}}
	auditor := NewAuditor(gen, newTestPool(), 0.0, logger.NewNopLogger())

	redlines := auditor.Audit(context.Background(), listingsFor("SKU-1", "SKU-2", "SKU-3"))

	require.Len(t, redlines, 3)
	assert.Equal(t, "SKU-1", redlines[0].SKU)
	assert.Equal(t, "SKU-2", redlines[1].SKU)
	assert.Equal(t, "SKU-3", redlines[2].SKU)
}

func TestAudit_UsesConfiguredTemperature(t *testing.T) {
	// 审核请求必须携带审核角色的配置温度，而非生成角色的
	gen := &fakeAuditGen{verdictFor: map[string]string{
		"SKU-1": `{"status": "PASS", "issues": []}`,
		"SKU-2": `{"status": "PASS", "issues": []}`,
	}}
	auditor := NewAuditor(gen, newTestPool(), 0.25, logger.NewNopLogger())

	auditor.Audit(context.Background(), listingsFor("SKU-1", "SKU-2"))

	require.Len(t, gen.temps, 2)
	for _, temp := range gen.temps {
		assert.Equal(t, 0.25, temp)
	}
}

func TestAudit_EmptyListings(t *testing.T) {
	auditor := NewAuditor(&fakeAuditGen{}, newTestPool(), 0.0, logger.NewNopLogger())
	redlines := auditor.Audit(context.Background(), nil)
	assert.Empty(t, redlines)
}
