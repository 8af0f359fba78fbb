package orders

import (
	"context"
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

// fakeTextGen 可编程的文本生成桩
type fakeTextGen struct {
	failFor map[string]bool // order_id → 是否失败
}

func (f *fakeTextGen) GenerateText(ctx context.Context, temperature float64, prompt string) (string, error) {
	for orderID, fail := range f.failFor {
		if fail && strings.Contains(prompt, orderID) {
			return "", fmt.Errorf("collaborator unreachable")
		}
	}
	return "Dear customer, thank you for your patience.", nil
}

func newTestRouter(gen TextGen) *Router {
	pool := framework.NewPool(&framework.PoolConfig{
		Workers: 2,
		Timeout: time.Second,
	}, logger.NewNopLogger())
	return NewRouter(gen, pool, 0.0, logger.NewNopLogger())
}

func TestRoute_AllDraftsGenerated(t *testing.T) {
	snapshot := snapshotWith(
		catalog.CatalogRecord{SKU: "SKU-1", Stock: 10},
		catalog.CatalogRecord{SKU: "SKU-2", Stock: 1, LeadDays: 5},
	)
	records := []OrderRecord{
		{OrderID: "ORD-1", SKU: "SKU-1", Quantity: 1},
		{OrderID: "ORD-2", SKU: "SKU-2", Quantity: 3},
		{OrderID: "ORD-3", SKU: "SKU-X", Quantity: 1},
	}

	router := newTestRouter(&fakeTextGen{})
	actions := router.Route(context.Background(), records, snapshot)

	require.Len(t, actions, 3)
	assert.Equal(t, ActionFulfill, actions[0].Action)
	assert.Equal(t, ActionBackorder, actions[1].Action)
	assert.Equal(t, ActionCancelRefund, actions[2].Action)

	// 结果保持输入顺序，每单都有草稿
	for i, action := range actions {
		assert.Equal(t, records[i].OrderID, action.OrderID)
		assert.NotEmpty(t, action.EmailDraft)
	}
}

func TestRoute_DraftFailureDegradesToPlaceholder(t *testing.T) {
	snapshot := snapshotWith(catalog.CatalogRecord{SKU: "SKU-1", Stock: 10})
	records := []OrderRecord{
		{OrderID: "ORD-1", SKU: "SKU-1", Quantity: 1},
		{OrderID: "ORD-2", SKU: "SKU-1", Quantity: 1},
	}

	router := newTestRouter(&fakeTextGen{failFor: map[string]bool{"ORD-2": true}})
	actions := router.Route(context.Background(), records, snapshot)

	require.Len(t, actions, 2)

	// 草稿失败只降级为占位草稿，决策照常输出
	assert.Equal(t, ActionFulfill, actions[1].Action)
	assert.Equal(t, EmailDraftUnavailable, actions[1].EmailDraft)
	assert.NotEqual(t, EmailDraftUnavailable, actions[0].EmailDraft)
}

func TestRoute_EmptyOrders(t *testing.T) {
	router := newTestRouter(&fakeTextGen{})
	actions := router.Route(context.Background(), nil, snapshotWith())
	assert.Empty(t, actions)
}
