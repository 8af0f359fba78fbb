package sourcing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopops/dsagent/internal/business/catalog"
)

func record(sku string, stock int) catalog.CatalogRecord {
	return catalog.CatalogRecord{SKU: sku, Stock: stock}
}

var defaultRule = Rule{MinStock: 10, TopN: 10}

func TestSelect_FiltersBelowMinStock(t *testing.T) {
	records := []catalog.CatalogRecord{
		record("SKU-1", 50),
		record("SKU-2", 9),
		record("SKU-3", 10),
		record("SKU-4", 0),
	}

	selected := Select(records, defaultRule)

	require.Len(t, selected, 2)
	for _, rec := range selected {
		assert.GreaterOrEqual(t, rec.Stock, 10)
	}
}

func TestSelect_SortsByStockDescending(t *testing.T) {
	records := []catalog.CatalogRecord{
		record("SKU-1", 15),
		record("SKU-2", 40),
		record("SKU-3", 22),
	}

	selected := Select(records, defaultRule)

	require.Len(t, selected, 3)
	assert.Equal(t, "SKU-2", selected[0].SKU)
	assert.Equal(t, "SKU-3", selected[1].SKU)
	assert.Equal(t, "SKU-1", selected[2].SKU)
}

func TestSelect_CapsAtTopN(t *testing.T) {
	records := make([]catalog.CatalogRecord, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, record(fmt.Sprintf("SKU-%d", i), 10+i))
	}

	selected := Select(records, defaultRule)

	require.Len(t, selected, 10)
	// 高库存记录不会被低库存记录挤掉
	assert.Equal(t, 34, selected[0].Stock)
	assert.Equal(t, 25, selected[9].Stock)
	for i := 1; i < len(selected); i++ {
		assert.LessOrEqual(t, selected[i].Stock, selected[i-1].Stock)
	}
}

func TestSelect_TieBreakKeepsFeedOrder(t *testing.T) {
	records := []catalog.CatalogRecord{
		record("SKU-A", 20),
		record("SKU-B", 20),
		record("SKU-C", 30),
		record("SKU-D", 20),
	}

	selected := Select(records, defaultRule)

	require.Len(t, selected, 4)
	assert.Equal(t, "SKU-C", selected[0].SKU)
	assert.Equal(t, []string{"SKU-A", "SKU-B", "SKU-D"},
		[]string{selected[1].SKU, selected[2].SKU, selected[3].SKU})
}

func TestSelect_NoQualifyingRecords(t *testing.T) {
	records := []catalog.CatalogRecord{
		record("SKU-1", 9),
		record("SKU-2", 0),
	}

	selected := Select(records, defaultRule)
	assert.Empty(t, selected)
}

func TestSelect_EmptyCatalog(t *testing.T) {
	selected := Select(nil, defaultRule)
	assert.Empty(t, selected)
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	records := []catalog.CatalogRecord{
		record("SKU-1", 15),
		record("SKU-2", 40),
	}

	Select(records, defaultRule)

	assert.Equal(t, "SKU-1", records[0].SKU)
	assert.Equal(t, "SKU-2", records[1].SKU)
}

func TestSelect_BoundaryMinStock(t *testing.T) {
	// stock == MinStock 恰好合格
	records := []catalog.CatalogRecord{record("SKU-1", 10)}

	selected := Select(records, defaultRule)
	require.Len(t, selected, 1)
	assert.Equal(t, "SKU-1", selected[0].SKU)
}
