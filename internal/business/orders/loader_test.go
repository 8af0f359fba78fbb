package orders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopops/dsagent/pkg/errorutil"
)

const ordersHeader = "order_id,sku,quantity,customer_country,order_date"

func ordersCSV(rows ...string) string {
	return ordersHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestParseOrders_ValidFeed(t *testing.T) {
	feed := ordersCSV(
		"ORD-5001,SKU-1001,2,US,2023-10-27",
		"ORD-5002,SKU-1002,1,AU,2023-10-28",
	)

	records, err := Parse(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, OrderRecord{
		OrderID:   "ORD-5001",
		SKU:       "SKU-1001",
		Quantity:  2,
		Country:   "US",
		OrderDate: "2023-10-27",
	}, records[0])
}

func TestParseOrders_MissingColumns(t *testing.T) {
	feed := "order_id,sku\nORD-1,SKU-1\n"

	_, err := Parse(strings.NewReader(feed))
	require.Error(t, err)
	assert.True(t, errorutil.IsDataFormat(err))
	assert.Contains(t, err.Error(), "quantity")
}

func TestParseOrders_InvalidQuantity(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"non-numeric", "ORD-1,SKU-1,two,US,2023-10-27"},
		{"zero", "ORD-1,SKU-1,0,US,2023-10-27"},
		{"negative", "ORD-1,SKU-1,-1,US,2023-10-27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(ordersCSV(tt.row)))
			require.Error(t, err)
			assert.True(t, errorutil.IsFatal(err))
		})
	}
}

func TestParseOrders_HeaderOnly(t *testing.T) {
	records, err := Parse(strings.NewReader(ordersHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
