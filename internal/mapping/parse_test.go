package mapping

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-dracula/merchantlens/internal/model"
)

var orderMapping = model.ColumnMapping{
	OrderID:     "Order ID",
	Date:        "Date",
	ProductName: "Product",
	Quantity:    "Qty",
	Revenue:     "Total",
	Costs:       []string{"Shipping Fee", "VAT"},
}

func TestParseOrders(t *testing.T) {
	rows := []model.RawRow{
		{"Order ID": "1001", "Date": "2026-03-01", "Product": "Widget", "Qty": "2", "Total": "10.50", "Shipping Fee": "5", "VAT": "1.58"},
		{"Order ID": "1002", "Total": "bad"},
	}

	orders, stats := ParseOrders(rows, orderMapping)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, stats.SkippedRows)

	order := orders[0]
	assert.Equal(t, "1001", order.OrderID)
	assert.Equal(t, "Widget", order.ProductName)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, "10.5", order.Revenue.String())
	assert.Equal(t, "5", order.RawCosts["Shipping Fee"].String())
	assert.Equal(t, "1.58", order.RawCosts["VAT"].String())
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), order.Date)
}

func TestParseOrdersUnitPriceTimesQuantity(t *testing.T) {
	m := model.ColumnMapping{UnitPrice: "Price", Quantity: "Qty"}
	rows := []model.RawRow{{"Price": "4.25", "Qty": "3"}}

	orders, stats := ParseOrders(rows, m)
	require.Len(t, orders, 1)
	assert.Zero(t, stats.SkippedRows)
	assert.Equal(t, "12.75", orders[0].Revenue.String())
}

func TestParseOrdersQuantityDefaultsToOne(t *testing.T) {
	m := model.ColumnMapping{UnitPrice: "Price"}
	rows := []model.RawRow{{"Price": "7.00"}}

	orders, _ := ParseOrders(rows, m)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, orders[0].Quantity)
	assert.Equal(t, "7", orders[0].Revenue.String())
}

func TestParseOrdersSkipsNonPositiveRevenue(t *testing.T) {
	m := model.ColumnMapping{Revenue: "Total"}
	rows := []model.RawRow{
		{"Total": "0"},
		{"Total": "-5"},
		{"Total": "100"},
	}

	orders, stats := ParseOrders(rows, m)
	assert.Len(t, orders, 1)
	assert.Equal(t, 2, stats.SkippedRows)
}

func TestParseOrdersNegativeCostTreatedAsMagnitude(t *testing.T) {
	m := model.ColumnMapping{Revenue: "Total", Costs: []string{"Refund"}}
	rows := []model.RawRow{{"Total": "50", "Refund": "-10"}}

	orders, _ := ParseOrders(rows, m)
	require.Len(t, orders, 1)
	assert.Equal(t, "10", orders[0].RawCosts["Refund"].String())
}

func TestParseOrdersGeneratesOrderID(t *testing.T) {
	m := model.ColumnMapping{Revenue: "Total"}
	rows := []model.RawRow{{"Total": "5"}}

	orders, _ := ParseOrders(rows, m)
	require.Len(t, orders, 1)
	assert.Equal(t, "row-1", orders[0].OrderID)
}

func TestParseOrdersSkipRateWarning(t *testing.T) {
	m := model.ColumnMapping{Revenue: "Total"}
	var rows []model.RawRow
	for i := 0; i < 6; i++ {
		rows = append(rows, model.RawRow{"Total": "10"})
	}
	for i := 0; i < 4; i++ {
		rows = append(rows, model.RawRow{"Total": "garbage"})
	}

	_, stats := ParseOrders(rows, m)
	assert.Equal(t, 4, stats.SkippedRows)
	require.Len(t, stats.Warnings, 1)
	assert.Contains(t, stats.Warnings[0], "40%")
}

func TestParseOrdersNoWarningBelowThreshold(t *testing.T) {
	m := model.ColumnMapping{Revenue: "Total"}
	rows := []model.RawRow{
		{"Total": "10"},
		{"Total": "10"},
		{"Total": "10"},
		{"Total": "bad"},
	}

	_, stats := ParseOrders(rows, m)
	assert.Empty(t, stats.Warnings)
}

func TestParseSalesHistory(t *testing.T) {
	m := model.StockMapping{
		ProductID:    "SKU",
		ProductName:  "Product",
		Date:         "Date",
		QuantitySold: "Sold",
		CurrentStock: "Stock",
	}
	rows := []model.RawRow{
		{"SKU": "W-1", "Product": "Widget", "Date": "2026-03-01", "Sold": "3", "Stock": "95"},
		{"SKU": "W-1", "Product": "Widget", "Date": "2026-03-02", "Sold": "5", "Stock": "90"},
		{"Product": "Gadget", "Date": "2026-03-01", "Sold": "1", "Stock": "40"},
		{"Product": "", "Sold": "2"},
		{"Product": "Broken", "Sold": "x"},
	}

	history, stats := ParseSalesHistory(rows, m)
	assert.Equal(t, 2, stats.SkippedRows)
	require.Len(t, history.Inventory, 2)

	widget := history.Inventory["Widget"]
	assert.Equal(t, "W-1", widget.ProductID)
	assert.Equal(t, 90, widget.CurrentStock)

	records := history.Sales["Widget"]
	require.Len(t, records, 2)
	assert.True(t, records[0].Date.Before(records[1].Date), "sales not sorted by date")
	assert.Equal(t, 3, records[0].QuantitySold)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-03-15", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{in: "2026-03-15 10:30:00", want: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{in: "2026/03/15", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{in: "15/03/2026", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{in: "", wantErr: true},
		{in: "not a date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}
