package mapping

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/D-dracula/merchantlens/internal/ingest"
	"github.com/D-dracula/merchantlens/internal/model"
)

// SkipRateWarningThreshold is the share of skipped rows above which a data
// quality warning is attached to the result. Never fatal.
const SkipRateWarningThreshold = 0.30

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
}

// ParseStats reports data quality for one parsing pass.
type ParseStats struct {
	TotalRows   int
	ParsedRows  int
	SkippedRows int
	Warnings    []string
}

// SkipRate is the share of rows dropped during parsing.
func (s ParseStats) SkipRate() float64 {
	if s.TotalRows == 0 {
		return 0
	}
	return float64(s.SkippedRows) / float64(s.TotalRows)
}

// ParseOrders applies a validated mapping to every row. This is pure local
// computation; no AI is involved per row. Rows whose resolved revenue is
// zero or negative are skipped and counted, and a skip rate above the
// threshold attaches a quality warning.
func ParseOrders(rows []model.RawRow, m model.ColumnMapping) ([]model.OrderRecord, ParseStats) {
	stats := ParseStats{TotalRows: len(rows)}
	orders := make([]model.OrderRecord, 0, len(rows))

	for i, row := range rows {
		order, err := parseOrderRow(row, m)
		if err != nil {
			stats.SkippedRows++
			continue
		}
		if order.OrderID == "" {
			order.OrderID = fmt.Sprintf("row-%d", i+1)
		}
		orders = append(orders, order)
	}
	stats.ParsedRows = len(orders)

	if rate := stats.SkipRate(); rate > SkipRateWarningThreshold {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf(
			"%.0f%% of rows (%d of %d) could not be parsed as valid orders; results may be incomplete",
			rate*100, stats.SkippedRows, stats.TotalRows))
	}
	return orders, stats
}

func parseOrderRow(row model.RawRow, m model.ColumnMapping) (model.OrderRecord, error) {
	order := model.OrderRecord{
		Quantity: 1,
		RawCosts: make(map[string]decimal.Decimal),
	}

	if m.OrderID != "" {
		order.OrderID = strings.TrimSpace(row[m.OrderID])
	}
	if m.ProductName != "" {
		order.ProductName = strings.TrimSpace(row[m.ProductName])
	}
	if m.Quantity != "" {
		if qty, err := strconv.Atoi(strings.TrimSpace(row[m.Quantity])); err == nil && qty > 0 {
			order.Quantity = qty
		}
	}
	if m.Date != "" {
		if date, err := ParseDate(row[m.Date]); err == nil {
			order.Date = date
		}
	}

	// Revenue comes from the total column OR unit price times quantity,
	// exclusively. It is never summed with cost columns.
	switch {
	case m.Revenue != "":
		revenue, err := ingest.ParseAmount(row[m.Revenue])
		if err != nil {
			return model.OrderRecord{}, err
		}
		order.Revenue = revenue
	case m.UnitPrice != "":
		unitPrice, err := ingest.ParseAmount(row[m.UnitPrice])
		if err != nil {
			return model.OrderRecord{}, err
		}
		order.Revenue = unitPrice.Mul(decimal.NewFromInt(int64(order.Quantity)))
	default:
		return model.OrderRecord{}, fmt.Errorf("mapping resolves no revenue source")
	}

	if !order.Revenue.IsPositive() {
		return model.OrderRecord{}, fmt.Errorf("non-positive revenue")
	}

	for _, column := range m.Costs {
		amount, err := ingest.ParseAmount(row[column])
		if err != nil {
			continue
		}
		if amount.IsNegative() {
			amount = amount.Abs()
		}
		if amount.IsZero() {
			continue
		}
		order.RawCosts[column] = amount
	}
	return order, nil
}

// SalesHistory is the inventory pipeline's parsed input: per-product stock
// positions and date-ordered sales records.
type SalesHistory struct {
	Inventory map[string]model.ProductInventory
	Sales     map[string][]model.DailySalesRecord
}

// ParseSalesHistory applies a stock mapping to every row, accumulating
// per-product sales series and the latest observed stock level.
func ParseSalesHistory(rows []model.RawRow, m model.StockMapping) (SalesHistory, ParseStats) {
	stats := ParseStats{TotalRows: len(rows)}
	history := SalesHistory{
		Inventory: make(map[string]model.ProductInventory),
		Sales:     make(map[string][]model.DailySalesRecord),
	}

	for _, row := range rows {
		name := strings.TrimSpace(row[m.ProductName])
		if name == "" {
			stats.SkippedRows++
			continue
		}

		sold, err := strconv.Atoi(strings.TrimSpace(row[m.QuantitySold]))
		if err != nil || sold < 0 {
			stats.SkippedRows++
			continue
		}

		record := model.DailySalesRecord{QuantitySold: sold}
		if m.Date != "" {
			if date, dateErr := ParseDate(row[m.Date]); dateErr == nil {
				record.Date = date
			}
		}

		inv := history.Inventory[name]
		inv.ProductName = name
		if m.ProductID != "" && inv.ProductID == "" {
			inv.ProductID = strings.TrimSpace(row[m.ProductID])
		}
		if m.CurrentStock != "" {
			if stock, stockErr := strconv.Atoi(strings.TrimSpace(row[m.CurrentStock])); stockErr == nil && stock >= 0 {
				inv.CurrentStock = stock
			}
		}
		history.Inventory[name] = inv
		history.Sales[name] = append(history.Sales[name], record)
	}

	for name := range history.Sales {
		records := history.Sales[name]
		sort.Slice(records, func(a, b int) bool {
			return records[a].Date.Before(records[b].Date)
		})
		history.Sales[name] = records
	}

	stats.ParsedRows = stats.TotalRows - stats.SkippedRows
	if rate := stats.SkipRate(); rate > SkipRateWarningThreshold {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf(
			"%.0f%% of rows (%d of %d) could not be parsed as sales history; forecasts may be incomplete",
			rate*100, stats.SkippedRows, stats.TotalRows))
	}
	return history, stats
}

// ParseDate tries the known export layouts in order.
func ParseDate(cell string) (time.Time, error) {
	cleaned := strings.TrimSpace(cell)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", cell)
}
