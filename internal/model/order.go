package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one row of an ingested file, keyed by column name. Rows are
// immutable once read; the ingestor owns them until they are handed to the
// schema mapper.
type RawRow map[string]string

// OrderRecord is a single sales order extracted from an export file.
// Revenue is never cost-inclusive: it comes from a total column or from
// unit price multiplied by quantity, exclusively, and is never summed with
// cost columns.
type OrderRecord struct {
	OrderID     string
	Date        time.Time
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
	RawCosts    map[string]decimal.Decimal
}

// TotalCosts sums every raw cost entry on the order.
func (o OrderRecord) TotalCosts() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range o.RawCosts {
		total = total.Add(amount)
	}
	return total
}
