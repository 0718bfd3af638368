package model

import (
	"fmt"
	"strings"
)

// ColumnMapping points semantic order fields at actual column names in an
// ingested file. Empty string means the field is unmapped. At least Revenue
// or UnitPrice must resolve for the mapping to be usable; quantity defaults
// to 1 at parse time when unmapped.
type ColumnMapping struct {
	OrderID     string   `json:"orderId"`
	Date        string   `json:"date"`
	ProductName string   `json:"productName"`
	Quantity    string   `json:"quantity"`
	Revenue     string   `json:"revenue"`
	UnitPrice   string   `json:"unitPrice"`
	Costs       []string `json:"costs"`
}

// Validate checks that every mapped column exists in headers and that the
// mapping can resolve revenue at all.
func (m ColumnMapping) Validate(headers []string) error {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[strings.TrimSpace(h)] = struct{}{}
	}

	check := func(field, column string) error {
		if column == "" {
			return nil
		}
		if _, ok := known[column]; !ok {
			return fmt.Errorf("mapped column %q for %s not found in headers", column, field)
		}
		return nil
	}

	for field, column := range map[string]string{
		"orderId":     m.OrderID,
		"date":        m.Date,
		"productName": m.ProductName,
		"quantity":    m.Quantity,
		"revenue":     m.Revenue,
		"unitPrice":   m.UnitPrice,
	} {
		if err := check(field, column); err != nil {
			return err
		}
	}
	for _, column := range m.Costs {
		if err := check("costs", column); err != nil {
			return err
		}
	}

	if m.Revenue == "" && m.UnitPrice == "" {
		return fmt.Errorf("mapping resolves neither revenue nor unitPrice")
	}
	return nil
}

// StockMapping points the sales-history schema at actual column names.
// Used by the inventory forecasting pipeline.
type StockMapping struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Date         string `json:"date"`
	QuantitySold string `json:"quantitySold"`
	CurrentStock string `json:"currentStock"`
}

// Validate checks mapped columns against headers; productName and
// quantitySold are the minimum viable schema.
func (m StockMapping) Validate(headers []string) error {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[strings.TrimSpace(h)] = struct{}{}
	}
	for field, column := range map[string]string{
		"productId":    m.ProductID,
		"productName":  m.ProductName,
		"date":         m.Date,
		"quantitySold": m.QuantitySold,
		"currentStock": m.CurrentStock,
	} {
		if column == "" {
			continue
		}
		if _, ok := known[column]; !ok {
			return fmt.Errorf("mapped column %q for %s not found in headers", column, field)
		}
	}
	if m.ProductName == "" || m.QuantitySold == "" {
		return fmt.Errorf("mapping resolves neither productName nor quantitySold")
	}
	return nil
}
