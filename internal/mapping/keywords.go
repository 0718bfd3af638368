package mapping

import (
	"strings"

	"github.com/D-dracula/merchantlens/internal/model"
)

// Keyword tables for the deterministic fallback mapper. Matching is
// lowercase substring over header names; first match per field wins, and a
// header claimed by a more specific field is not reused for costs.
var (
	revenueKeywords   = []string{"total", "amount", "revenue", "sales", "الاجمالي", "الإجمالي", "المبلغ"}
	unitPriceKeywords = []string{"unitprice", "unit_price", "unit price", "price", "السعر"}
	costKeywords      = []string{"shipping", "fee", "tax", "vat", "refund", "cost", "commission", "شحن", "رسوم", "ضريبة", "عمولة"}
	orderIDKeywords   = []string{"id", "order", "number", "invoice", "رقم"}
	dateKeywords      = []string{"date", "تاريخ"}
	productKeywords   = []string{"product", "name", "item", "description", "منتج", "اسم"}
	quantityKeywords  = []string{"quantity", "qty", "كمية", "الكمية"}

	productIDKeywords    = []string{"sku", "product_id", "productid", "product id", "barcode"}
	soldKeywords         = []string{"sold", "quantity", "qty", "units", "مباع", "الكمية"}
	stockKeywords        = []string{"stock", "inventory", "on_hand", "on hand", "available", "مخزون", "المتوفر"}
	salesRecordDateWords = []string{"date", "day", "تاريخ"}
)

// KeywordOrderMapping builds a ColumnMapping from header names alone. It is
// the fallback when the AI assistant is unavailable or returns an invalid
// mapping, and must produce identical results for identical headers.
func KeywordOrderMapping(headers []string) model.ColumnMapping {
	var m model.ColumnMapping
	claimed := make(map[string]struct{}, len(headers))

	claim := func(keywords []string) string {
		for _, keyword := range keywords {
			for _, h := range headers {
				if _, taken := claimed[h]; taken {
					continue
				}
				if strings.Contains(strings.ToLower(h), keyword) {
					claimed[h] = struct{}{}
					return h
				}
			}
		}
		return ""
	}

	// Cost columns are claimed first so generic words like "amount" in a
	// fee column do not get mistaken for revenue.
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, keyword := range costKeywords {
			if strings.Contains(lower, keyword) {
				claimed[h] = struct{}{}
				m.Costs = append(m.Costs, h)
				break
			}
		}
	}

	m.Revenue = claim(revenueKeywords)
	m.UnitPrice = claim(unitPriceKeywords)
	m.Quantity = claim(quantityKeywords)
	m.Date = claim(dateKeywords)
	m.ProductName = claim(productKeywords)
	m.OrderID = claim(orderIDKeywords)
	return m
}

// KeywordStockMapping is the deterministic fallback for the sales-history
// schema used by inventory forecasting.
func KeywordStockMapping(headers []string) model.StockMapping {
	var m model.StockMapping
	claimed := make(map[string]struct{}, len(headers))

	claim := func(keywords []string) string {
		for _, keyword := range keywords {
			for _, h := range headers {
				if _, taken := claimed[h]; taken {
					continue
				}
				if strings.Contains(strings.ToLower(h), keyword) {
					claimed[h] = struct{}{}
					return h
				}
			}
		}
		return ""
	}

	m.CurrentStock = claim(stockKeywords)
	m.QuantitySold = claim(soldKeywords)
	m.Date = claim(salesRecordDateWords)
	m.ProductID = claim(productIDKeywords)
	m.ProductName = claim(productKeywords)
	return m
}
