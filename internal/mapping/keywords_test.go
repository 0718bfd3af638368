package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordOrderMapping(t *testing.T) {
	headers := []string{"Order ID", "Order Date", "Product Name", "Qty", "Total", "Shipping Fee", "VAT Amount"}

	m := KeywordOrderMapping(headers)

	assert.Equal(t, "Total", m.Revenue)
	assert.Equal(t, "Qty", m.Quantity)
	assert.Equal(t, "Order Date", m.Date)
	assert.Equal(t, "Product Name", m.ProductName)
	assert.Equal(t, "Order ID", m.OrderID)
	assert.ElementsMatch(t, []string{"Shipping Fee", "VAT Amount"}, m.Costs)
}

func TestKeywordOrderMappingCostClaimedBeforeRevenue(t *testing.T) {
	// "Fee Amount" contains the revenue keyword "amount" but must be
	// claimed as a cost, leaving "Total" as revenue.
	headers := []string{"Fee Amount", "Total"}

	m := KeywordOrderMapping(headers)

	assert.Equal(t, "Total", m.Revenue)
	assert.Equal(t, []string{"Fee Amount"}, m.Costs)
}

func TestKeywordOrderMappingArabicHeaders(t *testing.T) {
	headers := []string{"رقم الطلب", "تاريخ", "اسم المنتج", "الكمية", "الاجمالي", "رسوم الشحن"}

	m := KeywordOrderMapping(headers)

	assert.Equal(t, "الاجمالي", m.Revenue)
	assert.Equal(t, "الكمية", m.Quantity)
	assert.Equal(t, "تاريخ", m.Date)
	assert.Contains(t, m.Costs, "رسوم الشحن")
}

func TestKeywordOrderMappingDeterministic(t *testing.T) {
	headers := []string{"Order ID", "Total", "Shipping Fee"}
	assert.Equal(t, KeywordOrderMapping(headers), KeywordOrderMapping(headers))
}

func TestKeywordStockMapping(t *testing.T) {
	headers := []string{"SKU", "Product", "Date", "Units Sold", "Current Stock"}

	m := KeywordStockMapping(headers)

	assert.Equal(t, "SKU", m.ProductID)
	assert.Equal(t, "Product", m.ProductName)
	assert.Equal(t, "Units Sold", m.QuantitySold)
	assert.Equal(t, "Current Stock", m.CurrentStock)
}

func TestKeywordStockMappingStockClaimedBeforeSold(t *testing.T) {
	// "Stock Qty" contains the sold keyword "qty" but must be claimed as
	// stock, leaving "Sold" as quantity sold.
	headers := []string{"Product", "Stock Qty", "Sold"}

	m := KeywordStockMapping(headers)

	assert.Equal(t, "Stock Qty", m.CurrentStock)
	assert.Equal(t, "Sold", m.QuantitySold)
}
