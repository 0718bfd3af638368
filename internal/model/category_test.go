package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExpenseCategoryValid(t *testing.T) {
	for _, category := range AllCategories() {
		assert.True(t, category.Valid(), "category %s", category)
	}
	assert.False(t, ExpenseCategory("miscellaneous").Valid())
	assert.False(t, ExpenseCategory("").Valid())
}

func TestAllCategoriesStableOrder(t *testing.T) {
	assert.Equal(t, AllCategories(), AllCategories())
	assert.Len(t, AllCategories(), 5)
}

func TestOrderRecordTotalCosts(t *testing.T) {
	order := OrderRecord{RawCosts: map[string]decimal.Decimal{
		"Shipping Fee": decimal.RequireFromString("5.50"),
		"VAT":          decimal.RequireFromString("1.25"),
	}}
	assert.True(t, order.TotalCosts().Equal(decimal.RequireFromString("6.75")))

	empty := OrderRecord{}
	assert.True(t, empty.TotalCosts().IsZero())
}
