package model

// ExpenseCategory is one of the fixed expense buckets every cost label is
// classified into. The set is closed; anything unrecognized lands in
// CategoryOther.
type ExpenseCategory string

const (
	// CategoryPaymentGateway covers processor and card-network fees.
	CategoryPaymentGateway ExpenseCategory = "payment_gateway"
	// CategoryShipping covers delivery and carrier charges.
	CategoryShipping ExpenseCategory = "shipping"
	// CategoryTax covers VAT and other tax columns.
	CategoryTax ExpenseCategory = "tax"
	// CategoryRefund covers refunded, returned and cancelled amounts.
	CategoryRefund ExpenseCategory = "refund"
	// CategoryOther is the default bucket for unclassifiable labels.
	CategoryOther ExpenseCategory = "other"
)

// AllCategories lists every category in a stable order, used when building
// cost breakdowns so all buckets are always present.
func AllCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryPaymentGateway,
		CategoryShipping,
		CategoryTax,
		CategoryRefund,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryPaymentGateway, CategoryShipping, CategoryTax, CategoryRefund, CategoryOther:
		return true
	}
	return false
}

// ClassifiedCost binds one raw cost label to exactly one category.
type ClassifiedCost struct {
	Label    string
	Category ExpenseCategory
}
