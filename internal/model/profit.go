package model

import "github.com/shopspring/decimal"

// OrderProfitAnalysis is the derived, immutable per-order result. NetProfit
// is revenue minus total costs computed in decimal arithmetic; binary
// floating point is never used for money.
type OrderProfitAnalysis struct {
	OrderID      string
	ProductName  string
	Revenue      decimal.Decimal
	TotalCosts   decimal.Decimal
	NetProfit    decimal.Decimal
	ProfitMargin decimal.Decimal
	IsProfitable bool
	Costs        map[ExpenseCategory]decimal.Decimal
}

// ProfitSummary aggregates the full order set.
type ProfitSummary struct {
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TotalCosts         decimal.Decimal `json:"totalCosts"`
	NetProfit          decimal.Decimal `json:"netProfit"`
	ProfitMargin       decimal.Decimal `json:"profitMargin"`
	TotalOrders        int             `json:"totalOrders"`
	ProfitableOrders   int             `json:"profitableOrders"`
	UnprofitableOrders int             `json:"unprofitableOrders"`
}

// ProductLossAnalysis aggregates all orders sharing a product name; it
// exists only when the aggregate net profit is negative. LossReason is the
// expense category with the largest summed amount.
type ProductLossAnalysis struct {
	ProductName         string          `json:"productName"`
	OrderCount          int             `json:"orderCount"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalLoss           decimal.Decimal `json:"totalLoss"`
	AverageLossPerOrder decimal.Decimal `json:"averageLossPerOrder"`
	LossReason          ExpenseCategory `json:"lossReason"`
	Recommendation      string          `json:"recommendation"`
}
