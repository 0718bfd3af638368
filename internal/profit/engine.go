// Package profit computes exact per-order and aggregate profit figures and
// attributes losses to products. Every money-bearing quantity is a
// decimal.Decimal; binary floating point would drift at cent level when
// summing thousands of small order amounts.
package profit

import (
	"github.com/shopspring/decimal"

	"github.com/D-dracula/merchantlens/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Report is the engine output: per-order analyses plus aggregates.
type Report struct {
	Orders        []model.OrderProfitAnalysis
	Summary       model.ProfitSummary
	CostBreakdown map[model.ExpenseCategory]decimal.Decimal
}

// Analyze computes profit for every order and the aggregate summary.
// categories binds each raw cost label to its expense category; labels
// missing from the map land in other.
func Analyze(orders []model.OrderRecord, categories map[string]model.ExpenseCategory) Report {
	report := Report{
		Orders:        make([]model.OrderProfitAnalysis, 0, len(orders)),
		CostBreakdown: emptyBreakdown(),
	}

	for _, order := range orders {
		analysis := analyzeOrder(order, categories)
		report.Orders = append(report.Orders, analysis)

		report.Summary.TotalRevenue = report.Summary.TotalRevenue.Add(analysis.Revenue)
		report.Summary.TotalCosts = report.Summary.TotalCosts.Add(analysis.TotalCosts)
		if analysis.IsProfitable {
			report.Summary.ProfitableOrders++
		} else {
			report.Summary.UnprofitableOrders++
		}
		for category, amount := range analysis.Costs {
			report.CostBreakdown[category] = report.CostBreakdown[category].Add(amount)
		}
	}

	report.Summary.TotalOrders = len(orders)
	report.Summary.NetProfit = report.Summary.TotalRevenue.Sub(report.Summary.TotalCosts)
	report.Summary.ProfitMargin = Margin(report.Summary.NetProfit, report.Summary.TotalRevenue)
	return report
}

func analyzeOrder(order model.OrderRecord, categories map[string]model.ExpenseCategory) model.OrderProfitAnalysis {
	totalCosts := decimal.Zero
	costs := make(map[model.ExpenseCategory]decimal.Decimal)

	for label, amount := range order.RawCosts {
		totalCosts = totalCosts.Add(amount)

		category, ok := categories[label]
		if !ok || !category.Valid() {
			category = model.CategoryOther
		}
		costs[category] = costs[category].Add(amount)
	}

	netProfit := order.Revenue.Sub(totalCosts)
	return model.OrderProfitAnalysis{
		OrderID:      order.OrderID,
		ProductName:  order.ProductName,
		Revenue:      order.Revenue,
		TotalCosts:   totalCosts,
		NetProfit:    netProfit,
		ProfitMargin: Margin(netProfit, order.Revenue),
		IsProfitable: netProfit.IsPositive(),
		Costs:        costs,
	}
}

// Margin is netProfit / revenue * 100, guarded: zero revenue yields zero
// rather than a division error.
func Margin(netProfit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return netProfit.Div(revenue).Mul(hundred).Round(2)
}

func emptyBreakdown() map[model.ExpenseCategory]decimal.Decimal {
	breakdown := make(map[model.ExpenseCategory]decimal.Decimal, 5)
	for _, category := range model.AllCategories() {
		breakdown[category] = decimal.Zero
	}
	return breakdown
}
