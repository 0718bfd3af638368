package profit

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/D-dracula/merchantlens/internal/model"
)

// lossRecommendations are deterministic, template-based advisories keyed by
// the dominant loss cause.
var lossRecommendations = map[model.ExpenseCategory]string{
	model.CategoryShipping:       "Shipping dominates this product's losses: raise the price, negotiate carrier rates, or add a free-shipping threshold.",
	model.CategoryPaymentGateway: "Gateway fees dominate this product's losses: review processor pricing or steer customers toward cheaper payment methods.",
	model.CategoryTax:            "Tax dominates this product's losses: confirm the price includes VAT and adjust the listed price accordingly.",
	model.CategoryRefund:         "Refunds dominate this product's losses: investigate quality or description issues driving returns.",
	model.CategoryOther:          "Unclassified costs dominate this product's losses: audit the cost columns for this product and re-price it.",
}

// AttributeLosses groups per-order analyses by product, keeps only net-loss
// products, and assigns each a dominant loss cause. Output is sorted by
// total loss, largest first.
func AttributeLosses(orders []model.OrderProfitAnalysis) []model.ProductLossAnalysis {
	type group struct {
		count   int
		revenue decimal.Decimal
		net     decimal.Decimal
		byCat   map[model.ExpenseCategory]decimal.Decimal
	}

	groups := make(map[string]*group)
	for _, order := range orders {
		name := order.ProductName
		if name == "" {
			name = "(unnamed product)"
		}
		g, ok := groups[name]
		if !ok {
			g = &group{byCat: make(map[model.ExpenseCategory]decimal.Decimal)}
			groups[name] = g
		}
		g.count++
		g.revenue = g.revenue.Add(order.Revenue)
		g.net = g.net.Add(order.NetProfit)
		for category, amount := range order.Costs {
			g.byCat[category] = g.byCat[category].Add(amount)
		}
	}

	losses := make([]model.ProductLossAnalysis, 0)
	for name, g := range groups {
		if !g.net.IsNegative() {
			continue
		}

		totalLoss := g.net.Abs()
		reason := dominantCategory(g.byCat)
		losses = append(losses, model.ProductLossAnalysis{
			ProductName:         name,
			OrderCount:          g.count,
			TotalRevenue:        g.revenue,
			TotalLoss:           totalLoss,
			AverageLossPerOrder: totalLoss.Div(decimal.NewFromInt(int64(g.count))).Round(2),
			LossReason:          reason,
			Recommendation:      lossRecommendations[reason],
		})
	}

	sort.Slice(losses, func(a, b int) bool {
		if losses[a].TotalLoss.Equal(losses[b].TotalLoss) {
			return losses[a].ProductName < losses[b].ProductName
		}
		return losses[a].TotalLoss.GreaterThan(losses[b].TotalLoss)
	})
	return losses
}

// dominantCategory picks the category with the largest summed amount,
// breaking ties in the stable AllCategories order.
func dominantCategory(byCat map[model.ExpenseCategory]decimal.Decimal) model.ExpenseCategory {
	best := model.CategoryOther
	bestAmount := decimal.Zero
	for _, category := range model.AllCategories() {
		amount, ok := byCat[category]
		if !ok {
			continue
		}
		if amount.GreaterThan(bestAmount) {
			best = category
			bestAmount = amount
		}
	}
	return best
}
