package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/D-dracula/merchantlens/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	criticalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	profitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))
)

func renderProfitReport(report *model.ProfitReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Profit analysis"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("run %s · platform %s", report.RunID, report.Platform)))
	b.WriteString("\n\n")

	s := report.Summary
	netStyle := profitStyle
	if s.NetProfit.IsNegative() {
		netStyle = lossStyle
	}
	fmt.Fprintf(&b, "Orders:    %d (%d profitable, %d unprofitable)\n", s.TotalOrders, s.ProfitableOrders, s.UnprofitableOrders)
	fmt.Fprintf(&b, "Revenue:   %s\n", s.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&b, "Costs:     %s\n", s.TotalCosts.StringFixed(2))
	fmt.Fprintf(&b, "Net:       %s (margin %s%%)\n", netStyle.Render(s.NetProfit.StringFixed(2)), s.ProfitMargin)

	b.WriteString("\nCost breakdown:\n")
	for _, category := range model.AllCategories() {
		fmt.Fprintf(&b, "  %-16s %s\n", category, report.CostBreakdown[category].StringFixed(2))
	}

	if len(report.LosingProducts) > 0 {
		b.WriteString("\n" + titleStyle.Render("Loss-making products") + "\n")
		for _, loser := range report.LosingProducts {
			fmt.Fprintf(&b, "  %s  −%s over %d orders (%s)\n",
				lossStyle.Render(loser.ProductName),
				loser.TotalLoss.StringFixed(2), loser.OrderCount, loser.LossReason)
			fmt.Fprintf(&b, "    %s\n", subtleStyle.Render(loser.Recommendation))
		}
	}

	renderRecommendations(&b, report.AIRecommendations)
	renderWarnings(&b, report.Warnings)
	return b.String()
}

func renderForecastReport(report *model.ForecastReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Inventory forecast"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("run %s · platform %s", report.RunID, report.Platform)))
	b.WriteString("\n\n")

	s := report.Summary
	fmt.Fprintf(&b, "Products:  %d (%s critical, %s warning, %d normal)\n\n",
		s.TotalProducts,
		criticalStyle.Render(fmt.Sprintf("%d", s.CriticalCount)),
		warningStyle.Render(fmt.Sprintf("%d", s.WarningCount)),
		s.NormalCount)

	for _, p := range report.Predictions {
		label := string(p.Urgency)
		switch p.Urgency {
		case model.UrgencyCritical:
			label = criticalStyle.Render(label)
		case model.UrgencyWarning:
			label = warningStyle.Render(label)
		default:
			label = subtleStyle.Render(label)
		}
		fmt.Fprintf(&b, "  %-10s %s: %d days left (stock %d, %.1f/day, trend %s)\n",
			label, p.ProductName, p.DaysUntilStockout, p.CurrentStock, p.AdjustedDailySales, p.SalesTrend)
		if p.Urgency != model.UrgencyNormal {
			fmt.Fprintf(&b, "             reorder %d units by %s\n",
				p.RecommendedOrderQuantity, p.RecommendedOrderDate.Format("2006-01-02"))
		}
	}

	if len(report.SeasonalityPatterns) > 0 {
		b.WriteString("\nSeasonal demand:\n")
		for _, pattern := range report.SeasonalityPatterns {
			fmt.Fprintf(&b, "  %s (+%.0f%%)\n", pattern.Period, pattern.ExpectedDemandIncrease)
		}
	}

	renderRecommendations(&b, report.Recommendations)
	renderWarnings(&b, report.Warnings)
	return b.String()
}

func renderRecommendations(b *strings.Builder, recommendations []string) {
	if len(recommendations) == 0 {
		return
	}
	b.WriteString("\n" + titleStyle.Render("Recommendations") + "\n")
	for _, r := range recommendations {
		fmt.Fprintf(b, "  • %s\n", r)
	}
}

func renderWarnings(b *strings.Builder, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(b, "\n%s\n", warningStyle.Render("⚠ "+w))
	}
}
