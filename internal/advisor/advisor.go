// Package advisor turns the structured analysis outputs into natural
// language recommendations, delegating arithmetic to a locally-executed
// calculator tool and falling back to deterministic rule-based text when
// the AI provider is unreachable.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/D-dracula/merchantlens/internal/common"
	"github.com/D-dracula/merchantlens/internal/llm"
	"github.com/D-dracula/merchantlens/internal/model"
)

// lowMarginThreshold triggers the pricing advisory in the rule-based
// fallback, in percent.
var lowMarginThreshold = decimal.NewFromInt(10)

const recommendSystemPrompt = `You are an e-commerce profitability advisor. Given an analysis summary you
write 3 to 5 short, specific, actionable recommendations for the store owner.
Use the calculator tool for every percentage, margin, sum or difference you mention; never compute numbers yourself.
Respond with one recommendation per line, no numbering, no markdown.`

// Advisor synthesizes recommendations from analysis results.
type Advisor struct {
	client    llm.Client
	logger    *slog.Logger
	printer   *message.Printer
	currency  string
	maxRounds int
}

// NewAdvisor creates an advisor. locale and currency are hints used only
// for text formatting, never for calculation semantics. A nil client makes
// every call take the rule-based path.
func NewAdvisor(client llm.Client, logger *slog.Logger, locale, currency string) *Advisor {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if currency == "" {
		currency = "SAR"
	}
	return &Advisor{
		client:    client,
		logger:    logger,
		printer:   message.NewPrinter(tag),
		currency:  currency,
		maxRounds: llm.DefaultMaxRounds,
	}
}

// ProfitRecommendations produces advisory text for a profit report. The
// result is always non-empty: AI-derived when the bounded tool-use session
// succeeds, rule-based otherwise.
func (a *Advisor) ProfitRecommendations(ctx context.Context, summary model.ProfitSummary, breakdown map[model.ExpenseCategory]decimal.Decimal, losers []model.ProductLossAnalysis) common.Sourced[[]string] {
	return common.WithFallback(ctx, a.logger, "profit_recommendations",
		func(ctx context.Context) ([]string, error) {
			return a.runSession(ctx, a.profitContext(summary, breakdown, losers))
		},
		func() []string {
			return a.ruleBasedProfit(summary, breakdown, losers)
		})
}

// ForecastRecommendations produces advisory text for an inventory forecast.
func (a *Advisor) ForecastRecommendations(ctx context.Context, summary model.ForecastSummary, predictions []model.ProductPrediction, seasonal []model.SeasonalPattern) common.Sourced[[]string] {
	return common.WithFallback(ctx, a.logger, "forecast_recommendations",
		func(ctx context.Context) ([]string, error) {
			return a.runSession(ctx, a.forecastContext(summary, predictions, seasonal))
		},
		func() []string {
			return a.ruleBasedForecast(summary, predictions, seasonal)
		})
}

// runSession drives one bounded tool-use exchange and splits the answer
// into individual recommendations.
func (a *Advisor) runSession(ctx context.Context, analysisContext string) ([]string, error) {
	if a.client == nil {
		return nil, fmt.Errorf("no AI client configured")
	}

	session := llm.NewSession(a.client, a.logger, a.maxRounds)
	session.RegisterTool(calculatorTool, runCalculator)

	answer, err := session.Run(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: recommendSystemPrompt},
		{Role: llm.RoleUser, Content: analysisContext},
	})
	if err != nil {
		return nil, err
	}

	var recommendations []string
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		if line != "" {
			recommendations = append(recommendations, line)
		}
	}
	if len(recommendations) == 0 {
		return nil, fmt.Errorf("provider returned no recommendations")
	}
	return recommendations, nil
}

func (a *Advisor) profitContext(summary model.ProfitSummary, breakdown map[model.ExpenseCategory]decimal.Decimal, losers []model.ProductLossAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orders: %d (%d profitable, %d unprofitable)\n",
		summary.TotalOrders, summary.ProfitableOrders, summary.UnprofitableOrders)
	fmt.Fprintf(&b, "Revenue: %s, costs: %s, net profit: %s, margin: %s%%\n",
		a.money(summary.TotalRevenue), a.money(summary.TotalCosts),
		a.money(summary.NetProfit), summary.ProfitMargin)

	b.WriteString("Cost breakdown:\n")
	for _, category := range model.AllCategories() {
		fmt.Fprintf(&b, "  %s: %s\n", category, a.money(breakdown[category]))
	}

	if len(losers) > 0 {
		b.WriteString("Top loss-making products:\n")
		for i, loser := range losers {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "  %q: loss %s over %d orders, dominant cause %s\n",
				loser.ProductName, a.money(loser.TotalLoss), loser.OrderCount, loser.LossReason)
		}
	}
	return b.String()
}

func (a *Advisor) forecastContext(summary model.ForecastSummary, predictions []model.ProductPrediction, seasonal []model.SeasonalPattern) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Products: %d (%d critical, %d warning, %d normal)\n",
		summary.TotalProducts, summary.CriticalCount, summary.WarningCount, summary.NormalCount)

	b.WriteString("Most urgent products:\n")
	for i, p := range predictions {
		if i == 5 || p.Urgency == model.UrgencyNormal {
			break
		}
		fmt.Fprintf(&b, "  %q: %d days of stock left, trend %s, reorder %d units by %s\n",
			p.ProductName, p.DaysUntilStockout, p.SalesTrend,
			p.RecommendedOrderQuantity, p.RecommendedOrderDate.Format("2006-01-02"))
	}

	if len(seasonal) > 0 {
		b.WriteString("Seasonal demand periods:\n")
		for _, s := range seasonal {
			fmt.Fprintf(&b, "  %s: +%.0f%% expected\n", s.Period, s.ExpectedDemandIncrease)
		}
	}
	return b.String()
}

// ruleBasedProfit is the deterministic fallback generated directly from
// summary thresholds.
func (a *Advisor) ruleBasedProfit(summary model.ProfitSummary, breakdown map[model.ExpenseCategory]decimal.Decimal, losers []model.ProductLossAnalysis) []string {
	var recommendations []string

	if summary.NetProfit.IsNegative() {
		recommendations = append(recommendations, a.printer.Sprintf(
			"The store is operating at a net loss of %s; prioritize the loss-making products below before spending on growth.",
			a.money(summary.NetProfit.Abs())))
	} else if summary.ProfitMargin.LessThan(lowMarginThreshold) {
		recommendations = append(recommendations, a.printer.Sprintf(
			"Overall margin is %s%%, below the healthy 10%% line; review pricing or negotiate your largest cost category.",
			summary.ProfitMargin))
	}

	if biggest, amount := largestCategory(breakdown); amount.IsPositive() {
		recommendations = append(recommendations, a.printer.Sprintf(
			"Your largest expense category is %s at %s; that is the first place to negotiate or restructure.",
			biggest, a.money(amount)))
	}

	for i, loser := range losers {
		if i == 2 {
			break
		}
		recommendations = append(recommendations, a.printer.Sprintf(
			"%q lost %s across %d orders. %s",
			loser.ProductName, a.money(loser.TotalLoss), loser.OrderCount, loser.Recommendation))
	}

	if summary.UnprofitableOrders > 0 && summary.TotalOrders > 0 {
		share := decimal.NewFromInt(int64(summary.UnprofitableOrders)).
			Div(decimal.NewFromInt(int64(summary.TotalOrders))).
			Mul(decimal.NewFromInt(100)).Round(0)
		recommendations = append(recommendations, a.printer.Sprintf(
			"%s%% of orders lose money; consider a minimum order value or bundling cheap items.",
			share))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Profitability looks healthy; keep monitoring cost categories for drift.")
	}
	return recommendations
}

// ruleBasedForecast is the deterministic fallback for inventory advice.
func (a *Advisor) ruleBasedForecast(summary model.ForecastSummary, predictions []model.ProductPrediction, seasonal []model.SeasonalPattern) []string {
	var recommendations []string

	if summary.CriticalCount > 0 {
		recommendations = append(recommendations, a.printer.Sprintf(
			"%d products will stock out within your reorder lead time; place those orders today.",
			summary.CriticalCount))
	}
	if summary.WarningCount > 0 {
		recommendations = append(recommendations, a.printer.Sprintf(
			"%d products are inside the safety-stock window; schedule reorders this week.",
			summary.WarningCount))
	}

	for _, p := range predictions {
		if p.SalesTrend == model.TrendIncreasing && p.Urgency != model.UrgencyNormal {
			recommendations = append(recommendations, a.printer.Sprintf(
				"%q is both running low and trending up; order more than the usual quantity (suggested: %d units).",
				p.ProductName, p.RecommendedOrderQuantity))
			break
		}
	}

	for _, s := range seasonal {
		recommendations = append(recommendations, a.printer.Sprintf(
			"%s is approaching with an expected +%.0f%% demand; build extra stock for affected products.",
			s.Period, s.ExpectedDemandIncrease))
		break
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Stock levels look comfortable; revisit after the next sales cycle.")
	}
	return recommendations
}

// money formats an amount with the locale hint. Formatting only; amounts
// are already exact decimals.
func (a *Advisor) money(amount decimal.Decimal) string {
	return a.printer.Sprintf("%s %s", amount.Round(2), a.currency)
}

func largestCategory(breakdown map[model.ExpenseCategory]decimal.Decimal) (model.ExpenseCategory, decimal.Decimal) {
	best := model.CategoryOther
	bestAmount := decimal.Zero
	for _, category := range model.AllCategories() {
		if amount, ok := breakdown[category]; ok && amount.GreaterThan(bestAmount) {
			best, bestAmount = category, amount
		}
	}
	return best, bestAmount
}
