// Package forecast projects per-product sales velocity, stockout dates and
// reorder recommendations from sales history, with an AI-derived seasonal
// overlay falling back to a static table.
package forecast

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/D-dracula/merchantlens/internal/llm"
	"github.com/D-dracula/merchantlens/internal/mapping"
	"github.com/D-dracula/merchantlens/internal/model"
)

// noSalesStockoutDays marks products with zero velocity as not urgent.
const noSalesStockoutDays = 999

// Config carries the forecasting constants. The trend window, thresholds
// and reorder target mirror the product team's current policy and are kept
// configurable rather than hard-coded.
type Config struct {
	LeadTimeDays       int
	SafetyStockDays    int
	CoverDays          int
	TrendWindowWeeks   int
	TrendUpThreshold   float64
	TrendDownThreshold float64
	IncreasingAdjust   float64
	DecreasingAdjust   float64
}

// DefaultConfig returns the current policy defaults.
func DefaultConfig() Config {
	return Config{
		LeadTimeDays:       14,
		SafetyStockDays:    7,
		CoverDays:          30,
		TrendWindowWeeks:   2,
		TrendUpThreshold:   0.15,
		TrendDownThreshold: -0.15,
		IncreasingAdjust:   0.15,
		DecreasingAdjust:   -0.10,
	}
}

// Forecaster derives predictions for every product in a sales history.
type Forecaster struct {
	client llm.Client
	logger *slog.Logger
	cfg    Config
	now    func() time.Time
}

// NewForecaster creates a forecaster. A nil client limits the seasonal
// overlay to the static fallback table.
func NewForecaster(client llm.Client, logger *slog.Logger, cfg Config) *Forecaster {
	if cfg.LeadTimeDays <= 0 {
		cfg = DefaultConfig()
	}
	return &Forecaster{client: client, logger: logger, cfg: cfg, now: time.Now}
}

// Predict computes one prediction per product, sorted most urgent first.
func (f *Forecaster) Predict(history mapping.SalesHistory) []model.ProductPrediction {
	predictions := make([]model.ProductPrediction, 0, len(history.Inventory))

	for name, inventory := range history.Inventory {
		predictions = append(predictions, f.predictProduct(inventory, history.Sales[name]))
	}

	sort.Slice(predictions, func(a, b int) bool {
		if predictions[a].DaysUntilStockout != predictions[b].DaysUntilStockout {
			return predictions[a].DaysUntilStockout < predictions[b].DaysUntilStockout
		}
		return predictions[a].ProductName < predictions[b].ProductName
	})
	return predictions
}

func (f *Forecaster) predictProduct(inventory model.ProductInventory, sales []model.DailySalesRecord) model.ProductPrediction {
	now := f.now()

	prediction := model.ProductPrediction{
		ProductID:    inventory.ProductID,
		ProductName:  inventory.ProductName,
		CurrentStock: inventory.CurrentStock,
		SalesTrend:   model.TrendStable,
	}

	totalSold := 0
	var minDate, maxDate time.Time
	for _, record := range sales {
		totalSold += record.QuantitySold
		if record.Date.IsZero() {
			continue
		}
		if minDate.IsZero() || record.Date.Before(minDate) {
			minDate = record.Date
		}
		if maxDate.IsZero() || record.Date.After(maxDate) {
			maxDate = record.Date
		}
	}

	days := 1
	if !minDate.IsZero() && !maxDate.IsZero() {
		if span := int(maxDate.Sub(minDate).Hours()/24) + 1; span > days {
			days = span
		}
	}
	prediction.AverageDailySales = float64(totalSold) / float64(days)

	prediction.WeeklySales = weeklyBuckets(sales)
	prediction.SalesTrend = f.detectTrend(prediction.WeeklySales)

	adjusted := prediction.AverageDailySales
	switch prediction.SalesTrend {
	case model.TrendIncreasing:
		adjusted *= 1 + f.cfg.IncreasingAdjust
	case model.TrendDecreasing:
		adjusted *= 1 + f.cfg.DecreasingAdjust
	}
	prediction.AdjustedDailySales = adjusted

	if adjusted <= 0 {
		prediction.DaysUntilStockout = noSalesStockoutDays
		prediction.Urgency = model.UrgencyNormal
		prediction.StockoutDate = now.AddDate(0, 0, noSalesStockoutDays)
		prediction.RecommendedOrderDate = prediction.StockoutDate.AddDate(0, 0, -(f.cfg.LeadTimeDays + f.cfg.SafetyStockDays))
		return prediction
	}

	prediction.DaysUntilStockout = int(math.Floor(float64(inventory.CurrentStock) / adjusted))
	prediction.StockoutDate = now.AddDate(0, 0, prediction.DaysUntilStockout)
	prediction.Urgency = f.urgency(prediction.DaysUntilStockout)
	prediction.RecommendedOrderQuantity = int(math.Ceil(adjusted * float64(f.cfg.CoverDays+f.cfg.SafetyStockDays)))
	prediction.RecommendedOrderDate = prediction.StockoutDate.AddDate(0, 0, -(f.cfg.LeadTimeDays + f.cfg.SafetyStockDays))
	return prediction
}

// urgency tiers stockout risk against the lead time; both boundaries are
// inclusive.
func (f *Forecaster) urgency(daysUntilStockout int) model.Urgency {
	switch {
	case daysUntilStockout <= f.cfg.LeadTimeDays:
		return model.UrgencyCritical
	case daysUntilStockout <= f.cfg.LeadTimeDays+f.cfg.SafetyStockDays:
		return model.UrgencyWarning
	default:
		return model.UrgencyNormal
	}
}

// detectTrend compares the mean of the last trend-window weekly buckets
// against the mean of the preceding window.
func (f *Forecaster) detectTrend(weekly []int) model.SalesTrend {
	window := f.cfg.TrendWindowWeeks
	if len(weekly) < window*2 {
		return model.TrendStable
	}

	recent := mean(weekly[len(weekly)-window:])
	prior := mean(weekly[len(weekly)-window*2 : len(weekly)-window])
	if prior == 0 {
		if recent > 0 {
			return model.TrendIncreasing
		}
		return model.TrendStable
	}

	change := (recent - prior) / prior
	switch {
	case change > f.cfg.TrendUpThreshold:
		return model.TrendIncreasing
	case change < f.cfg.TrendDownThreshold:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

// mean returns the arithmetic mean of values, or 0 for an empty slice.
func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

// weeklyBuckets groups sales by calendar week, weeks starting on the most
// recent prior Sunday, ordered oldest first. Records without dates are
// excluded.
func weeklyBuckets(sales []model.DailySalesRecord) []int {
	totals := make(map[time.Time]int)
	var weeks []time.Time

	for _, record := range sales {
		if record.Date.IsZero() {
			continue
		}
		week := weekStart(record.Date)
		if _, seen := totals[week]; !seen {
			weeks = append(weeks, week)
		}
		totals[week] += record.QuantitySold
	}

	sort.Slice(weeks, func(a, b int) bool { return weeks[a].Before(weeks[b]) })
	buckets := make([]int, 0, len(weeks))
	for _, week := range weeks {
		buckets = append(buckets, totals[week])
	}
	return buckets
}

// weekStart returns the most recent Sunday at or before t, at midnight UTC.
func weekStart(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// Summarize counts predictions per urgency tier.
func Summarize(predictions []model.ProductPrediction) model.ForecastSummary {
	summary := model.ForecastSummary{TotalProducts: len(predictions)}
	for _, p := range predictions {
		switch p.Urgency {
		case model.UrgencyCritical:
			summary.CriticalCount++
		case model.UrgencyWarning:
			summary.WarningCount++
		default:
			summary.NormalCount++
		}
	}
	return summary
}

// UrgentAlerts renders alert strings for critical and warning products.
func UrgentAlerts(predictions []model.ProductPrediction) []string {
	alerts := make([]string, 0)
	for _, p := range predictions {
		switch p.Urgency {
		case model.UrgencyCritical:
			alerts = append(alerts, fmt.Sprintf(
				"CRITICAL: %q runs out in %d days (stock %d, selling %.1f/day); reorder immediately",
				p.ProductName, p.DaysUntilStockout, p.CurrentStock, p.AdjustedDailySales))
		case model.UrgencyWarning:
			alerts = append(alerts, fmt.Sprintf(
				"WARNING: %q runs out in %d days; reorder by %s",
				p.ProductName, p.DaysUntilStockout, p.RecommendedOrderDate.Format("2006-01-02")))
		}
	}
	return alerts
}
