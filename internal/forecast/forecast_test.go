package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-dracula/merchantlens/internal/common"
	"github.com/D-dracula/merchantlens/internal/mapping"
	"github.com/D-dracula/merchantlens/internal/model"
)

// fixedNow pins predictions to a known date; 2026-03-16 is a Monday.
var fixedNow = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

func newTestForecaster() *Forecaster {
	f := NewForecaster(nil, common.DiscardLogger(), DefaultConfig())
	f.now = func() time.Time { return fixedNow }
	return f
}

// steadySales returns days records of perDay units each, ending the day
// before fixedNow.
func steadySales(days, perDay int) []model.DailySalesRecord {
	records := make([]model.DailySalesRecord, 0, days)
	for i := days; i >= 1; i-- {
		records = append(records, model.DailySalesRecord{
			Date:         fixedNow.AddDate(0, 0, -i),
			QuantitySold: perDay,
		})
	}
	return records
}

func historyOf(name string, stock int, sales []model.DailySalesRecord) mapping.SalesHistory {
	return mapping.SalesHistory{
		Inventory: map[string]model.ProductInventory{
			name: {ProductName: name, CurrentStock: stock},
		},
		Sales: map[string][]model.DailySalesRecord{name: sales},
	}
}

func TestPredictSteadySeller(t *testing.T) {
	// 100 in stock at 10/day leaves 10 days of cover, inside the 14-day
	// lead time.
	f := newTestForecaster()

	predictions := f.Predict(historyOf("Widget", 100, steadySales(10, 10)))
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.InDelta(t, 10.0, p.AverageDailySales, 0.001)
	assert.Equal(t, model.TrendStable, p.SalesTrend)
	assert.InDelta(t, 10.0, p.AdjustedDailySales, 0.001)
	assert.Equal(t, 10, p.DaysUntilStockout)
	assert.Equal(t, model.UrgencyCritical, p.Urgency)
	assert.Equal(t, fixedNow.AddDate(0, 0, 10), p.StockoutDate)

	// Reorder quantity covers 30 days plus 7 safety days.
	assert.Equal(t, 370, p.RecommendedOrderQuantity)
	// Order date backs off lead time plus safety stock from the stockout.
	assert.Equal(t, p.StockoutDate.AddDate(0, 0, -21), p.RecommendedOrderDate)
}

func TestUrgencyBoundaries(t *testing.T) {
	f := newTestForecaster()
	tests := []struct {
		name  string
		stock int
		want  model.Urgency
	}{
		{name: "exactly lead time is critical", stock: 140, want: model.UrgencyCritical},
		{name: "one past lead time is warning", stock: 150, want: model.UrgencyWarning},
		{name: "exactly lead plus safety is warning", stock: 210, want: model.UrgencyWarning},
		{name: "past lead plus safety is normal", stock: 220, want: model.UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictions := f.Predict(historyOf("Widget", tt.stock, steadySales(10, 10)))
			require.Len(t, predictions, 1)
			assert.Equal(t, tt.want, predictions[0].Urgency)
		})
	}
}

func TestPredictZeroSales(t *testing.T) {
	f := newTestForecaster()

	predictions := f.Predict(historyOf("Dust Collector", 50, nil))
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Zero(t, p.AverageDailySales)
	assert.Equal(t, noSalesStockoutDays, p.DaysUntilStockout)
	assert.Equal(t, model.UrgencyNormal, p.Urgency)
}

func TestPredictIncreasingTrendAdjustsVelocity(t *testing.T) {
	f := newTestForecaster()

	// Four full Sunday-to-Saturday weeks (2026-02-15 through 2026-03-14):
	// two quiet, then two busy, well past the +15% threshold.
	var sales []model.DailySalesRecord
	for week := 0; week < 4; week++ {
		perDay := 5
		if week >= 2 {
			perDay = 10
		}
		for day := 0; day < 7; day++ {
			sales = append(sales, model.DailySalesRecord{
				Date:         fixedNow.AddDate(0, 0, -29+week*7+day),
				QuantitySold: perDay,
			})
		}
	}

	predictions := f.Predict(historyOf("Riser", 1000, sales))
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Equal(t, model.TrendIncreasing, p.SalesTrend)
	assert.InDelta(t, p.AverageDailySales*1.15, p.AdjustedDailySales, 0.001)
}

func TestPredictDecreasingTrendAdjustsVelocity(t *testing.T) {
	f := newTestForecaster()

	var sales []model.DailySalesRecord
	for week := 0; week < 4; week++ {
		perDay := 10
		if week >= 2 {
			perDay = 5
		}
		for day := 0; day < 7; day++ {
			sales = append(sales, model.DailySalesRecord{
				Date:         fixedNow.AddDate(0, 0, -29+week*7+day),
				QuantitySold: perDay,
			})
		}
	}

	predictions := f.Predict(historyOf("Fader", 1000, sales))
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Equal(t, model.TrendDecreasing, p.SalesTrend)
	assert.InDelta(t, p.AverageDailySales*0.90, p.AdjustedDailySales, 0.001)
}

func TestDetectTrendTooFewWeeksIsStable(t *testing.T) {
	f := newTestForecaster()
	assert.Equal(t, model.TrendStable, f.detectTrend([]int{10, 20, 30}))
}

func TestDetectTrendWithinThresholdIsStable(t *testing.T) {
	f := newTestForecaster()
	assert.Equal(t, model.TrendStable, f.detectTrend([]int{100, 100, 110, 104}))
}

func TestWeekStart(t *testing.T) {
	// 2026-03-18 is a Wednesday; its week starts Sunday 2026-03-15.
	wednesday := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, sunday, weekStart(wednesday))
	assert.Equal(t, sunday, weekStart(sunday))
}

func TestWeeklyBuckets(t *testing.T) {
	sales := []model.DailySalesRecord{
		{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), QuantitySold: 3},  // Monday week 1
		{Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), QuantitySold: 4}, // Wednesday week 1
		{Date: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), QuantitySold: 5}, // Monday week 2
		{QuantitySold: 99}, // no date, excluded
	}

	assert.Equal(t, []int{7, 5}, weeklyBuckets(sales))
}

func TestPredictSortedMostUrgentFirst(t *testing.T) {
	f := newTestForecaster()
	history := mapping.SalesHistory{
		Inventory: map[string]model.ProductInventory{
			"Plenty": {ProductName: "Plenty", CurrentStock: 1000},
			"Scarce": {ProductName: "Scarce", CurrentStock: 20},
		},
		Sales: map[string][]model.DailySalesRecord{
			"Plenty": steadySales(10, 10),
			"Scarce": steadySales(10, 10),
		},
	}

	predictions := f.Predict(history)
	require.Len(t, predictions, 2)
	assert.Equal(t, "Scarce", predictions[0].ProductName)
}

func TestSummarize(t *testing.T) {
	predictions := []model.ProductPrediction{
		{Urgency: model.UrgencyCritical},
		{Urgency: model.UrgencyCritical},
		{Urgency: model.UrgencyWarning},
		{Urgency: model.UrgencyNormal},
	}

	summary := Summarize(predictions)
	assert.Equal(t, 4, summary.TotalProducts)
	assert.Equal(t, 2, summary.CriticalCount)
	assert.Equal(t, 1, summary.WarningCount)
	assert.Equal(t, 1, summary.NormalCount)
}

func TestUrgentAlerts(t *testing.T) {
	predictions := []model.ProductPrediction{
		{ProductName: "Scarce", Urgency: model.UrgencyCritical, DaysUntilStockout: 3, CurrentStock: 30, AdjustedDailySales: 10},
		{ProductName: "Soon", Urgency: model.UrgencyWarning, DaysUntilStockout: 18, RecommendedOrderDate: fixedNow},
		{ProductName: "Fine", Urgency: model.UrgencyNormal},
	}

	alerts := UrgentAlerts(predictions)
	require.Len(t, alerts, 2)
	assert.Contains(t, alerts[0], "CRITICAL")
	assert.Contains(t, alerts[0], "Scarce")
	assert.Contains(t, alerts[1], "WARNING")
}
