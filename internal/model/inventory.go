package model

import "time"

// ProductInventory is the current stock position for one product,
// constructed once per analysis run and never mutated afterwards.
type ProductInventory struct {
	ProductID    string
	ProductName  string
	CurrentStock int
}

// DailySalesRecord is one day of sales history for a product.
type DailySalesRecord struct {
	Date         time.Time
	QuantitySold int
}

// SalesTrend classifies recent demand direction.
type SalesTrend string

const (
	// TrendIncreasing means recent weekly sales exceed the prior window.
	TrendIncreasing SalesTrend = "increasing"
	// TrendStable means recent sales are within the trend thresholds.
	TrendStable SalesTrend = "stable"
	// TrendDecreasing means recent weekly sales fell below the prior window.
	TrendDecreasing SalesTrend = "decreasing"
)

// Urgency tiers a product's stockout risk against the reorder lead time.
type Urgency string

const (
	// UrgencyCritical means stock runs out within the lead time.
	UrgencyCritical Urgency = "critical"
	// UrgencyWarning means stock runs out within lead time plus the
	// safety-stock buffer.
	UrgencyWarning Urgency = "warning"
	// UrgencyNormal means there is comfortable cover.
	UrgencyNormal Urgency = "normal"
)

// ProductPrediction is the forecast for one product. It is derived fresh
// every run and has no identity beyond the run.
type ProductPrediction struct {
	ProductID                string     `json:"productId"`
	ProductName              string     `json:"productName"`
	CurrentStock             int        `json:"currentStock"`
	AverageDailySales        float64    `json:"averageDailySales"`
	AdjustedDailySales       float64    `json:"adjustedDailySales"`
	SalesTrend               SalesTrend `json:"salesTrend"`
	WeeklySales              []int      `json:"weeklySales"`
	DaysUntilStockout        int        `json:"daysUntilStockout"`
	StockoutDate             time.Time  `json:"stockoutDate"`
	Urgency                  Urgency    `json:"urgency"`
	RecommendedOrderQuantity int        `json:"recommendedOrderQuantity"`
	RecommendedOrderDate     time.Time  `json:"recommendedOrderDate"`
}

// SeasonalPattern is a named demand-increase period, AI-derived or taken
// from the static fallback table.
type SeasonalPattern struct {
	Period                 string   `json:"period"`
	ExpectedDemandIncrease float64  `json:"expectedDemandIncrease"`
	AffectedProducts       []string `json:"affectedProducts"`
}
