package model

import "github.com/shopspring/decimal"

// Platform identifies the e-commerce platform an export came from. It is
// metadata only and never gates pipeline behavior.
type Platform string

const (
	// PlatformSalla is the Salla storefront export format.
	PlatformSalla Platform = "salla"
	// PlatformZid is the Zid storefront export format.
	PlatformZid Platform = "zid"
	// PlatformShopify is the Shopify export format.
	PlatformShopify Platform = "shopify"
	// PlatformUnknown is used when no keyword set matches.
	PlatformUnknown Platform = "unknown"
)

// ProfitReport is the complete smart-profit analysis result.
type ProfitReport struct {
	RunID             string                              `json:"runId"`
	Platform          Platform                            `json:"platform"`
	Summary           ProfitSummary                       `json:"summary"`
	CostBreakdown     map[ExpenseCategory]decimal.Decimal `json:"costBreakdown"`
	LosingProducts    []ProductLossAnalysis               `json:"losingProducts"`
	AIRecommendations []string                            `json:"aiRecommendations"`
	Warnings          []string                            `json:"warnings"`
}

// ForecastSummary aggregates the prediction set.
type ForecastSummary struct {
	TotalProducts int `json:"totalProducts"`
	CriticalCount int `json:"criticalCount"`
	WarningCount  int `json:"warningCount"`
	NormalCount   int `json:"normalCount"`
}

// ForecastReport is the complete inventory forecast result.
type ForecastReport struct {
	RunID               string              `json:"runId"`
	Platform            Platform            `json:"platform"`
	Predictions         []ProductPrediction `json:"predictions"`
	SeasonalityPatterns []SeasonalPattern   `json:"seasonalityPatterns"`
	UrgentAlerts        []string            `json:"urgentAlerts"`
	Recommendations     []string            `json:"recommendations"`
	Summary             ForecastSummary     `json:"summary"`
	Warnings            []string            `json:"warnings"`
}
