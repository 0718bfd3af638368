// Package analyzer wires the full pipelines together: ingestion, sampling,
// schema mapping, classification, profit math and loss attribution for the
// smart-profit analysis, and the independent inventory forecast pipeline.
// Each call is one synchronous batch over one uploaded file; there is no
// shared mutable state between calls.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/D-dracula/merchantlens/internal/advisor"
	"github.com/D-dracula/merchantlens/internal/classify"
	"github.com/D-dracula/merchantlens/internal/forecast"
	"github.com/D-dracula/merchantlens/internal/ingest"
	"github.com/D-dracula/merchantlens/internal/llm"
	"github.com/D-dracula/merchantlens/internal/mapping"
	"github.com/D-dracula/merchantlens/internal/model"
	"github.com/D-dracula/merchantlens/internal/profit"
)

// Options configures one Analyzer. The locale and currency hints affect
// text formatting only, never calculation semantics.
type Options struct {
	Locale   string
	Currency string
	Forecast forecast.Config
	Sampler  *ingest.Sampler
}

// Analyzer is the library entry point consumed by the surrounding
// application. A nil client runs every AI-dependent step on its
// deterministic fallback.
type Analyzer struct {
	client     llm.Client
	logger     *slog.Logger
	mapper     *mapping.Mapper
	classifier *classify.Classifier
	forecaster *forecast.Forecaster
	advisor    *advisor.Advisor
	sampler    *ingest.Sampler
}

// New creates an analyzer with all pipeline stages wired.
func New(client llm.Client, logger *slog.Logger, opts Options) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Forecast.LeadTimeDays <= 0 {
		opts.Forecast = forecast.DefaultConfig()
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = ingest.NewSampler()
	}

	return &Analyzer{
		client:     client,
		logger:     logger,
		mapper:     mapping.NewMapper(client, logger),
		classifier: classify.NewClassifier(client, logger),
		forecaster: forecast.NewForecaster(client, logger, opts.Forecast),
		advisor:    advisor.NewAdvisor(client, logger, opts.Locale, opts.Currency),
		sampler:    sampler,
	}
}

// AnalyzeProfit runs the smart-profit pipeline over one orders file. Only
// ingestion errors and provider credential/quota errors are hard failures;
// every other AI-dependent step degrades to its deterministic fallback, and
// data-quality warnings ride along on the report.
func (a *Analyzer) AnalyzeProfit(ctx context.Context, filename string, payload []byte) (*model.ProfitReport, error) {
	table, err := ingest.Parse(filename, payload)
	if err != nil {
		return nil, err
	}
	a.logger.Info("file ingested",
		"file", filename,
		"rows", len(table.Rows),
		"platform", table.Platform)

	sample := a.sampler.Select(table, ingest.DefaultSampleSize)

	mapped := a.mapper.InferOrderMapping(ctx, sample, table.Headers)
	if mapped.Err != nil {
		return nil, mapped.Err
	}

	orders, stats := mapping.ParseOrders(table.Rows, mapped.Value)
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no rows parsed as valid orders", ingest.ErrEmptyFile)
	}
	a.logger.Info("orders parsed",
		"parsed", stats.ParsedRows,
		"skipped", stats.SkippedRows,
		"mapping_fallback", mapped.FromFallback)

	labels := costLabels(orders)
	categories, err := a.classifier.Classify(ctx, labels)
	if err != nil {
		return nil, err
	}

	report := profit.Analyze(orders, categories)
	losers := profit.AttributeLosses(report.Orders)

	recommendations := a.advisor.ProfitRecommendations(ctx, report.Summary, report.CostBreakdown, losers)
	if recommendations.Err != nil {
		return nil, recommendations.Err
	}

	result := &model.ProfitReport{
		RunID:             uuid.NewString(),
		Platform:          table.Platform,
		Summary:           report.Summary,
		CostBreakdown:     report.CostBreakdown,
		LosingProducts:    losers,
		AIRecommendations: recommendations.Value,
		Warnings:          stats.Warnings,
	}
	if mapped.FromFallback {
		result.Warnings = append(result.Warnings, "column mapping derived from keyword heuristics; verify the detected columns")
	}
	return result, nil
}

// ForecastInventory runs the inventory pipeline over one sales-history
// file.
func (a *Analyzer) ForecastInventory(ctx context.Context, filename string, payload []byte) (*model.ForecastReport, error) {
	table, err := ingest.Parse(filename, payload)
	if err != nil {
		return nil, err
	}
	a.logger.Info("file ingested",
		"file", filename,
		"rows", len(table.Rows),
		"platform", table.Platform)

	sample := a.sampler.Select(table, ingest.DefaultSampleSize)

	mapped := a.mapper.InferStockMapping(ctx, sample, table.Headers)
	if mapped.Err != nil {
		return nil, mapped.Err
	}
	history, stats := mapping.ParseSalesHistory(table.Rows, mapped.Value)
	if len(history.Inventory) == 0 {
		return nil, fmt.Errorf("%w: no rows parsed as sales history", ingest.ErrEmptyFile)
	}

	predictions := a.forecaster.Predict(history)
	seasonal := a.forecaster.SeasonalPatterns(ctx, history)
	if seasonal.Err != nil {
		return nil, seasonal.Err
	}
	summary := forecast.Summarize(predictions)

	recommendations := a.advisor.ForecastRecommendations(ctx, summary, predictions, seasonal.Value)
	if recommendations.Err != nil {
		return nil, recommendations.Err
	}

	result := &model.ForecastReport{
		RunID:               uuid.NewString(),
		Platform:            table.Platform,
		Predictions:         predictions,
		SeasonalityPatterns: seasonal.Value,
		UrgentAlerts:        forecast.UrgentAlerts(predictions),
		Recommendations:     recommendations.Value,
		Summary:             summary,
		Warnings:            stats.Warnings,
	}
	if mapped.FromFallback {
		result.Warnings = append(result.Warnings, "column mapping derived from keyword heuristics; verify the detected columns")
	}
	return result, nil
}

func costLabels(orders []model.OrderRecord) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, order := range orders {
		for label := range order.RawCosts {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}
	return labels
}
