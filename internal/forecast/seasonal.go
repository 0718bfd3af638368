package forecast

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/D-dracula/merchantlens/internal/common"
	"github.com/D-dracula/merchantlens/internal/llm"
	"github.com/D-dracula/merchantlens/internal/mapping"
	"github.com/D-dracula/merchantlens/internal/model"
)

const seasonalSystemPrompt = `You analyze monthly sales totals from an e-commerce store and name recurring high-demand periods.
Respond with ONLY a JSON array of objects:
[{"period":"","expectedDemandIncrease":0,"affectedProducts":[]}]
expectedDemandIncrease is a percentage. Use only product names that appear in the data.`

// staticSeasonalTable is the deterministic fallback, keyed by calendar
// month. Recurring retail periods for the stores this tool serves.
var staticSeasonalTable = map[time.Month][]model.SeasonalPattern{
	time.January:   {{Period: "New year promotions", ExpectedDemandIncrease: 15}},
	time.February:  {{Period: "Founding day sales", ExpectedDemandIncrease: 10}},
	time.March:     {{Period: "Pre-Ramadan stock-up", ExpectedDemandIncrease: 20}},
	time.April:     {{Period: "Eid gifting season", ExpectedDemandIncrease: 35}},
	time.May:       {{Period: "Post-Eid normalization", ExpectedDemandIncrease: 5}},
	time.June:      {{Period: "Summer travel season", ExpectedDemandIncrease: 10}},
	time.July:      {{Period: "Summer sales", ExpectedDemandIncrease: 10}},
	time.August:    {{Period: "Back to school", ExpectedDemandIncrease: 25}},
	time.September: {{Period: "National day promotions", ExpectedDemandIncrease: 20}},
	time.October:   {{Period: "Pre-White-Friday buildup", ExpectedDemandIncrease: 10}},
	time.November:  {{Period: "White Friday", ExpectedDemandIncrease: 40}},
	time.December:  {{Period: "Year-end sales", ExpectedDemandIncrease: 20}},
}

// SeasonalPatterns produces the seasonal demand overlay: AI-derived from
// monthly aggregates when possible, otherwise the static table for the
// current month. The result is never silently empty.
func (f *Forecaster) SeasonalPatterns(ctx context.Context, history mapping.SalesHistory) common.Sourced[[]model.SeasonalPattern] {
	return common.WithFallback(ctx, f.logger, "seasonality",
		func(ctx context.Context) ([]model.SeasonalPattern, error) {
			if f.client == nil {
				return nil, fmt.Errorf("no AI client configured")
			}

			resp, err := f.client.Complete(ctx, llm.Request{
				Messages: []llm.Message{
					{Role: llm.RoleSystem, Content: seasonalSystemPrompt},
					{Role: llm.RoleUser, Content: monthlyAggregatePrompt(history)},
				},
			})
			if err != nil {
				return nil, err
			}

			var patterns []model.SeasonalPattern
			if err := llm.DecodeJSON(resp.Content, &patterns); err != nil {
				return nil, err
			}
			if len(patterns) == 0 {
				return nil, fmt.Errorf("provider returned no seasonal patterns")
			}
			return patterns, nil
		},
		func() []model.SeasonalPattern {
			return StaticSeasonalPatterns(f.now())
		})
}

// StaticSeasonalPatterns returns the fallback entries for the given date's
// month. Every month has at least one entry.
func StaticSeasonalPatterns(now time.Time) []model.SeasonalPattern {
	patterns := staticSeasonalTable[now.Month()]
	out := make([]model.SeasonalPattern, len(patterns))
	copy(out, patterns)
	return out
}

// monthlyAggregatePrompt summarizes the history into per-month totals so
// the AI call stays bounded regardless of history length.
func monthlyAggregatePrompt(history mapping.SalesHistory) string {
	type monthKey struct {
		year  int
		month time.Month
	}
	totals := make(map[monthKey]int)
	var keys []monthKey

	for _, records := range history.Sales {
		for _, record := range records {
			if record.Date.IsZero() {
				continue
			}
			key := monthKey{record.Date.Year(), record.Date.Month()}
			if _, seen := totals[key]; !seen {
				keys = append(keys, key)
			}
			totals[key] += record.QuantitySold
		}
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].year != keys[b].year {
			return keys[a].year < keys[b].year
		}
		return keys[a].month < keys[b].month
	})

	var b strings.Builder
	b.WriteString("Monthly units sold:\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "%d-%02d: %d\n", key.year, int(key.month), totals[key])
	}

	b.WriteString("\nProducts: ")
	names := make([]string, 0, len(history.Inventory))
	for name := range history.Inventory {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString(strings.Join(names, ", "))
	return b.String()
}
