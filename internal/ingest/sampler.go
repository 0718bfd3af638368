package ingest

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/D-dracula/merchantlens/internal/model"
)

// DefaultSampleSize bounds AI prompt size regardless of file size.
const DefaultSampleSize = 9

// valueColumnKeywords locate the column used to rank rows by monetary value.
var valueColumnKeywords = []string{"total", "amount", "revenue", "sales", "price", "المبلغ", "الاجمالي", "الإجمالي"}

// costColumnKeywords locate cost-bearing columns for the densest-row pick.
var costColumnKeywords = []string{"shipping", "fee", "tax", "vat", "refund", "cost", "commission", "شحن", "رسوم", "ضريبة"}

// Sampler selects a small, scenario-covering subset of rows. The
// deterministic picks come first; random fill tops the sample up to size.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler with a time-seeded RNG.
func NewSampler() *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSamplerWithSeed creates a sampler with a fixed seed, for tests.
func NewSamplerWithSeed(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Select returns up to size rows covering the typical case, extremes,
// anomalies, the densest cost row, the middle and the 75th percentile, then
// random fill. Files with size rows or fewer pass through unchanged.
func (s *Sampler) Select(table *Table, size int) []model.RawRow {
	if size <= 0 {
		size = DefaultSampleSize
	}
	rows := table.Rows
	if len(rows) <= size {
		return rows
	}

	valueColumn := findColumn(table.Headers, valueColumnKeywords)
	picked := make(map[int]struct{}, size)
	order := make([]int, 0, size)

	pick := func(idx int) {
		if idx < 0 || idx >= len(rows) {
			return
		}
		if _, ok := picked[idx]; ok {
			return
		}
		picked[idx] = struct{}{}
		order = append(order, idx)
	}

	// Typical case.
	pick(0)

	if valueColumn != "" {
		ranked := rankByValue(rows, valueColumn)
		if len(ranked) > 0 {
			// Extremes of the value distribution.
			pick(ranked[len(ranked)-1].index) // max
			pick(minPositive(ranked))
			pick(zeroOrNegative(ranked))
			// 75th percentile.
			pick(ranked[(len(ranked)*3)/4].index)
		}
	}

	pick(densestCostRow(table.Headers, rows))
	pick(len(rows) / 2)

	// Random fill until the sample is full.
	for len(order) < size {
		pick(s.rng.Intn(len(rows)))
	}

	sample := make([]model.RawRow, 0, len(order))
	for _, idx := range order {
		sample = append(sample, rows[idx])
	}
	return sample
}

type rankedRow struct {
	index int
	value decimal.Decimal
}

// rankByValue sorts row indices ascending by the parsed value column,
// skipping unparsable cells.
func rankByValue(rows []model.RawRow, column string) []rankedRow {
	ranked := make([]rankedRow, 0, len(rows))
	for i, row := range rows {
		value, err := ParseAmount(row[column])
		if err != nil {
			continue
		}
		ranked = append(ranked, rankedRow{index: i, value: value})
	}
	sort.Slice(ranked, func(a, b int) bool {
		return ranked[a].value.LessThan(ranked[b].value)
	})
	return ranked
}

func minPositive(ranked []rankedRow) int {
	for _, r := range ranked {
		if r.value.IsPositive() {
			return r.index
		}
	}
	return -1
}

func zeroOrNegative(ranked []rankedRow) int {
	for _, r := range ranked {
		if !r.value.IsPositive() {
			return r.index
		}
	}
	return -1
}

// densestCostRow returns the row with the most populated cost columns.
func densestCostRow(headers []string, rows []model.RawRow) int {
	costColumns := make([]string, 0, len(headers))
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, keyword := range costColumnKeywords {
			if strings.Contains(lower, keyword) {
				costColumns = append(costColumns, h)
				break
			}
		}
	}
	if len(costColumns) == 0 {
		return -1
	}

	best, bestCount := -1, 0
	for i, row := range rows {
		count := 0
		for _, column := range costColumns {
			if strings.TrimSpace(row[column]) != "" {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

func findColumn(headers []string, keywords []string) string {
	for _, keyword := range keywords {
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), keyword) {
				return h
			}
		}
	}
	return ""
}
