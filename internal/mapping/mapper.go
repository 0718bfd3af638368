// Package mapping infers a column-to-semantic-field mapping for ingested
// files and applies it locally to every row. The AI assistant sees only a
// small sample and proposes column names, never per-row values, so parsing
// stays a deterministic O(rows) pass with a single bounded AI call.
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/D-dracula/merchantlens/internal/common"
	"github.com/D-dracula/merchantlens/internal/llm"
	"github.com/D-dracula/merchantlens/internal/model"
)

// Mapper infers schemas with the AI assistant and falls back to keyword
// heuristics when the assistant is unavailable or proposes an invalid
// mapping.
type Mapper struct {
	client llm.Client
	logger *slog.Logger
}

// NewMapper creates a mapper. A nil client skips the AI path entirely.
func NewMapper(client llm.Client, logger *slog.Logger) *Mapper {
	return &Mapper{client: client, logger: logger}
}

const orderMappingSystemPrompt = `You map spreadsheet columns from e-commerce order exports to semantic fields.
Respond with ONLY a JSON object of this exact shape, using actual column names from the provided headers, or "" when no column fits:
{"orderId":"","date":"","productName":"","quantity":"","revenue":"","unitPrice":"","costs":[]}
"revenue" must be an order-total column that excludes fees; never map a cost column to it.
"costs" lists every fee, shipping, tax or refund column.`

const stockMappingSystemPrompt = `You map spreadsheet columns from e-commerce sales-history exports to semantic fields.
Respond with ONLY a JSON object of this exact shape, using actual column names from the provided headers, or "" when no column fits:
{"productId":"","productName":"","date":"","quantitySold":"","currentStock":""}`

// InferOrderMapping proposes a ColumnMapping for an orders file. The result
// is always usable: the AI path is validated against the real headers and
// any failure degrades to the keyword heuristic.
func (m *Mapper) InferOrderMapping(ctx context.Context, sample []model.RawRow, headers []string) common.Sourced[model.ColumnMapping] {
	return common.WithFallback(ctx, m.logger, "schema_mapping",
		func(ctx context.Context) (model.ColumnMapping, error) {
			if m.client == nil {
				return model.ColumnMapping{}, fmt.Errorf("no AI client configured")
			}

			resp, err := m.client.Complete(ctx, llm.Request{
				Messages: []llm.Message{
					{Role: llm.RoleSystem, Content: orderMappingSystemPrompt},
					{Role: llm.RoleUser, Content: buildMappingPrompt(sample, headers)},
				},
			})
			if err != nil {
				return model.ColumnMapping{}, err
			}

			var proposed model.ColumnMapping
			if err := llm.DecodeJSON(resp.Content, &proposed); err != nil {
				return model.ColumnMapping{}, err
			}
			if err := proposed.Validate(headers); err != nil {
				return model.ColumnMapping{}, fmt.Errorf("proposed mapping rejected: %w", err)
			}
			return proposed, nil
		},
		func() model.ColumnMapping {
			return KeywordOrderMapping(headers)
		})
}

// InferStockMapping proposes a StockMapping for a sales-history file.
func (m *Mapper) InferStockMapping(ctx context.Context, sample []model.RawRow, headers []string) common.Sourced[model.StockMapping] {
	return common.WithFallback(ctx, m.logger, "stock_schema_mapping",
		func(ctx context.Context) (model.StockMapping, error) {
			if m.client == nil {
				return model.StockMapping{}, fmt.Errorf("no AI client configured")
			}

			resp, err := m.client.Complete(ctx, llm.Request{
				Messages: []llm.Message{
					{Role: llm.RoleSystem, Content: stockMappingSystemPrompt},
					{Role: llm.RoleUser, Content: buildMappingPrompt(sample, headers)},
				},
			})
			if err != nil {
				return model.StockMapping{}, err
			}

			var proposed model.StockMapping
			if err := llm.DecodeJSON(resp.Content, &proposed); err != nil {
				return model.StockMapping{}, err
			}
			if err := proposed.Validate(headers); err != nil {
				return model.StockMapping{}, fmt.Errorf("proposed mapping rejected: %w", err)
			}
			return proposed, nil
		},
		func() model.StockMapping {
			return KeywordStockMapping(headers)
		})
}

// buildMappingPrompt renders the headers and sampled rows into a compact
// prompt. Sample size is bounded upstream, so prompt size is constant.
func buildMappingPrompt(sample []model.RawRow, headers []string) string {
	var b strings.Builder
	b.WriteString("Headers: ")
	b.WriteString(strings.Join(headers, " | "))
	b.WriteString("\n\nSample rows:\n")

	for i, row := range sample {
		encoded, err := json.Marshal(row)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%d: %s\n", i+1, encoded)
	}
	return b.String()
}
