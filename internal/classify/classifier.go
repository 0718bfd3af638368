// Package classify assigns free-text cost labels to the fixed expense
// categories. Keyword matching handles the common case with zero latency;
// a single batched AI call covers only the labels keywords cannot resolve.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/D-dracula/merchantlens/internal/common"
	"github.com/D-dracula/merchantlens/internal/llm"
	"github.com/D-dracula/merchantlens/internal/model"
)

// categoryKeywords drive the first, deterministic tier. Matching is
// lowercase substring; first category to match wins, in this order.
var categoryKeywords = []struct {
	category model.ExpenseCategory
	keywords []string
}{
	{model.CategoryRefund, []string{"refund", "return", "cancelled", "canceled", "chargeback", "استرجاع", "مرتجع", "ملغي"}},
	{model.CategoryTax, []string{"tax", "vat", "ضريبة", "القيمة المضافة"}},
	{model.CategoryShipping, []string{"shipping", "delivery", "carrier", "courier", "aramex", "smsa", "dhl", "fedex", "شحن", "توصيل"}},
	{model.CategoryPaymentGateway, []string{"gateway", "payment fee", "processing", "visa", "mastercard", "mada", "apple pay", "stc pay", "tabby", "tamara", "fee", "بوابة", "مدى", "رسوم الدفع"}},
}

// BatchSize chunks the AI call for unknown labels so prompt size stays
// bounded on pathological files.
const BatchSize = 40

const classifySystemPrompt = `You classify e-commerce cost labels into exactly one of these categories:
payment_gateway, shipping, tax, refund, other.
Respond with ONLY a JSON object mapping each given label to its category, e.g. {"some label":"shipping"}.`

// Classifier resolves cost labels to expense categories.
type Classifier struct {
	client llm.Client
	logger *slog.Logger
	cache  *gocache.Cache
}

// NewClassifier creates a classifier. A nil client disables the AI tier;
// unknown labels then stay in the other bucket.
func NewClassifier(client llm.Client, logger *slog.Logger) *Classifier {
	return &Classifier{
		client: client,
		logger: logger,
		cache:  gocache.New(24*time.Hour, time.Hour),
	}
}

// Classify maps every label to exactly one category. Classification is a
// pure function of the label text: idempotent, order-independent, and
// cacheable. The AI tier never overrides a keyword match, and a recoverable
// AI failure leaves unknowns as other; only fatal provider errors
// (credentials, quota) surface as an error.
func (c *Classifier) Classify(ctx context.Context, labels []string) (map[string]model.ExpenseCategory, error) {
	result := make(map[string]model.ExpenseCategory, len(labels))
	var unknown []string

	for _, label := range labels {
		if _, seen := result[label]; seen {
			continue
		}
		if cached, found := c.cache.Get(cacheKey(label)); found {
			result[label] = cached.(model.ExpenseCategory)
			continue
		}
		if category, ok := KeywordCategory(label); ok {
			result[label] = category
			c.cache.Set(cacheKey(label), category, gocache.DefaultExpiration)
			continue
		}
		result[label] = model.CategoryOther
		unknown = append(unknown, label)
	}

	if len(unknown) == 0 || c.client == nil {
		return result, nil
	}

	sort.Strings(unknown)
	resolved, err := c.classifyUnknowns(ctx, unknown)
	if err != nil {
		return nil, err
	}
	for label, category := range resolved {
		// Merge over the keyword map without overriding keyword matches;
		// only labels still sitting in other are eligible.
		if result[label] != model.CategoryOther {
			continue
		}
		result[label] = category
		c.cache.Set(cacheKey(label), category, gocache.DefaultExpiration)
	}
	return result, nil
}

// KeywordCategory resolves a label through the static keyword table.
func KeywordCategory(label string) (model.ExpenseCategory, bool) {
	lower := strings.ToLower(label)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category, true
			}
		}
	}
	return model.CategoryOther, false
}

// classifyUnknowns issues the batched AI calls. Recoverable failures are
// logged and the affected labels keep their other default; fatal provider
// errors abort.
func (c *Classifier) classifyUnknowns(ctx context.Context, unknown []string) (map[string]model.ExpenseCategory, error) {
	resolved := make(map[string]model.ExpenseCategory, len(unknown))

	for start := 0; start < len(unknown); start += BatchSize {
		end := start + BatchSize
		if end > len(unknown) {
			end = len(unknown)
		}
		batch := unknown[start:end]

		categories, err := c.classifyBatch(ctx, batch)
		if err != nil {
			if common.IsFatalProvider(err) {
				return nil, err
			}
			c.logger.Warn("AI classification failed, labels stay in other",
				"labels", len(batch),
				"error", err)
			continue
		}
		for label, category := range categories {
			resolved[label] = category
		}
	}
	return resolved, nil
}

func (c *Classifier) classifyBatch(ctx context.Context, labels []string) (map[string]model.ExpenseCategory, error) {
	encoded, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("failed to encode labels: %w", err)
	}

	resp, err := c.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: classifySystemPrompt},
			{Role: llm.RoleUser, Content: string(encoded)},
		},
	})
	if err != nil {
		return nil, err
	}

	var raw map[string]string
	if err := llm.DecodeJSON(resp.Content, &raw); err != nil {
		return nil, err
	}

	categories := make(map[string]model.ExpenseCategory, len(raw))
	for label, value := range raw {
		category := model.ExpenseCategory(strings.ToLower(strings.TrimSpace(value)))
		if !category.Valid() {
			continue
		}
		categories[label] = category
	}
	return categories, nil
}

func cacheKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
