package mapping

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-dracula/merchantlens/internal/common"
	"github.com/D-dracula/merchantlens/internal/llm"
)

type mockClient struct {
	responses []llm.Response
	err       error
	requests  []llm.Request
}

func (m *mockClient) Complete(_ context.Context, req llm.Request) (llm.Response, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return llm.Response{}, m.err
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

var orderHeaders = []string{"Order ID", "Order Date", "Product", "Qty", "Total", "Shipping Fee", "VAT"}

func TestInferOrderMappingFromAI(t *testing.T) {
	client := &mockClient{responses: []llm.Response{{
		Content: `{"orderId":"Order ID","date":"Order Date","productName":"Product","quantity":"Qty","revenue":"Total","unitPrice":"","costs":["Shipping Fee","VAT"]}`,
	}}}
	mapper := NewMapper(client, common.DiscardLogger())

	result := mapper.InferOrderMapping(context.Background(), nil, orderHeaders)
	require.NoError(t, result.Err)
	assert.False(t, result.FromFallback)
	assert.Equal(t, "Total", result.Value.Revenue)
	assert.Equal(t, []string{"Shipping Fee", "VAT"}, result.Value.Costs)
}

func TestInferOrderMappingStripsMarkdownFence(t *testing.T) {
	client := &mockClient{responses: []llm.Response{{
		Content: "```json\n{\"orderId\":\"Order ID\",\"revenue\":\"Total\",\"costs\":[]}\n```",
	}}}
	mapper := NewMapper(client, common.DiscardLogger())

	result := mapper.InferOrderMapping(context.Background(), nil, orderHeaders)
	require.NoError(t, result.Err)
	assert.False(t, result.FromFallback)
	assert.Equal(t, "Total", result.Value.Revenue)
}

func TestInferOrderMappingMalformedJSONFallsBack(t *testing.T) {
	client := &mockClient{responses: []llm.Response{{Content: "I think the Total column is revenue."}}}
	mapper := NewMapper(client, common.DiscardLogger())

	result := mapper.InferOrderMapping(context.Background(), nil, orderHeaders)
	require.NoError(t, result.Err)
	assert.True(t, result.FromFallback)
	assert.Equal(t, KeywordOrderMapping(orderHeaders), result.Value)
}

func TestInferOrderMappingUnknownColumnFallsBack(t *testing.T) {
	client := &mockClient{responses: []llm.Response{{
		Content: `{"revenue":"Grand Total","costs":[]}`,
	}}}
	mapper := NewMapper(client, common.DiscardLogger())

	result := mapper.InferOrderMapping(context.Background(), nil, orderHeaders)
	require.NoError(t, result.Err)
	assert.True(t, result.FromFallback)
	assert.Equal(t, KeywordOrderMapping(orderHeaders), result.Value)
}

func TestInferOrderMappingNilClientFallsBack(t *testing.T) {
	mapper := NewMapper(nil, common.DiscardLogger())

	result := mapper.InferOrderMapping(context.Background(), nil, orderHeaders)
	require.NoError(t, result.Err)
	assert.True(t, result.FromFallback)
	assert.Equal(t, KeywordOrderMapping(orderHeaders), result.Value)
}

func TestInferOrderMappingFatalErrorSurfaces(t *testing.T) {
	client := &mockClient{err: fmt.Errorf("provider: %w", common.ErrAuth)}
	mapper := NewMapper(client, common.DiscardLogger())

	result := mapper.InferOrderMapping(context.Background(), nil, orderHeaders)
	assert.ErrorIs(t, result.Err, common.ErrAuth)
}

func TestInferStockMapping(t *testing.T) {
	headers := []string{"SKU", "Product Name", "Date", "Units Sold", "Current Stock"}
	client := &mockClient{responses: []llm.Response{{
		Content: `{"productId":"SKU","productName":"Product Name","date":"Date","quantitySold":"Units Sold","currentStock":"Current Stock"}`,
	}}}
	mapper := NewMapper(client, common.DiscardLogger())

	result := mapper.InferStockMapping(context.Background(), nil, headers)
	require.NoError(t, result.Err)
	assert.False(t, result.FromFallback)
	assert.Equal(t, "Units Sold", result.Value.QuantitySold)
	assert.Equal(t, "Current Stock", result.Value.CurrentStock)
}
