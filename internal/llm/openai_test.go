package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-dracula/merchantlens/internal/common"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestOpenAIComplete(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "hello"}}],
			"usage": {"total_tokens": 42}
		}`))
	})

	resp, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, 42, resp.TokensUsed)
}

func TestOpenAICompleteToolCalls(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotNil(t, body["tools"])
		assert.Equal(t, "auto", body["tool_choice"])

		_, _ = w.Write([]byte(`{
			"choices": [{"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [{"id": "call_1", "type": "function", "function": {"name": "calculator", "arguments": "{\"operation\":\"sum\"}"}}]
			}}]
		}`))
	})

	resp, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "compute"}},
		Tools:    []Tool{{Name: "calculator", Parameters: json.RawMessage(`{"type":"object"}`)}},
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "calculator", resp.ToolCalls[0].Name)
	assert.Equal(t, `{"operation":"sum"}`, resp.ToolCalls[0].Arguments)
}

func TestOpenAICompleteEmptyChoices(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIRequiresAPIKey(t *testing.T) {
	_, err := newOpenAIClient(Config{})
	assert.Error(t, err)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		header    http.Header
		sentinel  error
		retryable bool
	}{
		{name: "unauthorized", status: 401, body: `{"error":{"message":"bad key"}}`, sentinel: ErrAuth},
		{name: "forbidden", status: 403, sentinel: ErrAuth},
		{name: "payment required", status: 402, sentinel: ErrQuota},
		{name: "quota in body", status: 429, body: `{"error":{"type":"insufficient_quota"}}`, sentinel: ErrQuota},
		{name: "server error", status: 500, retryable: true},
		{name: "bad request", status: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			err := classifyHTTPError(resp, []byte(tt.body))

			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			var retryableErr *common.RetryableError
			require.ErrorAs(t, err, &retryableErr)
			assert.Equal(t, tt.retryable, retryableErr.Retryable)
		})
	}
}

func TestClassifyHTTPErrorRateLimit(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Header:     http.Header{"Retry-After": []string{"3"}},
	}
	err := classifyHTTPError(resp, nil)

	assert.ErrorIs(t, err, common.ErrRateLimit)
	var rateLimitErr *common.RateLimitError
	require.ErrorAs(t, err, &rateLimitErr)
	assert.Equal(t, 3*time.Second, rateLimitErr.RetryAfter)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter("5"))
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("garbage"))

	future := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
	assert.Greater(t, parseRetryAfter(future), 5*time.Second)
}

func TestNetworkErrorIsRetryable(t *testing.T) {
	client, err := newOpenAIClient(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{})
	var retryableErr *common.RetryableError
	require.True(t, errors.As(err, &retryableErr))
	assert.True(t, retryableErr.Retryable)
}
