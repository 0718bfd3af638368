// Package llm provides chat-completion clients for the external AI provider
// and the bounded tool-use session built on top of them.
package llm

import (
	"context"
	"encoding/json"
	"time"
)

// Role values for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry in a chat-completion conversation.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a provider request to invoke a locally-executed tool.
// Arguments is an untrusted JSON string and must be validated before use.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool describes a capability offered to the provider.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// Request is a single chat-completion call. Model overrides the client's
// configured model when non-empty.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []Tool
	Temperature float64
	MaxTokens   int
}

// Response is the provider's answer. Consumers must treat Content as
// untrusted text and any embedded JSON as requiring validation.
type Response struct {
	Content    string
	ToolCalls  []ToolCall
	TokensUsed int
}

// Client is the provider-facing interface. Implementations are safe for
// concurrent use.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Config holds provider configuration shared by all clients.
type Config struct {
	Provider      string
	APIKey        string
	Model         string
	FallbackModel string
	MaxRetries    int
	RetryDelay    time.Duration
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
	BaseURL       string
}
