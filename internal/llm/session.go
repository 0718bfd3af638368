package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// sessionState tracks the tool-use loop as an explicit state machine rather
// than an open-ended request/response chain.
type sessionState int

const (
	stateAwaitingResponse sessionState = iota
	stateExecutingTools
	stateDone
)

// ToolFunc executes one tool call locally. Arguments arrive as the
// provider's untrusted JSON string; the result is JSON-stringified and sent
// back as a role:tool message.
type ToolFunc func(ctx context.Context, arguments json.RawMessage) (string, error)

// Session runs a bounded conversational exchange in which the provider may
// request locally-executed tool calls before producing its final answer.
type Session struct {
	client    Client
	logger    *slog.Logger
	tools     map[string]ToolFunc
	toolDefs  []Tool
	maxRounds int
}

// DefaultMaxRounds caps the tool-use loop; exceeding it fails the session.
const DefaultMaxRounds = 5

// NewSession creates a session over the given client.
func NewSession(client Client, logger *slog.Logger, maxRounds int) *Session {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Session{
		client:    client,
		logger:    logger,
		tools:     make(map[string]ToolFunc),
		maxRounds: maxRounds,
	}
}

// RegisterTool offers a tool to the provider for the lifetime of the session.
func (s *Session) RegisterTool(def Tool, fn ToolFunc) {
	s.tools[def.Name] = fn
	s.toolDefs = append(s.toolDefs, def)
}

// Run drives the exchange to completion: send the conversation, execute any
// requested tool calls locally, append their results, and repeat until the
// provider answers with content or the round cap is hit.
func (s *Session) Run(ctx context.Context, messages []Message) (string, error) {
	state := stateAwaitingResponse

	for round := 0; round < s.maxRounds; round++ {
		if state != stateAwaitingResponse {
			return "", fmt.Errorf("unexpected session state %d", state)
		}

		resp, err := s.client.Complete(ctx, Request{
			Messages: messages,
			Tools:    s.toolDefs,
		})
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 {
			state = stateDone
		}
		if state == stateDone {
			return resp.Content, nil
		}

		state = stateExecutingTools
		messages = append(messages, Message{
			Role:      RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result := s.executeTool(ctx, call)
			messages = append(messages, Message{
				Role:       RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
		state = stateAwaitingResponse
	}

	return "", fmt.Errorf("%w: %d rounds", ErrMaxIterations, s.maxRounds)
}

// executeTool runs one requested call; failures are reported back to the
// provider as error payloads rather than aborting the session.
func (s *Session) executeTool(ctx context.Context, call ToolCall) string {
	fn, ok := s.tools[call.Name]
	if !ok {
		s.logger.Warn("provider requested unknown tool", "tool", call.Name)
		return fmt.Sprintf(`{"error":"unknown tool %q"}`, call.Name)
	}

	result, err := fn(ctx, json.RawMessage(call.Arguments))
	if err != nil {
		s.logger.Warn("tool execution failed", "tool", call.Name, "error", err)
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	s.logger.Debug("tool executed", "tool", call.Name)
	return result
}
