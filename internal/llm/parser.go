package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// cleanMarkdownWrapper strips markdown code fences some models insist on
// wrapping JSON responses in, plus any prose before the first brace.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx != -1 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	// Some responses prepend commentary; recover the JSON object if there
	// is exactly one top-level brace pair to find.
	if !strings.HasPrefix(content, "{") && !strings.HasPrefix(content, "[") {
		start := strings.IndexAny(content, "{[")
		if start >= 0 {
			end := strings.LastIndexAny(content, "}]")
			if end > start {
				content = content[start : end+1]
			}
		}
	}

	return content
}

// DecodeJSON decodes untrusted provider output into v after stripping
// markdown wrappers. Callers validate the decoded value before using it;
// malformed JSON surfaces as an error so the caller can fall back.
func DecodeJSON(content string, v any) error {
	cleaned := cleanMarkdownWrapper(content)
	if err := json.NewDecoder(bytes.NewReader([]byte(cleaned))).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON in provider response: %w", err)
	}
	return nil
}
