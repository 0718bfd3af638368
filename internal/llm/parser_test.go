package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare json untouched",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "leading prose",
			in:   "Here is the mapping you asked for:\n{\"a\":1}",
			want: `{"a":1}`,
		},
		{
			name: "array with prose",
			in:   "Sure! [1,2,3]",
			want: `[1,2,3]`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n{\"a\":1}\n  ",
			want: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.in))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out map[string]int
	require.NoError(t, DecodeJSON("```json\n{\"a\": 2}\n```", &out))
	assert.Equal(t, 2, out["a"])
}

func TestDecodeJSONMalformed(t *testing.T) {
	var out map[string]int
	assert.Error(t, DecodeJSON("the revenue column is Total", &out))
}
