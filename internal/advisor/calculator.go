package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/D-dracula/merchantlens/internal/llm"
)

// calculatorTool is offered to the provider so it never does arithmetic
// inline; percentages, margins and sums in user-facing text come from this
// locally-executed tool.
var calculatorTool = llm.Tool{
	Name:        "calculator",
	Description: "Performs exact decimal arithmetic. Use this for ANY percentage, margin, sum or difference instead of calculating yourself.",
	Parameters: json.RawMessage(`{
		"type": "object",
		"properties": {
			"operation": {"type": "string", "enum": ["sum", "difference", "percentage", "margin"]},
			"values": {"type": "array", "items": {"type": "number"}}
		},
		"required": ["operation", "values"]
	}`),
}

type calculatorArgs struct {
	Operation string    `json:"operation"`
	Values    []float64 `json:"values"`
}

// runCalculator executes one calculator call. Division by zero is guarded
// and returns 0 rather than failing the session.
func runCalculator(_ context.Context, arguments json.RawMessage) (string, error) {
	var args calculatorArgs
	if err := json.Unmarshal(arguments, &args); err != nil {
		return "", fmt.Errorf("invalid calculator arguments: %w", err)
	}
	if len(args.Values) == 0 {
		return "", fmt.Errorf("calculator requires at least one value")
	}

	values := make([]decimal.Decimal, len(args.Values))
	for i, v := range args.Values {
		values[i] = decimal.NewFromFloat(v)
	}

	var result decimal.Decimal
	switch args.Operation {
	case "sum":
		for _, v := range values {
			result = result.Add(v)
		}
	case "difference":
		result = values[0]
		for _, v := range values[1:] {
			result = result.Sub(v)
		}
	case "percentage":
		// values[0] as a share of values[1], in percent.
		if len(values) < 2 || values[1].IsZero() {
			result = decimal.Zero
		} else {
			result = values[0].Div(values[1]).Mul(decimal.NewFromInt(100))
		}
	case "margin":
		// (values[0]-values[1]) / values[0], in percent.
		if len(values) < 2 || values[0].IsZero() {
			result = decimal.Zero
		} else {
			result = values[0].Sub(values[1]).Div(values[0]).Mul(decimal.NewFromInt(100))
		}
	default:
		return "", fmt.Errorf("unknown calculator operation %q", args.Operation)
	}

	out, err := json.Marshal(map[string]string{"result": result.Round(2).String()})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
