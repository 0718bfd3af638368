package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarkers are stripped before numeric parsing. Export files mix
// symbols, ISO codes and Arabic currency names into amount cells.
var currencyMarkers = []string{"SAR", "USD", "AED", "EGP", "ر.س", "د.إ", "ج.م", "$", "€", "£", "﷼"}

// ParseAmount converts a cell value into an exact decimal, tolerating
// currency markers and thousands separators.
func ParseAmount(cell string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(cell)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	for _, marker := range currencyMarkers {
		cleaned = strings.ReplaceAll(cleaned, marker, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparsable amount %q: %w", cell, err)
	}
	return value, nil
}
