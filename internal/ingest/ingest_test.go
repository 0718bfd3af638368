package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-dracula/merchantlens/internal/model"
)

func TestParseCSV(t *testing.T) {
	payload := []byte("Order ID,Total,Shipping Fee\n1001,25.50,10\n1002,40.00,12\n")

	table, err := Parse("orders.csv", payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"Order ID", "Total", "Shipping Fee"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "25.50", table.Rows[0]["Total"])
	assert.Equal(t, "12", table.Rows[1]["Shipping Fee"])
}

func TestParseCSVStripsBOM(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Total,Qty\n10,1\n")...)

	table, err := Parse("export.csv", payload)
	require.NoError(t, err)
	assert.Equal(t, "Total", table.Headers[0])
}

func TestParseTabDelimitedText(t *testing.T) {
	payload := []byte("Product\tSold\tStock\nWidget\t5\t100\n")

	table, err := Parse("history.txt", payload)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Widget", table.Rows[0]["Product"])
	assert.Equal(t, "100", table.Rows[0]["Stock"])
}

func TestParseSkipsEmptyRows(t *testing.T) {
	payload := []byte("Total,Qty\n\n,,\n10,1\n")

	table, err := Parse("orders.csv", payload)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestParsePadsShortRows(t *testing.T) {
	payload := []byte("A,B,C\n1,2\n")

	table, err := Parse("orders.csv", payload)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["C"])
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse("orders.pdf", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse("orders.csv", []byte("Total,Qty\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseCorruptWorkbook(t *testing.T) {
	_, err := Parse("orders.xlsx", []byte("this is not a zip archive"))
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		row     model.RawRow
		want    model.Platform
	}{
		{
			name:    "shopify headers",
			headers: []string{"Name", "Financial Status", "Lineitem quantity"},
			row:     model.RawRow{"Name": "#1001"},
			want:    model.PlatformShopify,
		},
		{
			name:    "salla in row value",
			headers: []string{"Order", "Total"},
			row:     model.RawRow{"Order": "salla-10023"},
			want:    model.PlatformSalla,
		},
		{
			name:    "zid header",
			headers: []string{"Zid Order ID", "Total"},
			row:     model.RawRow{},
			want:    model.PlatformZid,
		},
		{
			name:    "nothing matches",
			headers: []string{"Order", "Total"},
			row:     model.RawRow{"Order": "1001"},
			want:    model.PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectPlatform(tt.headers, tt.row))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "10.50", want: "10.5"},
		{in: "1,250.75", want: "1250.75"},
		{in: "SAR 99.00", want: "99"},
		{in: "$15", want: "15"},
		{in: "-3.25", want: "-3.25"},
		{in: "", wantErr: true},
		{in: "bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
