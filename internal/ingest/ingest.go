// Package ingest extracts tabular rows and headers from uploaded e-commerce
// export files and detects the source platform.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/D-dracula/merchantlens/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for unrecognized file extensions.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile is returned when a file yields zero usable rows.
	ErrEmptyFile = errors.New("no usable rows in file")
	// ErrCorruptFile wraps the underlying decode error when parsing fails.
	ErrCorruptFile = errors.New("corrupt file")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// Table is the ingestion result: normalized headers, rows keyed by header,
// and the detected source platform (metadata only, never gates behavior).
type Table struct {
	Headers  []string
	Rows     []model.RawRow
	Platform model.Platform
}

// Parse detects the file format from the filename extension and extracts
// headers and rows.
func Parse(filename string, payload []byte) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var records [][]string
	var err error
	switch ext {
	case ".csv":
		records, err = parseDelimited(payload, ',')
	case ".txt":
		records, err = parseDelimited(payload, sniffDelimiter(payload))
	case ".xlsx", ".xls":
		records, err = parseExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	headers, rows := normalizeTable(records)
	if len(headers) == 0 || len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	table := &Table{Headers: headers, Rows: rows}
	table.Platform = detectPlatform(headers, rows[0])
	return table, nil
}

func parseDelimited(payload []byte, comma rune) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = comma
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited text: %w", err)
	}
	return records, nil
}

func parseExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks the most frequent candidate delimiter in the first
// line of a plain-text export.
func sniffDelimiter(payload []byte) rune {
	line := payload
	if idx := bytes.IndexByte(payload, '\n'); idx >= 0 {
		line = payload[:idx]
	}

	best, bestCount := ',', 0
	for _, candidate := range []rune{'\t', ';', '|', ','} {
		count := bytes.Count(line, []byte(string(candidate)))
		if count > bestCount {
			best, bestCount = candidate, count
		}
	}
	return best
}

// normalizeTable takes the first non-empty row as the header, pads short
// rows, and drops rows with no values at all.
func normalizeTable(records [][]string) ([]string, []model.RawRow) {
	var headers []string
	var rows []model.RawRow

	for _, record := range records {
		if isEmptyRow(record) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i, h := range record {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}

		row := make(model.RawRow, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows
}

func isEmptyRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
