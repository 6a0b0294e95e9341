// =============================================================================
// Sales Order Splitter - CSV Parser Module
// =============================================================================
//
// This module is responsible for reading the point-of-sale CSV export into a
// types.Table. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - A UTF-8 byte order mark on the header row
//   - Quoted fields with embedded delimiters and newlines
//   - Blank lines between records
//
// The parser does not interpret any column; typing and schema checks happen
// in the validation package.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// ErrEmptyFile is returned when the file has no header row.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Table containing the header row and data rows.
//   - An error if the file cannot be opened or parsed.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := Read(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// Read parses CSV data from r.
func Read(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	csvReader := csv.NewReader(bufio.NewReader(r))
	configureReader(csvReader, settings)

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	table := &types.Table{
		Headers: cleanHeaders(header),
	}

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		line, _ := csvReader.FieldPos(0)
		table.Rows = append(table.Rows, normalizeRow(row, len(table.Headers)))
		table.RowNumbers = append(table.RowNumbers, line)
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = Delimiter(settings.Delimiter)

	// Allow a variable number of fields per row; short rows are padded.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// Delimiter resolves the configured delimiter name to a rune.
func Delimiter(name string) rune {
	switch name {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon", "SEMICOLON":
		return ';'
	default:
		if len(name) > 0 {
			return []rune(name)[0]
		}
		return ','
	}
}

// cleanHeaders trims headers and strips a UTF-8 BOM from the first one.
// Spreadsheet applications add the BOM when saving "CSV UTF-8".
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

// normalizeRow trims every cell and pads the row to width.
func normalizeRow(row []string, width int) []string {
	size := width
	if len(row) > size {
		size = len(row)
	}
	out := make([]string, size)
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
