// =============================================================================
// Sales Order Splitter - XLSX Parser
// =============================================================================
//
// This module reads workbooks with excelize. It serves two callers:
//   - The converter, when the sales export is a workbook instead of a CSV.
//     The first row of the sheet is the header row, exactly as in the CSV.
//   - The inspect command (and tests), which read exported order workbooks
//     back to check what was written.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// =============================================================================
// SHEET CONTENTS
// =============================================================================

// Sheet is the raw content of one worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name string

	// Rows contains every row as displayed by Excel. Trailing empty cells
	// are not included.
	Rows [][]string
}

// Workbook is the raw content of a workbook file.
type Workbook struct {
	// SourceFile is the path the workbook was read from.
	SourceFile string

	// Sheets are listed in workbook order.
	Sheets []Sheet
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Open reads every sheet of a workbook.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//
// RETURNS:
//   - A pointer to the Workbook containing every sheet's rows.
//   - An error if the file cannot be opened or a sheet cannot be read.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{SourceFile: path}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet '%s': %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}

	return wb, nil
}

// ReadSheet returns the displayed rows of one sheet. An empty name selects
// the first sheet.
func ReadSheet(path, sheetName string) ([][]string, error) {
	return readRows(path, sheetName)
}

// readRows reads one sheet. Options are passed to GetRows.
func readRows(path, sheetName string, opts ...excelize.Options) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	name, err := resolveSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s': %w", name, err)
	}
	return rows, nil
}

// ParseSales reads a sales export stored as a workbook. The first row of the
// sheet is the header row; empty rows are skipped. Cells are read as stored,
// not as displayed, so a number format cannot round a price.
//
// PARAMETERS:
//   - path: The path to the XLSX file.
//   - sheetName: The sheet holding the table, or "" for the first sheet.
//
// RETURNS:
//   - A pointer to the Table with the header row and data rows.
//   - An error if the workbook or sheet cannot be read or the sheet is empty.
func ParseSales(path, sheetName string) (*types.Table, error) {
	rows, err := readRows(path, sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	table, err := tableFromRows(rows)
	if err != nil {
		return nil, err
	}
	table.SourceFile = path

	return table, nil
}

// tableFromRows converts sheet rows into a Table.
func tableFromRows(rows [][]string) (*types.Table, error) {
	headerIndex := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	headers := make([]string, len(rows[headerIndex]))
	for i, cell := range rows[headerIndex] {
		headers[i] = strings.TrimSpace(cell)
	}

	table := &types.Table{Headers: headers}
	for i := headerIndex + 1; i < len(rows); i++ {
		row := rows[i]

		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}

		width := len(headers)
		if len(row) > width {
			width = len(row)
		}
		cells := make([]string, width)
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}

		table.Rows = append(table.Rows, cells)
		table.RowNumbers = append(table.RowNumbers, i+1)
	}

	return table, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// resolveSheet returns sheetName if it exists, or the first sheet for "".
func resolveSheet(f *excelize.File, sheetName string) (string, error) {
	if sheetName == "" {
		name := f.GetSheetName(0)
		if name == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return name, nil
	}

	for _, name := range f.GetSheetList() {
		if name == sheetName {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet '%s' not found", sheetName)
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
