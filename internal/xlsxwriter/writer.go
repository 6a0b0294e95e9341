// =============================================================================
// Sales Order Splitter - XLSX Writer Module
// =============================================================================
//
// This module writes a single named sheet to a new workbook with excelize.
//
// SHEET STRUCTURE:
//   Row 1      : header row, bold
//   Row 2..n   : data rows, one cell per header column
//   (no index column)
//
// Nil cells are left empty. An existing file at the target path is replaced.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options contains options for sheet generation.
type Options struct {
	// BoldHeader renders the header row in bold.
	// Default: true
	BoldHeader bool

	// MinColumnWidth is the narrowest a column is made, in characters.
	// Default: 10
	MinColumnWidth float64

	// MaxColumnWidth caps auto-sized columns, in characters.
	// Default: 50
	MaxColumnWidth float64
}

// DefaultOptions returns the default writer options.
func DefaultOptions() Options {
	return Options{
		BoldHeader:     true,
		MinColumnWidth: 10,
		MaxColumnWidth: 50,
	}
}

// Writer writes sheets to workbook files.
type Writer struct {
	opts Options
}

// New creates a Writer with the given options.
func New(opts Options) *Writer {
	return &Writer{opts: opts}
}

// =============================================================================
// SHEET GENERATION
// =============================================================================

// WriteSheet creates a workbook at path holding one sheet.
//
// PARAMETERS:
//   - path: The output file path.
//   - sheetName: The name of the only sheet.
//   - header: The header row.
//   - rows: The data rows; nil cells stay empty.
//
// RETURNS:
//   - An error if any cell cannot be set or the file cannot be saved.
func (w *Writer) WriteSheet(path, sheetName string, header []string, rows [][]interface{}) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	widths := make([]float64, len(header))
	for i, h := range header {
		widths[i] = float64(len([]rune(h)))
	}

	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
			if c < len(widths) {
				if n := float64(len([]rune(fmt.Sprint(value)))); n > widths[c] {
					widths[c] = n
				}
			}
		}
	}

	if err := w.style(f, sheetName, widths); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// style applies the header font and column widths.
func (w *Writer) style(f *excelize.File, sheetName string, widths []float64) error {
	if len(widths) == 0 {
		return nil
	}

	if w.opts.BoldHeader {
		styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		if err := f.SetRowStyle(sheetName, 1, 1, styleID); err != nil {
			return fmt.Errorf("failed to style header row: %w", err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width += 2
		if width < w.opts.MinColumnWidth {
			width = w.opts.MinColumnWidth
		}
		if w.opts.MaxColumnWidth > 0 && width > w.opts.MaxColumnWidth {
			width = w.opts.MaxColumnWidth
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}
	return nil
}
