// =============================================================================
// Sales Order Splitter - Validation Engine
// =============================================================================
//
// This module turns a loaded table into typed sales records. It validates:
//   - Schema: every required column is present in the header row
//   - Item number: an integer
//   - Item quantity and item price: non-negative decimal numbers
//
// ERROR HANDLING:
//   - Row errors are collected, not returned one at a time
//   - Each error carries the source row, field and offending value
//   - Any error aborts the run; there is no row-level recovery
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// maxReportedErrors caps the number of row errors printed in Errors.Error.
const maxReportedErrors = 10

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation error.
type ValidationError struct {
	// RowNumber is the source row number, or 0 for header errors.
	RowNumber int

	// Field is the header of the column that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Message is a human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber == 0 {
		return fmt.Sprintf("column '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("row %d, column '%s': %s (value: '%s')",
		e.RowNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// Errors is the collection of every validation error found in a table.
type Errors []*ValidationError

// Error implements the error interface.
func (errs Errors) Error() string {
	if len(errs) == 1 {
		return errs[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors", len(errs))
	for i, e := range errs {
		if i == maxReportedErrors {
			fmt.Fprintf(&b, "; and %d more", len(errs)-maxReportedErrors)
			break
		}
		b.WriteString("; ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// =============================================================================
// SCHEMA RESOLUTION
// =============================================================================

// ResolveSchema locates every required column in the header row. Header
// matching ignores case and surrounding whitespace.
//
// PARAMETERS:
//   - headers: The source header row.
//   - names: The configured header names.
//
// RETURNS:
//   - The resolved schema.
//   - An Errors value listing every missing column.
func ResolveSchema(headers []string, names config.ColumnNames) (*types.Schema, error) {
	wanted := map[types.ColumnKind]string{
		types.ColumnOrderID:      names.OrderID,
		types.ColumnItemNumber:   names.ItemNumber,
		types.ColumnItemQuantity: names.ItemQuantity,
		types.ColumnItemPrice:    names.ItemPrice,
		types.ColumnCustomerName: names.CustomerName,
		types.ColumnAddress:      names.Address,
		types.ColumnCity:         names.City,
		types.ColumnPostalCode:   names.PostalCode,
		types.ColumnCountry:      names.Country,
	}

	positions := make(map[string]int, len(headers))
	for i, header := range headers {
		key := normalizeHeader(header)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	schema := &types.Schema{
		Headers: headers,
		Index:   make(map[types.ColumnKind]int, len(wanted)),
	}

	var errs Errors
	for _, kind := range types.RequiredKinds {
		name := wanted[kind]
		idx, ok := positions[normalizeHeader(name)]
		if !ok {
			errs = append(errs, &ValidationError{
				Field:   name,
				Message: "required column is missing",
			})
			continue
		}
		schema.Index[kind] = idx
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return schema, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// =============================================================================
// RECORD TYPING
// =============================================================================

// BuildRecords types every table row against the schema.
//
// PARAMETERS:
//   - table: The loaded source table.
//   - schema: The schema returned by ResolveSchema.
//
// RETURNS:
//   - One SalesRecord per table row, in table order.
//   - An Errors value listing every invalid cell, or nil.
func BuildRecords(table *types.Table, schema *types.Schema) ([]types.SalesRecord, error) {
	records := make([]types.SalesRecord, 0, len(table.Rows))
	var errs Errors

	for i, row := range table.Rows {
		rowNumber := i + 2
		if i < len(table.RowNumbers) {
			rowNumber = table.RowNumbers[i]
		}

		record, rowErrs := buildRecord(row, rowNumber, schema)
		errs = append(errs, rowErrs...)
		records = append(records, record)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return records, nil
}

// buildRecord types a single row.
func buildRecord(row []string, rowNumber int, schema *types.Schema) (types.SalesRecord, Errors) {
	cell := func(kind types.ColumnKind) string {
		idx := schema.Index[kind]
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
	header := func(kind types.ColumnKind) string {
		return schema.Headers[schema.Index[kind]]
	}

	record := types.SalesRecord{
		RowNumber:    rowNumber,
		OrderID:      cell(types.ColumnOrderID),
		CustomerName: cell(types.ColumnCustomerName),
		Address:      cell(types.ColumnAddress),
		City:         cell(types.ColumnCity),
		PostalCode:   cell(types.ColumnPostalCode),
		Country:      cell(types.ColumnCountry),
		Values:       row,
	}

	var errs Errors
	fail := func(kind types.ColumnKind, message string) {
		errs = append(errs, &ValidationError{
			RowNumber: rowNumber,
			Field:     header(kind),
			Value:     cell(kind),
			Message:   message,
		})
	}

	if record.OrderID == "" {
		fail(types.ColumnOrderID, "order id is empty")
	}

	itemNumber, err := parseInteger(cell(types.ColumnItemNumber))
	if err != nil {
		fail(types.ColumnItemNumber, err.Error())
	}
	record.ItemNumber = itemNumber

	quantity, err := parseAmount(cell(types.ColumnItemQuantity))
	if err != nil {
		fail(types.ColumnItemQuantity, err.Error())
	}
	record.Quantity = quantity

	price, err := parseAmount(cell(types.ColumnItemPrice))
	if err != nil {
		fail(types.ColumnItemPrice, err.Error())
	}
	record.Price = price

	return record, errs
}

// =============================================================================
// VALUE PARSERS
// =============================================================================

// parseAmount parses a non-negative decimal. A leading currency symbol and
// thousands separators are accepted so that exports which pre-format prices
// still load.
func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(value), "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("value is empty")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number")
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("must not be negative")
	}
	return d, nil
}

// parseInteger parses a whole number. "3.0" is accepted because spreadsheet
// exports often write integers as floats.
func parseInteger(value string) (int, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, fmt.Errorf("value is empty")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("not a whole number")
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("out of range")
	}
	n := d.IntPart()
	if int64(int(n)) != n {
		return 0, fmt.Errorf("out of range")
	}
	return int(n), nil
}
