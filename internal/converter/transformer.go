// =============================================================================
// Sales Order Splitter - Transformation Engine
// =============================================================================
//
// This module holds the pure steps of the order transform:
//   - Layout: insert TOTAL PRICE, drop the address columns
//   - Partitioning: group records by order id in first-encounter order
//   - Order building: format currency, sort by item number, total
//   - Rendering: header and rows for the sheet writer, including the
//     GRAND TOTAL row
//
// Amounts are kept as decimals next to their currency text, so the grand
// total is always summed from numbers.
//
// =============================================================================

package converter

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

// =============================================================================
// LAYOUT
// =============================================================================

// BuildLayout returns the working table columns: the source columns with
// TOTAL PRICE inserted at totalIndex, then the address columns removed.
// An index past the end of the table appends the column.
//
// PARAMETERS:
//   - source: The source columns in header order.
//   - totalIndex: The 0-based insert position of TOTAL PRICE.
//   - totalHeader: The header text of TOTAL PRICE.
func BuildLayout(source []types.Column, totalIndex int, totalHeader string) []types.Column {
	if totalIndex > len(source) {
		totalIndex = len(source)
	}
	if totalIndex < 0 {
		totalIndex = 0
	}

	total := types.Column{Kind: types.ColumnTotalPrice, Header: totalHeader, SourceIndex: -1}

	withTotal := make([]types.Column, 0, len(source)+1)
	withTotal = append(withTotal, source[:totalIndex]...)
	withTotal = append(withTotal, total)
	withTotal = append(withTotal, source[totalIndex:]...)

	layout := make([]types.Column, 0, len(withTotal))
	for _, col := range withTotal {
		if col.Kind.IsAddressPart() {
			continue
		}
		layout = append(layout, col)
	}
	return layout
}

// OrderColumns returns layout without the order id column.
func OrderColumns(layout []types.Column) []types.Column {
	columns := make([]types.Column, 0, len(layout))
	for _, col := range layout {
		if col.Kind == types.ColumnOrderID {
			continue
		}
		columns = append(columns, col)
	}
	return columns
}

// =============================================================================
// PARTITIONING
// =============================================================================

// Partition is the set of records sharing one order id, in input order.
type Partition struct {
	OrderID string
	Records []types.SalesRecord
}

// PartitionRecords groups records by order id. Partitions are returned in the
// order their id is first encountered; records keep their relative order.
func PartitionRecords(records []types.SalesRecord) []Partition {
	groups := make(map[string]int)
	var partitions []Partition

	for _, record := range records {
		idx, exists := groups[record.OrderID]
		if !exists {
			idx = len(partitions)
			groups[record.OrderID] = idx
			partitions = append(partitions, Partition{OrderID: record.OrderID})
		}
		partitions[idx].Records = append(partitions[idx].Records, record)
	}

	return partitions
}

// =============================================================================
// ORDER BUILDING
// =============================================================================

// BuildOrder formats, sorts and totals one partition.
//
// PARAMETERS:
//   - p: The partition to build.
//   - columns: The output columns (see OrderColumns).
//   - symbol: The currency symbol.
//
// RETURNS:
//   - The finished order with lines sorted by item number ascending.
func BuildOrder(p Partition, columns []types.Column, symbol string) *types.OrderPartition {
	lines := make([]types.OrderLine, len(p.Records))
	for i, record := range p.Records {
		total := record.TotalPrice()
		lines[i] = types.OrderLine{
			Record:         record,
			TotalPrice:     total,
			ItemPriceText:  FormatCurrency(symbol, record.Price),
			TotalPriceText: FormatCurrency(symbol, total),
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Record.ItemNumber < lines[j].Record.ItemNumber
	})

	grandTotal := decimal.Zero
	for _, line := range lines {
		grandTotal = grandTotal.Add(line.TotalPrice)
	}

	return &types.OrderPartition{
		OrderID:        p.OrderID,
		Columns:        columns,
		Lines:          lines,
		GrandTotal:     grandTotal,
		GrandTotalText: FormatCurrency(symbol, grandTotal),
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderOrder returns the header row and the data rows of an order, with the
// grand total row last. Cells of the grand total row other than item price
// and total price are nil.
func RenderOrder(order *types.OrderPartition, grandTotalLabel string) ([]string, [][]interface{}) {
	header := make([]string, len(order.Columns))
	for i, col := range order.Columns {
		header[i] = col.Header
	}

	rows := make([][]interface{}, 0, len(order.Lines)+1)
	for _, line := range order.Lines {
		row := make([]interface{}, len(order.Columns))
		for i, col := range order.Columns {
			row[i] = lineCell(line, col)
		}
		rows = append(rows, row)
	}

	summary := make([]interface{}, len(order.Columns))
	for i, col := range order.Columns {
		switch col.Kind {
		case types.ColumnItemPrice:
			summary[i] = grandTotalLabel
		case types.ColumnTotalPrice:
			summary[i] = order.GrandTotalText
		}
	}
	rows = append(rows, summary)

	return header, rows
}

// lineCell returns the value written for one cell of an item row.
func lineCell(line types.OrderLine, col types.Column) interface{} {
	record := line.Record

	switch col.Kind {
	case types.ColumnItemNumber:
		return record.ItemNumber
	case types.ColumnItemQuantity:
		return numberCell(record.Quantity)
	case types.ColumnItemPrice:
		return line.ItemPriceText
	case types.ColumnTotalPrice:
		return line.TotalPriceText
	case types.ColumnCustomerName:
		return record.CustomerName
	case types.ColumnOrderID:
		return record.OrderID
	}

	if col.SourceIndex < 0 || col.SourceIndex >= len(record.Values) {
		return nil
	}
	return passthroughCell(record.Values[col.SourceIndex])
}

// numberCell writes whole numbers as integers and the rest as floats.
func numberCell(d decimal.Decimal) interface{} {
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}

// passthroughCell keeps numeric source cells numeric in the workbook.
// Codes with leading zeros (phone numbers, product codes) stay text, and so
// do integers too long for int64, which a float would round.
func passthroughCell(value string) interface{} {
	if value == "" {
		return nil
	}
	if len(value) > 1 && value[0] == '0' && value[1] != '.' {
		return value
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return n
	}
	if errors.Is(err, strconv.ErrRange) {
		return value
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return value
}
