// =============================================================================
// Sales Order Splitter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Table)
//   - validation (Schema, SalesRecord)
//   - converter (Column, OrderLine, OrderPartition)
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SOURCE TABLE
// =============================================================================

// Table is a loaded source table before any typing is applied.
type Table struct {
	// SourceFile is the path the table was read from.
	SourceFile string

	// Headers contains the header row, trimmed.
	Headers []string

	// Rows contains the data rows. Short rows are padded to len(Headers).
	Rows [][]string

	// RowNumbers holds the 1-based line (or sheet row) number of each entry
	// in Rows, so errors can point back at the source.
	RowNumbers []int
}

// =============================================================================
// COLUMNS
// =============================================================================

// ColumnKind identifies the meaning of a table column.
type ColumnKind int

const (
	// ColumnPassthrough is any column the transform does not interpret.
	ColumnPassthrough ColumnKind = iota
	ColumnOrderID
	ColumnItemNumber
	ColumnItemQuantity
	ColumnItemPrice
	ColumnTotalPrice
	ColumnCustomerName
	ColumnAddress
	ColumnCity
	ColumnPostalCode
	ColumnCountry
)

// RequiredKinds lists the columns every source table must carry, in the
// order they are reported when missing.
var RequiredKinds = []ColumnKind{
	ColumnOrderID,
	ColumnItemNumber,
	ColumnItemQuantity,
	ColumnItemPrice,
	ColumnCustomerName,
	ColumnAddress,
	ColumnCity,
	ColumnPostalCode,
	ColumnCountry,
}

var kindNames = map[ColumnKind]string{
	ColumnPassthrough:  "passthrough",
	ColumnOrderID:      "order id",
	ColumnItemNumber:   "item number",
	ColumnItemQuantity: "item quantity",
	ColumnItemPrice:    "item price",
	ColumnTotalPrice:   "total price",
	ColumnCustomerName: "customer name",
	ColumnAddress:      "address",
	ColumnCity:         "city",
	ColumnPostalCode:   "postal code",
	ColumnCountry:      "country",
}

func (k ColumnKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsAddressPart reports whether the column is one of the address fields that
// are dropped before output.
func (k ColumnKind) IsAddressPart() bool {
	switch k {
	case ColumnAddress, ColumnCity, ColumnPostalCode, ColumnCountry:
		return true
	}
	return false
}

// Column is one column of the working table.
type Column struct {
	// Kind is the meaning of the column.
	Kind ColumnKind

	// Header is the text written to the output header row.
	Header string

	// SourceIndex is the position of the column in the source table.
	// Derived columns use -1.
	SourceIndex int
}

// Schema maps the source header row onto column kinds.
type Schema struct {
	// Headers is the source header row.
	Headers []string

	// Index holds the source position of every recognised column.
	Index map[ColumnKind]int
}

// Columns returns the source columns in header order.
func (s *Schema) Columns() []Column {
	byIndex := make(map[int]ColumnKind, len(s.Index))
	for kind, idx := range s.Index {
		byIndex[idx] = kind
	}

	columns := make([]Column, len(s.Headers))
	for i, header := range s.Headers {
		kind, ok := byIndex[i]
		if !ok {
			kind = ColumnPassthrough
		}
		columns[i] = Column{Kind: kind, Header: header, SourceIndex: i}
	}
	return columns
}

// =============================================================================
// SALES RECORDS
// =============================================================================

// SalesRecord represents a single typed row of the sales export.
type SalesRecord struct {
	// RowNumber is the row number in the source file.
	RowNumber int

	OrderID      string
	ItemNumber   int
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	CustomerName string

	Address    string
	City       string
	PostalCode string
	Country    string

	// Values contains the raw cells in source header order. Passthrough
	// columns are rendered from here.
	Values []string
}

// TotalPrice returns quantity × price.
func (r SalesRecord) TotalPrice() decimal.Decimal {
	return r.Quantity.Mul(r.Price)
}

// =============================================================================
// ORDERS
// =============================================================================

// OrderLine is one item row of an order, carrying both the numeric totals and
// their currency renderings.
type OrderLine struct {
	Record SalesRecord

	// TotalPrice is the numeric line total. It stays available after the
	// line has been formatted so the grand total is summed from numbers.
	TotalPrice decimal.Decimal

	// ItemPriceText and TotalPriceText are the currency renderings.
	ItemPriceText  string
	TotalPriceText string
}

// OrderPartition represents all lines sharing one order id, sorted and
// totalled, ready for export.
type OrderPartition struct {
	// OrderID is the shared order identifier.
	OrderID string

	// Columns are the output columns. The order id column is never present.
	Columns []Column

	// Lines are sorted by item number ascending.
	Lines []OrderLine

	// GrandTotal is the numeric sum of every line's TotalPrice.
	GrandTotal decimal.Decimal

	// GrandTotalText is the currency rendering of GrandTotal.
	GrandTotalText string
}

// CustomerName returns the customer name of the first line, or "" for an
// empty order.
func (o *OrderPartition) CustomerName() string {
	if len(o.Lines) == 0 {
		return ""
	}
	return o.Lines[0].Record.CustomerName
}
