package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
)

var salesHeaders = []string{
	"ORDER ID", "ORDER DATE", "ITEM NUMBER", "ITEM QUANTITY", "ITEM PRICE",
	"CUSTOMER NAME", "ADDRESS", "CITY", "POSTAL CODE", "COUNTRY",
}

func defaultNames() config.ColumnNames {
	return config.Default().Columns
}

func TestResolveSchema(t *testing.T) {
	schema, err := ResolveSchema(salesHeaders, defaultNames())
	require.NoError(t, err)

	assert.Equal(t, 0, schema.Index[types.ColumnOrderID])
	assert.Equal(t, 2, schema.Index[types.ColumnItemNumber])
	assert.Equal(t, 9, schema.Index[types.ColumnCountry])

	_, passthrough := schema.Index[types.ColumnPassthrough]
	assert.False(t, passthrough)

	columns := schema.Columns()
	require.Len(t, columns, len(salesHeaders))
	assert.Equal(t, types.ColumnPassthrough, columns[1].Kind)
	assert.Equal(t, "ORDER DATE", columns[1].Header)
}

func TestResolveSchema_IgnoresCase(t *testing.T) {
	headers := []string{
		"Order Id", "Item Number", "Item Quantity", "Item Price",
		"Customer Name", "Address", "City", "Postal Code", "Country",
	}

	schema, err := ResolveSchema(headers, defaultNames())
	require.NoError(t, err)
	assert.Equal(t, 4, schema.Index[types.ColumnCustomerName])
}

func TestResolveSchema_MissingColumns(t *testing.T) {
	_, err := ResolveSchema([]string{"ORDER ID", "ITEM NUMBER"}, defaultNames())
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 7)
	assert.Equal(t, "ITEM QUANTITY", errs[0].Field)
	assert.Contains(t, err.Error(), "7 validation errors")
}

func TestBuildRecords(t *testing.T) {
	schema, err := ResolveSchema(salesHeaders, defaultNames())
	require.NoError(t, err)

	table := &types.Table{
		Headers: salesHeaders,
		Rows: [][]string{
			{"1001", "2024-01-02", "2", "1", "5.00", "Jane Doe", "1 Main St", "Town", "A1A", "CA"},
			{"1001", "2024-01-02", "1.0", "2", "$1,009.99", "Jane Doe", "1 Main St", "Town", "A1A", "CA"},
		},
		RowNumbers: []int{2, 3},
	}

	records, err := BuildRecords(table, schema)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 2, first.RowNumber)
	assert.Equal(t, "1001", first.OrderID)
	assert.Equal(t, 2, first.ItemNumber)
	assert.Equal(t, "Jane Doe", first.CustomerName)
	assert.Equal(t, "Town", first.City)
	assert.True(t, decimal.RequireFromString("5").Equal(first.TotalPrice()))

	second := records[1]
	assert.Equal(t, 1, second.ItemNumber)
	assert.True(t, decimal.RequireFromString("1009.99").Equal(second.Price))
	assert.True(t, decimal.RequireFromString("2019.98").Equal(second.TotalPrice()))
}

func TestBuildRecords_CollectsErrors(t *testing.T) {
	schema, err := ResolveSchema(salesHeaders, defaultNames())
	require.NoError(t, err)

	table := &types.Table{
		Headers: salesHeaders,
		Rows: [][]string{
			{"1001", "", "x", "1", "5", "Jane", "", "", "", ""},
			{"", "", "1", "-1", "abc", "Jane", "", "", "", ""},
			{"1002", "", "1.5", "", "5", "Jane", "", "", "", ""},
		},
		RowNumbers: []int{2, 3, 4},
	}

	records, err := BuildRecords(table, schema)
	assert.Nil(t, records)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 6)

	assert.Equal(t, 2, errs[0].RowNumber)
	assert.Equal(t, "ITEM NUMBER", errs[0].Field)
	assert.Equal(t, "x", errs[0].Value)

	assert.Equal(t, "ORDER ID", errs[1].Field)
	assert.Equal(t, "must not be negative", errs[2].Message)
	assert.Equal(t, "not a number", errs[3].Message)

	assert.Equal(t, "not a whole number", errs[4].Message)
	assert.Equal(t, "value is empty", errs[5].Message)
}

func TestBuildRecords_ItemNumberOutOfRange(t *testing.T) {
	schema, err := ResolveSchema(salesHeaders, defaultNames())
	require.NoError(t, err)

	table := &types.Table{
		Headers: salesHeaders,
		Rows: [][]string{
			{"1001", "", "2", "1", "5", "Jane", "", "", "", ""},
			{"1001", "", "99999999999999999999", "1", "5", "Jane", "", "", "", ""},
			{"1001", "", "-99999999999999999999", "1", "5", "Jane", "", "", "", ""},
		},
		RowNumbers: []int{2, 3, 4},
	}

	records, err := BuildRecords(table, schema)
	assert.Nil(t, records)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)

	assert.Equal(t, 3, errs[0].RowNumber)
	assert.Equal(t, "ITEM NUMBER", errs[0].Field)
	assert.Equal(t, "99999999999999999999", errs[0].Value)
	assert.Equal(t, "out of range", errs[0].Message)
	assert.Equal(t, 4, errs[1].RowNumber)
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr string
	}{
		{"7", 7, ""},
		{"3.0", 3, ""},
		{"9223372036854775807", 9223372036854775807, ""},
		{"9223372036854775808", 0, "out of range"},
		{"99999999999999999999", 0, "out of range"},
		{"1.5", 0, "not a whole number"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseInteger(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrors_Truncates(t *testing.T) {
	var errs Errors
	for i := 0; i < 12; i++ {
		errs = append(errs, &ValidationError{RowNumber: i + 2, Field: "ITEM PRICE", Message: "not a number"})
	}
	assert.Contains(t, errs.Error(), "and 2 more")
}
