// =============================================================================
// Sales Order Splitter - Converter Module
// =============================================================================
//
// This module runs the order transform for one sales export, from table
// loading to the last order workbook.
//
// CONVERSION PIPELINE:
//   1. Load the source table (CSV or workbook)
//   2. Resolve the schema and type every row
//   3. Build the column layout (TOTAL PRICE in, address columns out)
//   4. Partition the records by order id
//   5. For each order: sort, total, render and write one workbook
//
// Every error aborts the run. Nothing is written until all rows have been
// validated.
//
// =============================================================================

package converter

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/csvparser"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/internal/validation"
	"github.com/ginjaninja78/sales-order-splitter/internal/xlsxparser"
	"github.com/ginjaninja78/sales-order-splitter/internal/xlsxwriter"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a sales export.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OrdersDir is the directory the workbooks were written to.
	OrdersDir string

	// OutputFiles lists the written workbooks in export order.
	OutputFiles []string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of sales rows read.
	RowsProcessed int

	// OrdersFound is the number of distinct order ids.
	OrdersFound int

	// OrdersExported is the number of workbooks written.
	OrdersExported int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// SheetWriter writes one named sheet to a workbook file.
type SheetWriter interface {
	WriteSheet(path, sheetName string, header []string, rows [][]interface{}) error
}

// Converter handles the split of one sales export into order workbooks.
type Converter struct {
	// inputPath is the path to the sales export.
	inputPath string

	// ordersDir is the directory receiving the order workbooks.
	ordersDir string

	cfg    *config.Config
	writer SheetWriter
	logger zerolog.Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter writing workbooks with the default xlsx writer.
//
// PARAMETERS:
//   - inputPath: The path to the sales export.
//   - ordersDir: The provisioned output directory.
//   - cfg: The application configuration.
//   - logger: The run logger.
func New(inputPath, ordersDir string, cfg *config.Config, logger zerolog.Logger) *Converter {
	return &Converter{
		inputPath: inputPath,
		ordersDir: ordersDir,
		cfg:       cfg,
		writer:    xlsxwriter.New(xlsxwriter.DefaultOptions()),
		logger:    logger,
	}
}

// WithWriter replaces the sheet writer.
func (c *Converter) WithWriter(w SheetWriter) *Converter {
	c.writer = w
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result describing the written workbooks.
//   - A *types.Error of kind input or output if the run was aborted.
func (c *Converter) Run() (Result, error) {
	startTime := time.Now()
	result := Result{
		FilePath:  c.inputPath,
		OrdersDir: c.ordersDir,
	}

	// =========================================================================
	// STEP 1: LOAD TABLE
	// =========================================================================

	table, err := c.loadTable()
	if err != nil {
		return result, types.NewError(types.KindInput, "failed to load sales data", err)
	}

	result.Stats.RowsProcessed = len(table.Rows)
	c.logger.Debug().Int("rows", len(table.Rows)).Int("columns", len(table.Headers)).Msg("Loaded sales table")

	// =========================================================================
	// STEP 2: RESOLVE SCHEMA AND TYPE ROWS
	// =========================================================================

	schema, err := validation.ResolveSchema(table.Headers, c.cfg.Columns)
	if err != nil {
		return result, types.NewError(types.KindInput, "unexpected sales data layout", err)
	}

	records, err := validation.BuildRecords(table, schema)
	if err != nil {
		return result, types.NewError(types.KindInput, "invalid sales data", err)
	}

	// =========================================================================
	// STEP 3: BUILD LAYOUT
	// =========================================================================

	layout := BuildLayout(schema.Columns(), c.cfg.Index(), c.cfg.Columns.TotalPrice)
	columns := OrderColumns(layout)

	c.logger.Debug().Strs("columns", headers(columns)).Msg("Built order layout")

	// =========================================================================
	// STEP 4: PARTITION BY ORDER ID
	// =========================================================================

	partitions := PartitionRecords(records)
	result.Stats.OrdersFound = len(partitions)
	c.logger.Debug().Int("orders", len(partitions)).Msg("Partitioned sales rows")

	// =========================================================================
	// STEP 5: BUILD AND EXPORT ORDERS
	// =========================================================================

	for _, partition := range partitions {
		order := BuildOrder(partition, columns, c.cfg.CurrencySymbol)

		path, err := c.exportOrder(order)
		if err != nil {
			return result, types.NewError(types.KindOutput, "failed to export order "+order.OrderID, err)
		}

		result.OutputFiles = append(result.OutputFiles, path)
		result.Stats.OrdersExported++

		c.logger.Info().
			Str("order_id", order.OrderID).
			Int("items", len(order.Lines)).
			Str("grand_total", order.GrandTotalText).
			Str("file", filepath.Base(path)).
			Msg("Exported order")

		if c.cfg.FirstOrderOnly {
			c.logger.Debug().Int("skipped", len(partitions)-1).Msg("Stopping after the first order")
			break
		}
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadTable reads the sales export, choosing the parser by file extension.
func (c *Converter) loadTable() (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(c.inputPath)) {
	case ".xlsx", ".xlsm":
		return xlsxparser.ParseSales(c.inputPath, c.cfg.XLSXSettings.InputSheet)
	default:
		return csvparser.Parse(c.inputPath, c.cfg.CSVSettings)
	}
}

func headers(columns []types.Column) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = col.Header
	}
	return out
}
