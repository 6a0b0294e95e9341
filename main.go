// =============================================================================
// Sales Order Splitter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Order Splitter CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   orders <path-to-sales-csv>   - Write one workbook per order
//   orders inspect <order.xlsx>  - Print an exported workbook
//   orders version               - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, validation, transform and workbook output
//   - pkg/           : Shared file-system utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sales-order-splitter/cmd"
)

func main() {
	cmd.Execute()
}
