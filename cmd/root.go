// =============================================================================
// Sales Order Splitter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// takes the path of a sales export and writes one workbook per order.
//
// COBRA CLI STRUCTURE:
//   rootCmd (orders <path-to-sales-csv>)
//   ├── inspectCmd (orders inspect <order.xlsx>)
//   └── versionCmd (orders version)
//
// EXIT STATUS:
//   0 - every order was exported
//   1 - usage, input or output error; the message is printed as
//       "ERROR: <message>" on standard output
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-order-splitter/internal/config"
	"github.com/ginjaninja78/sales-order-splitter/internal/converter"
	"github.com/ginjaninja78/sales-order-splitter/internal/logger"
	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// firstOnly stops after the first order has been exported.
var firstOnly bool

// Diagnostics printed when the input path cannot be used.
const (
	msgNoArgument = "Command-line parameter was not detected"
	msgNoFile     = "File path does not exist"
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "orders <path-to-sales-csv>",
	Short: "Sales Order Splitter - Split a sales export into one workbook per order",

	Long: `Sales Order Splitter reads a point-of-sale export and writes one Excel
workbook per order into an Orders_<YYYY-MM-DD> directory next to the input.

Each workbook holds the order's items sorted by item number, a computed
TOTAL PRICE column and a closing GRAND TOTAL row. Address columns are not
carried into the output.

Example Usage:
  orders ./sales.csv                    # Split every order in sales.csv
  orders ./sales.csv --first-only       # Export only the first order
  orders ./sales.csv --config ./my.yaml # Use a custom configuration file
  orders inspect ./Orders_2024-03-09/Order1001_JaneDoe.xlsx`,

	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runSplit(cmd.OutOrStdout(), args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. On failure the error is printed to standard
// output and the process exits with status 1.
func Execute() {
	os.Exit(reportError(os.Stdout, rootCmd.Execute()))
}

// reportError prints err as an "ERROR:" line to out and returns the exit
// status: 0 for a nil error, 1 otherwise.
func reportError(out io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(out, "ERROR: %v\n", err)
	return 1
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to an optional YAML configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.Flags().BoolVar(
		&firstOnly,
		"first-only",
		false,
		"Export only the first order found in the input",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runSplit locates the input, provisions the orders directory and runs the
// converter. The run summary is written to out.
func runSplit(out io.Writer, args []string) error {
	inputPath, err := locateInput(args)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return types.NewError(types.KindUsage, "", err)
	}
	if firstOnly {
		cfg.FirstOrderOnly = true
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(level, cfg.Pretty())

	log, runID := logger.ForRun(inputPath)
	if len(args) > 1 {
		log.Warn().Strs("ignored", args[1:]).Msg("Only the first argument is used")
	}

	// =========================================================================
	// STEP 2: PROVISION OUTPUT DIRECTORY
	// =========================================================================

	ordersDir, err := utils.EnsureOrdersDir(inputPath, cfg.OrdersDirPrefix, time.Now())
	if err != nil {
		return types.NewError(types.KindOutput, "failed to create orders directory", err)
	}
	log.Debug().Str("orders_dir", ordersDir).Msg("Orders directory ready")

	// =========================================================================
	// STEP 3: SPLIT
	// =========================================================================

	result, err := converter.New(inputPath, ordersDir, cfg, log).Run()
	if err != nil {
		log.Error().Err(err).Str("kind", types.KindOf(err).String()).Msg("Run aborted")
		return err
	}

	// =========================================================================
	// STEP 4: PRINT SUMMARY
	// =========================================================================

	fmt.Fprintln(out, "=== Sales Order Splitter ===")
	for _, path := range result.OutputFiles {
		fmt.Fprintf(out, "  ✓ %s\n", filepath.Base(path))
	}
	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Run ID:          %s\n", runID)
	fmt.Fprintf(out, "Input file:      %s\n", filepath.Base(result.FilePath))
	fmt.Fprintf(out, "Orders dir:      %s\n", result.OrdersDir)
	fmt.Fprintf(out, "Rows processed:  %d\n", result.Stats.RowsProcessed)
	fmt.Fprintf(out, "Orders found:    %d\n", result.Stats.OrdersFound)
	fmt.Fprintf(out, "Orders exported: %d\n", result.Stats.OrdersExported)
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.ProcessingTime)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// locateInput returns the absolute path of the sales export named by the
// first argument. It must be an existing regular file.
func locateInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", types.NewError(types.KindUsage, "", errors.New(msgNoArgument))
	}

	if !utils.FileExists(args[0]) {
		return "", types.NewError(types.KindUsage, "", errors.New(msgNoFile))
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return "", types.NewError(types.KindUsage, "", err)
	}
	return path, nil
}
