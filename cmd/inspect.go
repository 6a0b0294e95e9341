// =============================================================================
// Sales Order Splitter - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which reads an exported order
// workbook back and prints every sheet as a table.
//
// COMMAND USAGE:
//   orders inspect <order.xlsx>
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/internal/xlsxparser"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <order.xlsx>",
	Short: "Print the contents of an order workbook",
	Long: `Read a workbook written by the splitter and print each sheet as a table,
to check that an order was exported as expected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := xlsxparser.Open(args[0])
		if err != nil {
			return types.NewError(types.KindInput, "", err)
		}
		return printWorkbook(cmd.OutOrStdout(), wb)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// printWorkbook writes one titled, column-aligned table per sheet.
func printWorkbook(out io.Writer, wb *xlsxparser.Workbook) error {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	for i, sheet := range wb.Sheets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("=== Sheet: %s (%d rows) ===", sheet.Name, len(sheet.Rows))))

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, row := range sheet.Rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
