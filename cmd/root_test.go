package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/internal/xlsxparser"
)

const sales = "ORDER ID,ITEM NUMBER,ITEM QUANTITY,ITEM PRICE,CUSTOMER NAME,ADDRESS,CITY,POSTAL CODE,COUNTRY\n" +
	"1001,2,1,5.00,Jane Doe,1 Main St,Springfield,12345,US\n" +
	"1001,1,2,9.99,Jane Doe,1 Main St,Springfield,12345,US\n" +
	"1002,1,1,3.00,Bob,2 High St,Dublin,D01,IE\n"

func resetFlags(t *testing.T) {
	t.Helper()
	cfgFile, verbose, firstOnly = "", false, false
	t.Cleanup(func() { cfgFile, verbose, firstOnly = "", false, false })
}

func writeSales(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(sales), 0o644))
	return path
}

func ordersDirs(t *testing.T, input string) []string {
	t.Helper()
	dirs, err := filepath.Glob(filepath.Join(filepath.Dir(input), "Orders_*"))
	require.NoError(t, err)
	return dirs
}

func TestLocateInput(t *testing.T) {
	input := writeSales(t)

	_, err := locateInput(nil)
	require.Error(t, err)
	assert.Equal(t, "Command-line parameter was not detected", err.Error())
	assert.Equal(t, types.KindUsage, types.KindOf(err))

	_, err = locateInput([]string{filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)
	assert.Equal(t, "File path does not exist", err.Error())

	_, err = locateInput([]string{t.TempDir()})
	require.Error(t, err, "a directory is not a sales export")
	assert.Equal(t, "File path does not exist", err.Error())

	path, err := locateInput([]string{input})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, reportError(&out, nil))
	assert.Empty(t, out.String())

	_, err := locateInput(nil)
	assert.Equal(t, 1, reportError(&out, err))
	assert.Equal(t, "ERROR: Command-line parameter was not detected\n", out.String())
}

func TestRootCommand_Diagnostics(t *testing.T) {
	resetFlags(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no argument", []string{}, "ERROR: Command-line parameter was not detected\n"},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.csv")}, "ERROR: File path does not exist\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
			})

			code := reportError(&out, rootCmd.Execute())

			assert.Equal(t, 1, code)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunSplit(t *testing.T) {
	resetFlags(t)
	input := writeSales(t)

	var out bytes.Buffer
	require.NoError(t, runSplit(&out, []string{input}))

	dirs := ordersDirs(t, input)
	require.Len(t, dirs, 1)

	for _, name := range []string{"Order1001_JaneDoe.xlsx", "Order1002_Bob.xlsx"} {
		_, err := os.Stat(filepath.Join(dirs[0], name))
		assert.NoError(t, err, name)
		assert.Contains(t, out.String(), name)
	}
	assert.Contains(t, out.String(), "Orders exported: 2")

	rows, err := xlsxparser.ReadSheet(filepath.Join(dirs[0], "Order1001_JaneDoe.xlsx"), "Order")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "GRAND TOTAL:", "", "$24.98"}, rows[len(rows)-1])
}

func TestRunSplit_FirstOnly(t *testing.T) {
	resetFlags(t)
	firstOnly = true
	input := writeSales(t)

	var out bytes.Buffer
	require.NoError(t, runSplit(&out, []string{input}))

	dirs := ordersDirs(t, input)
	require.Len(t, dirs, 1)

	entries, err := os.ReadDir(dirs[0])
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Order1001_JaneDoe.xlsx", entries[0].Name())
}

func TestRunSplit_NoArgumentCreatesNothing(t *testing.T) {
	resetFlags(t)

	err := runSplit(&bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.Equal(t, types.KindUsage, types.KindOf(err))
}

func TestRunSplit_BadConfig(t *testing.T) {
	resetFlags(t)
	input := writeSales(t)

	cfgFile = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("total_price_index: -1\n"), 0o644))

	err := runSplit(&bytes.Buffer{}, []string{input})
	require.Error(t, err)
	assert.Empty(t, ordersDirs(t, input), "nothing is created before the configuration is valid")
}

func TestInspect(t *testing.T) {
	resetFlags(t)
	input := writeSales(t)
	require.NoError(t, runSplit(&bytes.Buffer{}, []string{input}))

	dirs := ordersDirs(t, input)
	require.Len(t, dirs, 1)

	wb, err := xlsxparser.Open(filepath.Join(dirs[0], "Order1002_Bob.xlsx"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printWorkbook(&out, wb))

	assert.Contains(t, out.String(), "=== Sheet: Order (3 rows) ===")
	assert.Contains(t, out.String(), "GRAND TOTAL:")
	assert.Contains(t, out.String(), "$3.00")
}
