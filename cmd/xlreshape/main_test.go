package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/javajack/xlreshape"
)

// writeWorkbook saves one sheet per entry of sheets; the first row is the header.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	f := excelize.NewFile()
	defer f.Close()
	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func ordersFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "orders.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"Orders": {
			{"Id", "Region", "Amount"},
			{1, "East", 10},
			{2, "West", 20},
			{3, "East", 30},
		},
		"Returns": {
			{"Region", "Id"},
			{"West", 2},
		},
		"Summary": {
			{"Total"},
			{60},
		},
	})
	return path
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	input := ordersFile(t, dir)
	out := filepath.Join(dir, "out")

	stdout, stderr, err := runCLI(t, "split", input, "Region", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, `Split by "Region": 2 file(s)`)
	assert.Contains(t, stdout, "East.xlsx")
	assert.Contains(t, stdout, "(Orders: 1, Returns: 1)")
	assert.Contains(t, stderr, "missing-column")
	assert.Contains(t, stderr, "Summary")

	east, err := xlreshape.Load(filepath.Join(out, "East.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders"}, east.SheetNames())
	assert.Equal(t, 2, east.RowCount())

	west, err := xlreshape.Load(filepath.Join(out, "West.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders", "Returns"}, west.SheetNames())
}

func TestSplitCommand_Where(t *testing.T) {
	dir := t.TempDir()
	input := ordersFile(t, dir)
	out := filepath.Join(dir, "out")

	_, _, err := runCLI(t, "split", input, "Region", "-o", out, "--where", "Amount > 15")
	require.NoError(t, err)

	east, err := xlreshape.Load(filepath.Join(out, "East.xlsx"))
	require.NoError(t, err)
	orders, _ := east.Sheet("Orders")
	assert.Equal(t, 1, orders.Len())
	assert.Equal(t, xlreshape.Number(30), orders.Value(0, "Amount"))

	west, err := xlreshape.Load(filepath.Join(out, "West.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders"}, west.SheetNames(), "sheets without Amount keep no rows")
}

func TestSplitCommand_Zip(t *testing.T) {
	dir := t.TempDir()
	input := ordersFile(t, dir)
	out := filepath.Join(dir, "out")

	stdout, _, err := runCLI(t, "split", input, "Region", "-o", out, "--zip", "regions")
	require.NoError(t, err)
	zipPath := filepath.Join(out, "regions.zip")
	assert.Contains(t, stdout, "Archive: "+zipPath)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staging files are removed")
	assert.Equal(t, "regions.zip", entries[0].Name())

	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"East.xlsx", "West.xlsx"}, names)
}

func TestSplitCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	input := ordersFile(t, dir)

	_, _, err := runCLI(t, "split", input, "Country", "-o", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Equal(t, `column "Country" was not found in any sheet; check the column name`, userMessage(err))

	_, _, err = runCLI(t, "split", filepath.Join(dir, "missing.xlsx"), "Region")
	require.Error(t, err)
	assert.Contains(t, userMessage(err), "cannot read")

	_, _, err = runCLI(t, "split", input, "Region", "--max-size", "10")
	require.Error(t, err)
	assert.Contains(t, userMessage(err), "too large")

	_, _, err = runCLI(t, "split", input, "Region", "--where", "Amount >")
	require.Error(t, err)
	assert.Contains(t, userMessage(err), "invalid --where expression")

	_, _, err = runCLI(t, "split", input)
	assert.Error(t, err)
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	jan := filepath.Join(dir, "jan.xlsx")
	feb := filepath.Join(dir, "feb.xlsx")
	writeWorkbook(t, jan, map[string][][]any{"Sales": {{"Id", "Amount"}, {1, 10}}, "Zeta": {{"A"}, {"z"}}})
	writeWorkbook(t, feb, map[string][][]any{"Sales": {{"Amount", "Id"}, {20, 2}}})
	output := filepath.Join(dir, "merged.xlsx")

	stdout, stderr, err := runCLI(t, "merge", jan, feb, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Merged 2 sheet(s) into "+output)
	assert.Contains(t, stdout, "from jan.xlsx, feb.xlsx")
	assert.Contains(t, stderr, "header-mismatch")

	wb, err := xlreshape.Load(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "Zeta"}, wb.SheetNames())
	sales, _ := wb.Sheet("Sales")
	assert.Equal(t, []string{"Id", "Amount"}, sales.Columns)
	assert.Equal(t, xlreshape.Number(2), sales.Value(1, "Id"))
	assert.Equal(t, xlreshape.Number(20), sales.Value(1, "Amount"))
}

func TestMergeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.xlsx")
	b := filepath.Join(dir, "b.xlsx")
	writeWorkbook(t, a, map[string][][]any{"S": {{"A"}}})
	writeWorkbook(t, b, map[string][][]any{"S": {{"A"}}})

	_, _, err := runCLI(t, "merge", a, b, "-o", filepath.Join(dir, "out.xlsx"))
	require.Error(t, err)
	assert.Equal(t, "nothing to merge: every sheet of every input is empty", userMessage(err))
	assert.NoFileExists(t, filepath.Join(dir, "out.xlsx"))

	_, _, err = runCLI(t, "merge", a)
	assert.Error(t, err)

	bad := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(bad, []byte("hello"), 0o644))
	_, _, err = runCLI(t, "merge", a, bad)
	require.Error(t, err)
	assert.Contains(t, userMessage(err), "is not a readable .xlsx workbook")
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	input := ordersFile(t, dir)

	stdout, _, err := runCLI(t, "preview", input, "Region")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Files to create: 2")
	assert.Contains(t, stdout, "West 2 rows (Orders: 1, Returns: 1)")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "preview writes nothing")
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	input := ordersFile(t, dir)

	stdout, _, err := runCLI(t, "inspect", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Workbook: orders.xlsx (3 sheets, 5 rows)")
	assert.Contains(t, stdout, "Columns: Id, Region, Amount")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, `column "K" has no values to split on`, userMessage(&xlreshape.NoDataError{Column: "K"}))
	assert.Equal(t, "plain", userMessage(fmt.Errorf("plain")))
}

func TestZipFileName(t *testing.T) {
	assert.Equal(t, "out.zip", zipFileName("out"))
	assert.Equal(t, "out.ZIP", zipFileName("out.ZIP"))
	assert.NotContains(t, zipFileName("split_{time}"), "{time}")
}

func TestUserMessage_IOError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "folder.xlsx")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, _, err := runCLI(t, "inspect", dir)
	require.Error(t, err)
	assert.Contains(t, userMessage(err), "cannot read")
}
