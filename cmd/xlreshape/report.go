package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajack/xlreshape"
)

func printSplitSummary(cmd *cobra.Command, res *xlreshape.SplitResult, files []xlreshape.OutputFile) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Split by %q: %d file(s)", res.Column, len(files))))
	for i, f := range files {
		wb := res.Partitions[i].Workbook
		fmt.Fprintf(out, "  %s %s %s\n",
			KeyStyle.Render(f.Key.String()),
			filepath.Base(f.Path),
			SubtitleStyle.Render(sheetRowSummary(wb)))
	}
}

func sheetRowSummary(wb *xlreshape.Workbook) string {
	parts := make([]string, 0, wb.Len())
	for _, t := range wb.Tables() {
		parts = append(parts, fmt.Sprintf("%s: %d", t.Name, t.Len()))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printMergeSummary(cmd *cobra.Command, res *xlreshape.MergeResult, output string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Merged %d sheet(s) into %s", len(res.Stats), output)))
	for _, s := range res.Stats {
		fmt.Fprintf(out, "  %s %d rows %s\n",
			KeyStyle.Render(s.Sheet),
			s.Rows,
			SubtitleStyle.Render("from "+strings.Join(s.Sources, ", ")))
	}
}

func printPreview(cmd *cobra.Command, wb *xlreshape.Workbook, column string, previews []xlreshape.KeyPreview) {
	out := cmd.OutOrStdout()
	keys := make([]xlreshape.Value, len(previews))
	for i, p := range previews {
		keys[i] = p.Key
	}
	fmt.Fprint(out, SubtitleStyle.Render(xlreshape.DescribeSplit(wb, column, keys)))
	fmt.Fprintln(out)
	for _, p := range previews {
		parts := make([]string, len(p.Sheets))
		for i, s := range p.Sheets {
			parts[i] = fmt.Sprintf("%s: %d", s.Sheet, s.Rows)
		}
		fmt.Fprintf(out, "  %s %d rows (%s)\n", KeyStyle.Render(p.Key.String()), p.TotalRows, strings.Join(parts, ", "))
	}
}
