package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javajack/xlreshape"
)

type splitFlags struct {
	outputDir string
	zipName   string
	where     string
}

func newSplitCommand(g *globalFlags) *cobra.Command {
	f := &splitFlags{}
	cmd := &cobra.Command{
		Use:   "split <input.xlsx> <column>",
		Short: "Split a workbook into one workbook per value of a column",
		Long: `split reads every sheet of the input workbook and writes one workbook per
distinct value of the column. Each output keeps only the sheets that have rows
for its value; rows with an empty value are not written anywhere.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, g, f, args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&f.outputDir, "output", "o", "output", "Output directory")
	cmd.Flags().StringVar(&f.zipName, "zip", "", "Package the outputs into this ZIP file inside the output directory")
	cmd.Flags().StringVar(&f.where, "where", "", `Only keep rows matching this expression (e.g. 'Amount > 0')`)
	return cmd
}

func runSplit(cmd *cobra.Command, g *globalFlags, f *splitFlags, input, column string) error {
	log := newLogger(cmd, g)
	opts := libraryOptions(log, g, f.where)

	wb, err := xlreshape.Load(input, opts...)
	if err != nil {
		return err
	}
	log.Debug().Str("input", input).Int("sheets", wb.Len()).Msg("workbook loaded")

	res, err := xlreshape.NewSplitter(opts...).Split(wb, column)
	if err != nil {
		return err
	}
	logWarnings(log, res.Warnings)

	if f.zipName != "" {
		return saveSplitZip(cmd, res, f, opts)
	}
	files, err := res.Save(f.outputDir, nil, opts...)
	if err != nil {
		return err
	}
	printSplitSummary(cmd, res, files)
	return nil
}

// saveSplitZip writes the partitions to a staging directory, packages them and
// removes the staging directory whatever the outcome.
func saveSplitZip(cmd *cobra.Command, res *xlreshape.SplitResult, f *splitFlags, opts []xlreshape.Option) error {
	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %q: %w", f.outputDir, err)
	}
	stage, err := os.MkdirTemp(f.outputDir, ".split-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(stage)

	files, err := res.Save(stage, nil, opts...)
	if err != nil {
		return err
	}
	zipPath := filepath.Join(f.outputDir, zipFileName(f.zipName))
	if err := writeZip(zipPath, files); err != nil {
		return err
	}
	printSplitSummary(cmd, res, files)
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Archive: "+zipPath))
	return nil
}

// zipFileName appends .zip when missing and expands "{time}" to a timestamp.
func zipFileName(name string) string {
	name = strings.ReplaceAll(name, "{time}", time.Now().Format("20060102_150405"))
	if !strings.EqualFold(filepath.Ext(name), ".zip") {
		name += ".zip"
	}
	return name
}
