package main

import (
	"github.com/spf13/cobra"

	"github.com/javajack/xlreshape"
)

type mergeFlags struct {
	output    string
	where     string
	firstSeen bool
}

func newMergeCommand(g *globalFlags) *cobra.Command {
	f := &mergeFlags{}
	cmd := &cobra.Command{
		Use:   "merge <a.xlsx> <b.xlsx> [more.xlsx...]",
		Short: "Merge same-named sheets of several workbooks into one",
		Long: `merge concatenates the rows of same-named sheets across the inputs, in the
order the files are given. Column order comes from the first file that has rows
for a sheet; later files with different headers are aligned to it.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, g, f, args)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "merged.xlsx", "Output file")
	cmd.Flags().StringVar(&f.where, "where", "", `Only keep rows matching this expression (e.g. 'Status == "open"')`)
	cmd.Flags().BoolVar(&f.firstSeen, "first-seen", false, "Order merged sheets by first appearance instead of by name")
	return cmd
}

func runMerge(cmd *cobra.Command, g *globalFlags, f *mergeFlags, inputs []string) error {
	log := newLogger(cmd, g)
	opts := libraryOptions(log, g, f.where)
	if f.firstSeen {
		opts = append(opts, xlreshape.WithSheetOrder(xlreshape.SheetOrderFirstSeen))
	}

	res, err := xlreshape.NewMerger(opts...).MergeFiles(inputs)
	if err != nil {
		return err
	}
	logWarnings(log, res.Warnings)

	if err := res.Save(f.output, opts...); err != nil {
		return err
	}
	printMergeSummary(cmd, res, f.output)
	return nil
}
