package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/xlreshape"
)

func newInspectCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input.xlsx>",
		Short: "List the sheets and columns of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd, g)
			wb, err := xlreshape.Load(args[0], libraryOptions(log, g, "")...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), xlreshape.Describe(wb))
			return nil
		},
	}
}

func newPreviewCommand(g *globalFlags) *cobra.Command {
	var where string
	cmd := &cobra.Command{
		Use:   "preview <input.xlsx> <column>",
		Short: "Show the files a split would create without writing them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd, g)
			opts := libraryOptions(log, g, where)
			wb, err := xlreshape.Load(args[0], opts...)
			if err != nil {
				return err
			}
			previews, warnings, err := xlreshape.NewSplitter(opts...).Preview(wb, args[1])
			if err != nil {
				return err
			}
			logWarnings(log, warnings)
			printPreview(cmd, wb, args[1], previews)
			return nil
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "Only count rows matching this expression")
	return cmd
}
