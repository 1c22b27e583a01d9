// Package main provides the xlreshape command line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javajack/xlreshape"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultMaxFileSize is the input limit unless --max-size overrides it.
const defaultMaxFileSize = 50 << 20

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose     bool
	maxFileSize int64
	noLayout    bool
}

func main() {
	root := newRootCommand(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+userMessage(err)))
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "xlreshape",
		Short: "Split and merge Excel workbooks",
		Long: `xlreshape splits every sheet of a workbook into one workbook per value of a
column, or merges same-named sheets of several workbooks into one.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug details")
	root.PersistentFlags().Int64Var(&g.maxFileSize, "max-size", defaultMaxFileSize, "Reject input files larger than this many bytes (0: no limit)")
	root.PersistentFlags().BoolVar(&g.noLayout, "no-layout", false, "Do not copy column widths and header height")

	root.AddCommand(newSplitCommand(g))
	root.AddCommand(newMergeCommand(g))
	root.AddCommand(newPreviewCommand(g))
	root.AddCommand(newInspectCommand(g))
	return root
}

// newLogger returns a console logger on the command's error stream.
func newLogger(cmd *cobra.Command, g *globalFlags) zerolog.Logger {
	level := zerolog.InfoLevel
	if g.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// libraryOptions maps the global flags and row filter onto library options.
func libraryOptions(log zerolog.Logger, g *globalFlags, where string) []xlreshape.Option {
	return []xlreshape.Option{
		xlreshape.WithLogger(log),
		xlreshape.WithMaxFileSize(g.maxFileSize),
		xlreshape.WithLayout(!g.noLayout),
		xlreshape.WithRowFilter(where),
	}
}

func logWarnings(log zerolog.Logger, warnings []xlreshape.Warning) {
	for _, w := range warnings {
		log.Warn().
			Str("kind", w.Kind.String()).
			Str("source", w.Source).
			Str("sheet", w.Sheet).
			Msg(w.Message)
	}
}

// userMessage renders typed failures as distinct messages.
func userMessage(err error) string {
	var (
		loadErr   *xlreshape.LoadError
		columnErr *xlreshape.NoSplitColumnError
		dataErr   *xlreshape.NoDataError
		mergeErr  *xlreshape.NoMergeableDataError
		filterErr *xlreshape.FilterError
	)
	switch {
	case errors.As(err, &loadErr) && errors.Is(err, xlreshape.ErrFileTooLarge):
		return fmt.Sprintf("%s is too large (use --max-size to raise the limit)", loadErr.Path)
	case errors.As(err, &loadErr) && errors.Is(err, xlreshape.ErrUnsupportedFormat):
		return fmt.Sprintf("%s is not a readable .xlsx workbook: %v", loadErr.Path, loadErr.Err)
	case errors.As(err, &loadErr):
		return fmt.Sprintf("cannot read %s: %v", loadErr.Path, loadErr.Err)
	case errors.As(err, &columnErr):
		return fmt.Sprintf("column %q was not found in any sheet; check the column name", columnErr.Column)
	case errors.As(err, &dataErr):
		return fmt.Sprintf("column %q has no values to split on", dataErr.Column)
	case errors.As(err, &mergeErr):
		return "nothing to merge: every sheet of every input is empty"
	case errors.As(err, &filterErr):
		return fmt.Sprintf("invalid --where expression: %v", filterErr)
	default:
		return err.Error()
	}
}
