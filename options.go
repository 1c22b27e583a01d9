package xlreshape

import "github.com/rs/zerolog"

// SheetOrder controls the sheet order of a merged workbook.
type SheetOrder int

const (
	SheetOrderSorted    SheetOrder = iota // sheet names in ascending order (default)
	SheetOrderFirstSeen                   // order in which sheet names first appear across sources
)

// Options holds configuration shared by the loader, engines and writer.
type Options struct {
	rowFilter   string
	logger      zerolog.Logger
	maxFileSize int64
	keepLayout  bool
	sheetOrder  SheetOrder
}

func defaultOptions() *Options {
	return &Options{
		logger:     zerolog.Nop(),
		keepLayout: true,
		sheetOrder: SheetOrderSorted,
	}
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures loading, splitting, merging and writing.
type Option func(*Options)

// WithRowFilter keeps only rows for which the boolean expression is true.
// Columns are exposed by name; row["Column Name"] reaches any column.
func WithRowFilter(expression string) Option {
	return func(o *Options) { o.rowFilter = expression }
}

// WithLogger sets the logger used for informational messages such as
// formatting copies that could not be applied (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithMaxFileSize rejects input files larger than n bytes (0 disables the check).
func WithMaxFileSize(n int64) Option {
	return func(o *Options) { o.maxFileSize = n }
}

// WithLayout controls whether column widths and header height are carried
// from the source sheets to the written output (default: true).
func WithLayout(keep bool) Option {
	return func(o *Options) { o.keepLayout = keep }
}

// WithSheetOrder sets the sheet order of merged output (default: SheetOrderSorted).
func WithSheetOrder(order SheetOrder) Option {
	return func(o *Options) { o.sheetOrder = order }
}
