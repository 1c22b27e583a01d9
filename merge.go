package xlreshape

import (
	"path/filepath"
	"slices"
)

// Source is one input of a merge.
type Source struct {
	ID       string
	Workbook *Workbook
}

// SheetStats describes one merged sheet.
type SheetStats struct {
	Sheet   string
	Rows    int
	Sources []string // IDs of the sources that contributed rows, in merge order
}

// MergeResult is a merged workbook with per-sheet statistics.
type MergeResult struct {
	Workbook *Workbook
	Stats    []SheetStats
	Warnings []Warning
}

// Save writes the merged workbook to path. See Save.
func (r *MergeResult) Save(path string, opts ...Option) error {
	return Save(r.Workbook, path, opts...)
}

// Merge concatenates same-named sheets across sources, in source order.
// Sheet names are processed in ascending order. For each name, empty tables are
// skipped, the first non-empty table fixes the column order and later tables
// with a different header are aligned to it. Names whose tables are all empty
// are omitted. A name equal to an earlier one except for case is suffixed
// ("sales1") with a warning. A *NoMergeableDataError is returned when nothing is left.
func Merge(sources []Source) (*MergeResult, error) {
	return mergeSources(sources, SheetOrderSorted)
}

func mergeSources(sources []Source, order SheetOrder) (*MergeResult, error) {
	res := &MergeResult{Workbook: NewWorkbook("merged")}
	used := make(map[string]bool)
	for _, name := range sheetNames(sources, order) {
		merged, stats, warnings := mergeSheet(name, sources)
		res.Warnings = append(res.Warnings, warnings...)
		if merged == nil {
			continue
		}
		if unique := uniqueSheetName(name, used); unique != name {
			res.Warnings = append(res.Warnings, sheetRenamedWarning(name, unique))
			merged.Name = unique
			stats.Sheet = unique
		}
		res.Workbook.Add(merged)
		res.Stats = append(res.Stats, stats)
	}
	if res.Workbook.Len() == 0 {
		ids := make([]string, len(sources))
		for i, s := range sources {
			ids[i] = s.ID
		}
		return nil, &NoMergeableDataError{Sources: ids}
	}
	return res, nil
}

// sheetNames returns the distinct sheet names of all sources.
func sheetNames(sources []Source, order SheetOrder) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range sources {
		if s.Workbook == nil {
			continue
		}
		for _, name := range s.Workbook.SheetNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	if order == SheetOrderSorted {
		slices.Sort(names)
	}
	return names
}

// mergeSheet concatenates the SheetGroup of name. It returns a nil table when
// every table of the group is empty.
func mergeSheet(name string, sources []Source) (*Table, SheetStats, []Warning) {
	var (
		merged   *Table
		warnings []Warning
	)
	stats := SheetStats{Sheet: name}
	for _, s := range sources {
		if s.Workbook == nil {
			continue
		}
		t, ok := s.Workbook.Sheet(name)
		if !ok {
			continue
		}
		if t.Len() == 0 {
			warnings = append(warnings, emptySheetWarning(s.ID, name))
			continue
		}

		switch {
		case merged == nil:
			merged = t.Filter(func(Row) bool { return true })
		case slices.Equal(t.Columns, merged.Columns):
			merged.AppendRows(t.Rows)
		default:
			warnings = append(warnings, headerMismatchWarning(s.ID, name, merged.Columns, t.Columns))
			merged.AppendRows(Align(merged.Columns, t).Rows)
		}
		stats.Sources = append(stats.Sources, s.ID)
	}
	if merged == nil {
		return nil, stats, warnings
	}
	stats.Rows = merged.Len()
	return merged, stats, warnings
}

// Merger runs the complete merge of several workbooks: loading, row
// filtering and concatenation.
type Merger struct {
	opts *Options
}

// NewMerger creates a Merger with the given options.
func NewMerger(opts ...Option) *Merger {
	return &Merger{opts: buildOptions(opts)}
}

// MergeFiles loads every path in order and merges them. The first file that
// fails to load aborts the merge with its *LoadError.
func (m *Merger) MergeFiles(paths []string) (*MergeResult, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		wb, err := Load(p, WithMaxFileSize(m.opts.maxFileSize), WithLogger(m.opts.logger))
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{ID: filepath.Base(p), Workbook: wb})
	}
	return m.Merge(sources)
}

// Merge filters the rows of every source, when a row filter is configured,
// and merges them.
func (m *Merger) Merge(sources []Source) (*MergeResult, error) {
	filter, err := CompileRowFilter(m.opts.rowFilter)
	if err != nil {
		return nil, err
	}
	if filter != nil {
		filtered := make([]Source, len(sources))
		for i, s := range sources {
			filtered[i] = s
			if s.Workbook == nil {
				continue
			}
			if filtered[i].Workbook, err = filter.Workbook(s.Workbook); err != nil {
				return nil, err
			}
		}
		sources = filtered
	}
	return mergeSources(sources, m.opts.sheetOrder)
}
