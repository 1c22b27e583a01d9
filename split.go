package xlreshape

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Partition is one output of a split: the raw key and the sheets holding its rows.
type Partition struct {
	Key      Value
	Workbook *Workbook
}

// SplitResult holds the partitions of a split in key order.
type SplitResult struct {
	Column     string
	Partitions []Partition
	Warnings   []Warning
}

// Keys returns the partition keys in order.
func (r *SplitResult) Keys() []Value {
	keys := make([]Value, len(r.Partitions))
	for i, p := range r.Partitions {
		keys[i] = p.Key
	}
	return keys
}

// Lookup returns the workbook for key.
func (r *SplitResult) Lookup(key Value) (*Workbook, bool) {
	for _, p := range r.Partitions {
		if p.Key.Equal(key) {
			return p.Workbook, true
		}
	}
	return nil, false
}

// Split partitions wb by keys. For each key every sheet having column
// contributes the rows whose column value equals the key, in original order.
// Sheets with no matching row are left out and keys matching no row at all
// produce no partition. A nil workbook yields an empty result.
func Split(wb *Workbook, column string, keys []Value) *SplitResult {
	res := &SplitResult{Column: column}
	if wb == nil {
		return res
	}
	tables := wb.Tables()
	for _, key := range keys {
		out := NewWorkbook(wb.Source)
		for _, t := range tables {
			i := t.Index(column)
			if i < 0 {
				continue
			}
			ft := t.Filter(func(row Row) bool { return row[i].Equal(key) })
			if ft.Len() > 0 {
				out.Add(ft)
			}
		}
		if out.Len() > 0 {
			res.Partitions = append(res.Partitions, Partition{Key: key, Workbook: out})
		}
	}
	return res
}

// Splitter runs the complete split of a workbook: row filtering, key
// extraction and partitioning.
type Splitter struct {
	opts *Options
}

// NewSplitter creates a Splitter with the given options.
func NewSplitter(opts ...Option) *Splitter {
	return &Splitter{opts: buildOptions(opts)}
}

// SplitFile loads path and splits it by column.
func (s *Splitter) SplitFile(path, column string) (*SplitResult, error) {
	wb, err := Load(path, s.loadOptions()...)
	if err != nil {
		return nil, err
	}
	return s.Split(wb, column)
}

// Split splits wb by the distinct values of column. It fails with
// *NoSplitColumnError when no sheet has column and *NoDataError when the
// column holds no value.
func (s *Splitter) Split(wb *Workbook, column string) (*SplitResult, error) {
	wb, keys, warnings, err := s.prepare(wb, column)
	if err != nil {
		return nil, err
	}
	res := Split(wb, column, keys)
	res.Warnings = warnings
	return res, nil
}

// KeyPreview counts the rows one key would receive, per sheet.
type KeyPreview struct {
	Key       Value
	Sheets    []SheetCount
	TotalRows int
}

// SheetCount is a sheet name with a row count.
type SheetCount struct {
	Sheet string
	Rows  int
}

// Preview reports, for each key of a split of wb by column, how many rows
// every sheet would contribute. No output workbook is built.
func (s *Splitter) Preview(wb *Workbook, column string) ([]KeyPreview, []Warning, error) {
	wb, keys, warnings, err := s.prepare(wb, column)
	if err != nil {
		return nil, nil, err
	}
	previews := make([]KeyPreview, 0, len(keys))
	for _, key := range keys {
		kp := KeyPreview{Key: key}
		for _, t := range wb.Tables() {
			i := t.Index(column)
			if i < 0 {
				continue
			}
			n := 0
			for _, row := range t.Rows {
				if row[i].Equal(key) {
					n++
				}
			}
			if n > 0 {
				kp.Sheets = append(kp.Sheets, SheetCount{Sheet: t.Name, Rows: n})
				kp.TotalRows += n
			}
		}
		previews = append(previews, kp)
	}
	return previews, warnings, nil
}

func (s *Splitter) prepare(wb *Workbook, column string) (*Workbook, []Value, []Warning, error) {
	if wb == nil {
		return nil, nil, nil, ErrNoInput
	}
	filter, err := CompileRowFilter(s.opts.rowFilter)
	if err != nil {
		return nil, nil, nil, err
	}
	wb, err = filter.Workbook(wb)
	if err != nil {
		return nil, nil, nil, err
	}
	keys, warnings, err := DistinctValues(wb, column)
	if err != nil {
		return nil, nil, warnings, err
	}
	if len(keys) == 0 {
		return nil, nil, warnings, &NoDataError{Column: column}
	}
	return wb, keys, warnings, nil
}

func (s *Splitter) loadOptions() []Option {
	return []Option{WithMaxFileSize(s.opts.maxFileSize), WithLogger(s.opts.logger)}
}

// FileNamer maps a partition key to an output file name.
type FileNamer func(key Value) string

// DefaultFileNamer names outputs "<key>.xlsx" after SafeFileName.
func DefaultFileNamer(key Value) string {
	return SafeFileName(key.String()) + ".xlsx"
}

// OutputFile is a written partition.
type OutputFile struct {
	Key  Value
	Path string
}

// Save writes every partition into dir using namer (DefaultFileNamer when nil)
// and returns the written files in partition order. If any write fails, the
// files already written by this call are removed and the error is returned.
func (r *SplitResult) Save(dir string, namer FileNamer, opts ...Option) ([]OutputFile, error) {
	if namer == nil {
		namer = DefaultFileNamer
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %q: %w", dir, err)
	}

	written := make([]OutputFile, 0, len(r.Partitions))
	used := make(map[string]bool, len(r.Partitions))
	for _, p := range r.Partitions {
		path := filepath.Join(dir, uniqueName(namer(p.Key), used))
		if err := Save(p.Workbook, path, opts...); err != nil {
			for _, out := range written {
				os.Remove(out.Path)
			}
			return nil, fmt.Errorf("save partition %q: %w", p.Key.String(), err)
		}
		written = append(written, OutputFile{Key: p.Key, Path: path})
	}
	return written, nil
}

// uniqueName returns name, or name with a " (n)" suffix before the extension
// when name was already handed out. Names are compared case-insensitively.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
