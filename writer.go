package xlreshape

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Encode writes wb as an xlsx workbook to w: one sheet per table in workbook
// order, the header on row 1 and data rows below. Null values leave cells blank.
// Table names that differ only by case are written with a numeric suffix.
func Encode(wb *Workbook, w io.Writer, opts ...Option) error {
	o := buildOptions(opts)
	f, err := newFile(wb, o)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook %q: %w", wb.Source, err)
	}
	return nil
}

// Save writes wb to path. The workbook is serialized to a temporary file in
// the same directory and renamed onto path only after it is complete, so a
// failed save never leaves a partial file at path.
func Save(wb *Workbook, path string, opts ...Option) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Encode(wb, tmp, opts...); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %q: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %q: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish %q: %w", path, err)
	}
	return nil
}

// newFile renders wb into a new excelize file.
func newFile(wb *Workbook, o *Options) (*excelize.File, error) {
	tables := wb.Tables()
	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", wb.Source)
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	used := make(map[string]bool, len(tables))
	for i, t := range tables {
		sheet := uniqueSheetName(t.Name, used)
		if sheet != t.Name {
			o.logger.Warn().Str("source", wb.Source).Str("sheet", t.Name).Str("written_as", sheet).Msg("sheet name clash")
		}
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("name sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		if err := writeTable(f, sheet, t); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %q: %w", sheet, err)
		}
		if o.keepLayout && t.Layout != nil {
			if err := ApplyLayout(f, sheet, *t.Layout, len(t.Columns)); err != nil {
				logCosmetic(o, wb.Source, &CosmeticError{Sheet: sheet, Err: err})
			}
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeTable(f *excelize.File, sheet string, t *Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if len(header) > 0 {
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v.Interface()
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("row %d: %w", r+2, err)
		}
	}
	return nil
}

// logCosmetic records a formatting failure. It never fails the caller.
func logCosmetic(o *Options, source string, err error) {
	var ce *CosmeticError
	if !errors.As(err, &ce) {
		ce = &CosmeticError{Err: err}
	}
	o.logger.Info().Err(ce.Err).Str("source", source).Str("sheet", ce.Sheet).Msg("formatting not copied")
}
