package xlreshape

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Layout is the cosmetic shape of a sheet that survives split and merge:
// per-column widths (0-based, 0 meaning unknown) and the header row height.
type Layout struct {
	ColumnWidths []float64
	HeaderHeight float64
}

func (l Layout) clone() Layout {
	return Layout{
		ColumnWidths: append([]float64(nil), l.ColumnWidths...),
		HeaderHeight: l.HeaderHeight,
	}
}

// CaptureLayout reads the widths of the first ncols columns and the height of
// the header row of sheet.
func CaptureLayout(f *excelize.File, sheet string, ncols int) (Layout, error) {
	var l Layout
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return l, excelize.ErrSheetNotExist{SheetName: sheet}
	}
	l.ColumnWidths = make([]float64, ncols)
	for i := 0; i < ncols; i++ {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return l, err
		}
		w, err := f.GetColWidth(sheet, name)
		if err != nil {
			return l, fmt.Errorf("column %s width: %w", name, err)
		}
		l.ColumnWidths[i] = w
	}
	h, err := f.GetRowHeight(sheet, 1)
	if err != nil {
		return l, fmt.Errorf("header row height: %w", err)
	}
	l.HeaderHeight = h
	return l, nil
}

// ApplyLayout sets column widths for the first ncols columns that have a known
// width and the header row height, if known.
func ApplyLayout(f *excelize.File, sheet string, l Layout, ncols int) error {
	var errs []error
	for i := 0; i < ncols && i < len(l.ColumnWidths); i++ {
		w := l.ColumnWidths[i]
		if w <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			errs = append(errs, fmt.Errorf("column %s width: %w", name, err))
		}
	}
	if l.HeaderHeight > 0 {
		if err := f.SetRowHeight(sheet, 1, l.HeaderHeight); err != nil {
			errs = append(errs, fmt.Errorf("header row height: %w", err))
		}
	}
	return errors.Join(errs...)
}

// CopyFormatting copies column widths and the header row height from a source
// sheet onto a target sheet, for columns present in both. The result is
// either nil or a *CosmeticError; it never reflects a data problem.
func CopyFormatting(src *excelize.File, srcSheet string, dst *excelize.File, dstSheet string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CosmeticError{Sheet: dstSheet, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if src == nil || dst == nil {
		return &CosmeticError{Sheet: dstSheet, Err: errors.New("nil workbook")}
	}
	ncols, err := sharedColumnCount(src, srcSheet, dst, dstSheet)
	if err != nil {
		return &CosmeticError{Sheet: dstSheet, Err: err}
	}
	l, err := CaptureLayout(src, srcSheet, ncols)
	if err != nil {
		return &CosmeticError{Sheet: dstSheet, Err: err}
	}
	if err := ApplyLayout(dst, dstSheet, l, ncols); err != nil {
		return &CosmeticError{Sheet: dstSheet, Err: err}
	}
	return nil
}

// sharedColumnCount returns how many leading columns both sheets have.
func sharedColumnCount(src *excelize.File, srcSheet string, dst *excelize.File, dstSheet string) (int, error) {
	a, err := src.GetCols(srcSheet)
	if err != nil {
		return 0, err
	}
	b, err := dst.GetCols(dstSheet)
	if err != nil {
		return 0, err
	}
	return min(len(a), len(b)), nil
}
