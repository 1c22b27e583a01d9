package xlreshape

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// loadableExtensions lists the file extensions the loader opens.
var loadableExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// builtinDateFormats are the built-in number format IDs that render dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 30: true, 36: true, 45: true, 46: true, 47: true, 50: true, 57: true,
}

// Load reads every sheet of the workbook at path.
func Load(path string, opts ...Option) (*Workbook, error) {
	o := buildOptions(opts)
	ext := strings.ToLower(filepath.Ext(path))
	if !loadableExtensions[ext] {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if o.maxFileSize > 0 && info.Size() > o.maxFileSize {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, info.Size(), o.maxFileSize)}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: openError(err)}
	}
	defer f.Close()
	return readWorkbook(f, path, filepath.Base(path), o)
}

// openError classifies an excelize open failure: file system errors are
// returned as is, anything else means the content is not a workbook.
func openError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
}

// LoadReader reads every sheet of a workbook from r. name identifies the
// workbook in errors and warnings.
func LoadReader(r io.Reader, name string, opts ...Option) (*Workbook, error) {
	o := buildOptions(opts)
	if o.maxFileSize > 0 {
		r = io.LimitReader(r, o.maxFileSize+1)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	if o.maxFileSize > 0 && n > o.maxFileSize {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, o.maxFileSize)}
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)}
	}
	defer f.Close()
	return readWorkbook(f, name, name, o)
}

func readWorkbook(f *excelize.File, path, source string, o *Options) (*Workbook, error) {
	sr := &sheetReader{file: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		sr.date1904 = *props.Date1904
	}

	wb := NewWorkbook(source)
	for _, sheet := range f.GetSheetList() {
		t, err := sr.readTable(sheet)
		if err != nil {
			return nil, &LoadError{Path: path, Sheet: sheet, Err: err}
		}
		if len(t.Columns) > 0 {
			l, err := CaptureLayout(f, sheet, len(t.Columns))
			if err != nil {
				o.logger.Debug().Err(err).Str("source", source).Str("sheet", sheet).Msg("layout not captured")
			} else {
				t.Layout = &l
			}
		}
		wb.Add(t)
	}
	return wb, nil
}

// sheetReader turns excelize rows into typed tables.
type sheetReader struct {
	file       *excelize.File
	date1904   bool
	dateStyles map[int]bool // style ID → renders as date
}

func (sr *sheetReader) readTable(sheet string) (*Table, error) {
	rows, err := sr.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return NewTable(sheet, nil)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	t, err := NewTable(sheet, uniqueColumnNames(rows[0], width))
	if err != nil {
		return nil, err
	}

	for r := 1; r < len(rows); r++ {
		row := make(Row, width)
		for c, raw := range rows[r] {
			v, err := sr.cellValue(sheet, r, c, raw)
			if err != nil {
				return nil, err
			}
			row[c] = v
		}
		t.Rows = append(t.Rows, row)
	}
	t.Rows = trimTrailingBlankRows(t.Rows)
	return t, nil
}

// cellValue types the raw text of the cell at 0-based (r, c).
func (sr *sheetReader) cellValue(sheet string, r, c int, raw string) (Value, error) {
	if raw == "" {
		return Null(), nil
	}
	cell, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return Null(), err
	}
	typ, err := sr.file.GetCellType(sheet, cell)
	if err != nil {
		return Null(), fmt.Errorf("cell %s type: %w", cell, err)
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return String(raw), nil
	case excelize.CellTypeBool:
		return Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeDate:
		if ts, err := parseISOTime(raw); err == nil {
			return Time(ts), nil
		}
		return String(raw), nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return String(raw), nil
	}
	if sr.isDateCell(sheet, cell) {
		if ts, err := excelize.ExcelDateToTime(n, sr.date1904); err == nil {
			return Time(ts), nil
		}
	}
	return Number(n), nil
}

func (sr *sheetReader) isDateCell(sheet, cell string) bool {
	id, err := sr.file.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return false
	}
	if known, ok := sr.dateStyles[id]; ok {
		return known
	}
	isDate := false
	if style, err := sr.file.GetStyle(id); err == nil {
		switch {
		case style.CustomNumFmt != nil:
			isDate = isDateFormatCode(*style.CustomNumFmt)
		default:
			isDate = builtinDateFormats[style.NumFmt]
		}
	}
	sr.dateStyles[id] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom number format renders a date or time.
// Quoted literals and bracketed sections such as colors are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range code {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}

func parseISOTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 time: %q", s)
}

// uniqueColumnNames derives width unique column names from a header row.
// Blank headers become "Unnamed: <i>" and repeats get ".1", ".2" suffixes.
func uniqueColumnNames(header []string, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int)
	for i := 0; i < width; i++ {
		base := ""
		if i < len(header) {
			base = strings.TrimSpace(header[i])
		}
		if base == "" {
			base = fmt.Sprintf("Unnamed: %d", i)
		}
		name := base
		for used[name] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func trimTrailingBlankRows(rows []Row) []Row {
	end := len(rows)
	for end > 0 && rowIsBlank(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func rowIsBlank(row Row) bool {
	for _, v := range row {
		if !v.IsNull() {
			return false
		}
	}
	return true
}
