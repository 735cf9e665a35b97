package loader

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row keyed by normalized column name. Cells missing from
// the source are present with an empty string value.
type Row map[string]string

// Get returns the value of the first of the given columns that exists in the
// row. A column that exists but holds an empty cell still wins.
func (r Row) Get(columns ...string) (string, bool) {
	for _, col := range columns {
		if v, ok := r[col]; ok {
			return v, true
		}
	}
	return "", false
}

// Value returns the first present column's value, or def when none of the
// columns exist or the value is blank.
func (r Row) Value(def string, columns ...string) string {
	v, ok := r.Get(columns...)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Sheet is a named table with normalized column names.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the sheet carries the normalized column.
func (s *Sheet) HasColumn(col string) bool {
	for _, c := range s.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Workbook is an in-memory set of sheets, in source order.
type Workbook struct {
	sheets map[string]*Sheet
	order  []string
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]*Sheet)}
}

// AddSheet adds a sheet from a raw header row and raw data rows. Headers are
// normalized, short rows are padded with empty cells and fully blank rows are
// skipped. Adding a sheet with an existing name replaces it.
func (w *Workbook) AddSheet(name string, header []string, rows [][]string) *Sheet {
	sheet := &Sheet{Name: name, Columns: make([]string, 0, len(header))}

	seen := make(map[string]bool, len(header))
	index := make([]int, 0, len(header))
	for i, h := range header {
		col := NormalizeColumn(h)
		if col == "" || seen[col] {
			continue
		}
		seen[col] = true
		sheet.Columns = append(sheet.Columns, col)
		index = append(index, i)
	}

	for _, raw := range rows {
		if isBlank(raw) {
			continue
		}
		row := make(Row, len(sheet.Columns))
		for j, col := range sheet.Columns {
			if i := index[j]; i < len(raw) {
				row[col] = strings.TrimSpace(raw[i])
			} else {
				row[col] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if _, exists := w.sheets[name]; !exists {
		w.order = append(w.order, name)
	}
	w.sheets[name] = sheet
	return sheet
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := w.sheets[name]
	return s, ok
}

// SheetNames returns the sheet names in source order.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

// OpenWorkbook reads an .xlsx file from disk.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return fromExcel(f)
}

// ReadWorkbook reads an .xlsx document from r.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()
	return fromExcel(f)
}

// fromExcel copies every sheet. Raw cell values are used so that numbers
// and dates arrive unformatted (dates as serial numbers).
func fromExcel(f *excelize.File) (*Workbook, error) {
	wb := NewWorkbook()
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		if len(rows) == 0 {
			wb.AddSheet(name, nil, nil)
			continue
		}
		wb.AddSheet(name, rows[0], rows[1:])
	}
	return wb, nil
}

var nonColumnChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// NormalizeColumn lowercases a header, turns spaces into underscores and
// drops every other character outside [a-z0-9_].
func NormalizeColumn(header string) string {
	col := strings.ReplaceAll(strings.ToLower(header), " ", "_")
	return nonColumnChars.ReplaceAllString(col, "")
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
