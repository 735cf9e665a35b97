package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DefaultDate is stored when a date cell is empty.
const DefaultDate = "1900-01-01"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01-02-2006",
}

// ParseDate converts a cell to an ISO calendar date. It accepts ISO dates
// with or without a time part, US slash dates and Excel serial numbers.
func ParseDate(cell string) (string, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return DefaultDate, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("unrecognized date %q", cell)
}

// ParseInt converts a cell holding an integer key. Spreadsheet tools often
// store integers as floats, so "101.0" is accepted; "101.5" is not.
func ParseInt(cell string) (int64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, fmt.Errorf("empty integer value")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", cell)
	}
	return int64(f), nil
}

// ParseID converts a cell holding a string key. Whole floats lose their
// ".0" suffix so that "7" and "7.0" name the same entity.
func ParseID(cell string) string {
	s := strings.TrimSpace(cell)
	if strings.HasSuffix(s, ".0") {
		if n, err := ParseInt(s); err == nil {
			return strconv.FormatInt(n, 10)
		}
	}
	return s
}
