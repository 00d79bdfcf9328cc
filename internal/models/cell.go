package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cell is a single spreadsheet value. The script endpoint sends cells as JSON
// strings or numbers depending on how the sheet was filled, the Sheets API
// sends formatted strings; both end up here as text.
type Cell string

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

func CellOf(v interface{}) Cell {
	switch t := v.(type) {
	case nil:
		return ""
	case Cell:
		return t
	case string:
		return Cell(t)
	case float64:
		return Cell(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return Cell(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return Cell(strconv.Itoa(t))
	case int64:
		return Cell(strconv.FormatInt(t, 10))
	case bool:
		return Cell(strconv.FormatBool(t))
	case json.Number:
		return Cell(t.String())
	default:
		return Cell(fmt.Sprint(t))
	}
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid cell value %s: %w", string(data), err)
	}
	*c = CellOf(v)
	return nil
}

func (c Cell) String() string {
	return string(c)
}

func (c Cell) Empty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Int reads the leading integer of the cell, so "12", "12.7" and "12 days"
// all give 12. Cells without a leading integer report false.
func (c Cell) Int() (int, bool) {
	m := leadingInt.FindString(strings.TrimSpace(string(c)))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
