package types

import (
	"strconv"
	"strings"
)

// Selection targets one record in a bulk operation. Either field may be
// empty; a RowNumber below FirstDataRow means no row-number was given.
// When both are given and disagree, the serial wins.
type Selection struct {
	Serial    string `json:"serial,omitempty"`
	RowNumber int    `json:"row_number,omitempty"`
}

// HasRow reports whether the selection carries a usable row-number.
func (s Selection) HasRow() bool {
	return s.RowNumber >= FirstDataRow
}

// HasSerial reports whether the selection carries a non-blank serial.
func (s Selection) HasSerial() bool {
	return strings.TrimSpace(s.Serial) != ""
}

// Valid reports whether the selection can address anything at all.
func (s Selection) Valid() bool {
	return s.HasRow() || s.HasSerial()
}

// Key returns a de-duplication key: the serial when present, otherwise the
// row-number. It returns "" for an invalid selection.
func (s Selection) Key() string {
	if s.HasSerial() {
		return "serial:" + strings.TrimSpace(s.Serial)
	}
	if s.HasRow() {
		return "row:" + strconv.Itoa(s.RowNumber)
	}
	return ""
}
