package tabular

import "github.com/mesh-intelligence/stockbook/pkg/types"

// Table is the in-memory image of one Load: the data rows in file order.
// Row-numbers are physical sheet rows, so data row i has row-number
// i + types.FirstDataRow.
type Table struct {
	rows [][]string
}

// NewTable returns a table over rows, normalizing every row to the
// canonical column count.
func NewTable(rows [][]string) *Table {
	t := &Table{rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.rows = append(t.rows, fit(r))
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the data rows. The slice is shared with the table.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Has reports whether rowNumber currently holds a data row.
func (t *Table) Has(rowNumber int) bool {
	i := rowNumber - types.FirstDataRow
	return i >= 0 && i < len(t.rows)
}

// Row returns a copy of the row at rowNumber.
func (t *Table) Row(rowNumber int) ([]string, bool) {
	if !t.Has(rowNumber) {
		return nil, false
	}
	r := t.rows[rowNumber-types.FirstDataRow]
	return append([]string(nil), r...), true
}

// Record returns the record at rowNumber.
func (t *Table) Record(rowNumber int) (types.Record, bool) {
	row, ok := t.Row(rowNumber)
	if !ok {
		return types.Record{}, false
	}
	return types.RecordFromRow(row, rowNumber), true
}

// Records returns every data row as a record carrying its row-number.
func (t *Table) Records() []types.Record {
	out := make([]types.Record, len(t.rows))
	for i, r := range t.rows {
		out[i] = types.RecordFromRow(r, i+types.FirstDataRow)
	}
	return out
}

// Append adds a row at the end and returns its row-number.
func (t *Table) Append(row []string) int {
	t.rows = append(t.rows, fit(row))
	return len(t.rows) - 1 + types.FirstDataRow
}

// Set overwrites the row at rowNumber. It reports false when the row does
// not exist.
func (t *Table) Set(rowNumber int, row []string) bool {
	if !t.Has(rowNumber) {
		return false
	}
	t.rows[rowNumber-types.FirstDataRow] = fit(row)
	return true
}

// Remove deletes the row at rowNumber; every following row moves up one.
func (t *Table) Remove(rowNumber int) bool {
	if !t.Has(rowNumber) {
		return false
	}
	i := rowNumber - types.FirstDataRow
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

// fit copies row, padding or truncating it to the canonical column count.
func fit(row []string) []string {
	out := make([]string, types.NumColumns)
	copy(out, row)
	return out
}
