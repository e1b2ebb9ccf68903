package inventory

import (
	"sort"

	"github.com/mesh-intelligence/stockbook/internal/normalize"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// rowIndex resolves selections against one loaded record set. It is built
// per load and never reused after the rows it was built from change.
type rowIndex struct {
	records []types.Record
	serials map[string]int
}

// resolution is one resolved selection.
type resolution struct {
	row    int
	byScan bool
}

func newRowIndex(records []types.Record) *rowIndex {
	idx := &rowIndex{
		records: records,
		serials: make(map[string]int, len(records)),
	}
	for _, r := range records {
		s := normalize.Serial(r.Serial)
		if s == "" {
			continue
		}
		if _, ok := idx.serials[s]; !ok {
			idx.serials[s] = r.RowNumber
		}
	}
	return idx
}

func (x *rowIndex) record(row int) (types.Record, bool) {
	i := row - types.FirstDataRow
	if i < 0 || i >= len(x.records) {
		return types.Record{}, false
	}
	return x.records[i], true
}

// find resolves sel. A row-number is used when it holds data and agrees
// with the serial, if one is given. Otherwise the serial is looked up; a
// serial that disagrees with the row and is found nowhere resolves to
// nothing.
func (x *rowIndex) find(sel types.Selection) (resolution, bool) {
	serial := normalize.Serial(sel.Serial)
	if sel.HasRow() {
		if r, ok := x.record(sel.RowNumber); ok {
			if serial == "" || normalize.Serial(r.Serial) == serial {
				return resolution{row: sel.RowNumber}, true
			}
		}
	}
	if serial == "" {
		return resolution{}, false
	}
	row, ok := x.serials[serial]
	if !ok {
		return resolution{}, false
	}
	return resolution{row: row, byScan: true}, true
}

// resolveAll resolves sels and returns the distinct matched rows in
// ascending order, the number of selections that matched nothing, and
// whether any match came from a serial lookup.
func (x *rowIndex) resolveAll(sels []types.Selection) (rows []int, missing int, byScan bool) {
	seen := make(map[int]bool, len(sels))
	for _, sel := range sels {
		res, ok := x.find(sel)
		if !ok {
			missing++
			continue
		}
		byScan = byScan || res.byScan
		if seen[res.row] {
			continue
		}
		seen[res.row] = true
		rows = append(rows, res.row)
	}
	sort.Ints(rows)
	return rows, missing, byScan
}

// serialSet returns every non-blank serial in the index.
func (x *rowIndex) serialSet() []string {
	out := make([]string, 0, len(x.serials))
	for s := range x.serials {
		out = append(out, s)
	}
	return out
}
