package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func testIndex() *rowIndex {
	return newRowIndex([]types.Record{
		{Name: "A", Serial: "S-1", RowNumber: 2},
		{Name: "B", Serial: "S-2", RowNumber: 3},
		{Name: "C", Serial: "S-1", RowNumber: 4},
		{Name: "D", RowNumber: 5},
	})
}

func TestRowIndexFind(t *testing.T) {
	idx := testIndex()
	tests := []struct {
		name   string
		sel    types.Selection
		row    int
		byScan bool
		ok     bool
	}{
		{"row only", types.Selection{RowNumber: 3}, 3, false, true},
		{"row and matching serial", types.Selection{RowNumber: 4, Serial: "S-1"}, 4, false, true},
		{"serial only finds first", types.Selection{Serial: "S-1"}, 2, true, true},
		{"serial is trimmed", types.Selection{Serial: "  S-2 "}, 3, true, true},
		{"serial wins over disagreeing row", types.Selection{RowNumber: 2, Serial: "S-2"}, 3, true, true},
		{"disagreeing serial found nowhere", types.Selection{RowNumber: 2, Serial: "S-9"}, 0, false, false},
		{"row past the end falls back to serial", types.Selection{RowNumber: 40, Serial: "S-2"}, 3, true, true},
		{"row past the end", types.Selection{RowNumber: 40}, 0, false, false},
		{"header row is not data", types.Selection{RowNumber: 1}, 0, false, false},
		{"row without serial", types.Selection{RowNumber: 5}, 5, false, true},
		{"empty selection", types.Selection{}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := idx.find(tt.sel)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.row, res.row)
			assert.Equal(t, tt.byScan, res.byScan)
		})
	}
}

func TestRowIndexResolveAll(t *testing.T) {
	idx := testIndex()
	rows, missing, byScan := idx.resolveAll([]types.Selection{
		{RowNumber: 5},
		{Serial: "S-2"},
		{RowNumber: 3},
		{Serial: "nope"},
		{},
	})
	assert.Equal(t, []int{3, 5}, rows)
	assert.Equal(t, 2, missing)
	assert.True(t, byScan)
}
