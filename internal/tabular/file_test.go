package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func headerLine() string {
	return strings.Join(types.Header, ",")
}

func TestOpenCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.csv")

	f, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, headerLine()+"\n", string(data))

	tbl, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, types.ErrEmptyPath)
}

func TestOpenRewritesMismatchedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	content := "Nombre,NoSerie,Categoria\nChair,S-1,Furniture\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := Open(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, headerLine(), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Chair,S-1,Furniture"))

	tbl, err := f.Load()
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	rec, ok := tbl.Record(types.FirstDataRow)
	require.True(t, ok)
	assert.Equal(t, "Chair", rec.Name)
	assert.Equal(t, "S-1", rec.Serial)
}

func TestOpenEmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Open(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, headerLine()+"\n", string(data))
}

func TestSaveAndLoadPreservesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	f, err := Open(path)
	require.NoError(t, err)

	tbl := NewTable(nil)
	r := types.Record{Name: "Desk, oak", Serial: "D-1", Quantity: types.NewQuantity(3), Notes: "line one\nline two"}
	rn := tbl.Append(r.Row())
	assert.Equal(t, types.FirstDataRow, rn)
	require.NoError(t, f.Save(tbl))

	loaded, err := f.Load()
	require.NoError(t, err)
	got, ok := loaded.Record(rn)
	require.True(t, ok)
	assert.Equal(t, r, got.WithoutRow())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	f, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = f.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTableRowOperations(t *testing.T) {
	tbl := NewTable([][]string{{"A"}, {"B"}, {"C"}})
	require.Equal(t, 3, tbl.Len())
	assert.False(t, tbl.Has(1), "row 1 is the header")
	assert.True(t, tbl.Has(4))
	assert.False(t, tbl.Has(5))

	row, ok := tbl.Row(3)
	require.True(t, ok)
	assert.Len(t, row, types.NumColumns, "rows are padded to the header width")
	assert.Equal(t, "B", row[types.ColName])

	require.True(t, tbl.Remove(3))
	rec, ok := tbl.Record(3)
	require.True(t, ok)
	assert.Equal(t, "C", rec.Name, "following rows shift up after a removal")

	assert.True(t, tbl.Set(2, []string{"Z"}))
	assert.False(t, tbl.Set(9, []string{"Z"}))
	assert.Equal(t, "Z", tbl.Records()[0].Name)
}
