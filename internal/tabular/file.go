// Package tabular is the accessor for the flat CSV file that backs a store.
// The file is the source of truth: a canonical header row followed by one
// row per record. Every write replaces the whole file using the temp-file,
// fsync, rename pattern, so an acknowledged write is never lost or torn.
package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// File is an opened tabular store file. It holds no rows itself; each Load
// re-reads the file so that row-numbers always reflect what is on disk.
type File struct {
	path string
}

// Open returns the tabular file at path, creating it with the canonical
// header when it does not exist. An existing file whose first row differs
// from the header has that row rewritten before Open returns.
func Open(path string) (*File, error) {
	if path == "" {
		return nil, types.ErrEmptyPath
	}
	f := &File{path: path}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, ioErr("creating store directory", err)
		}
		if err := f.Save(NewTable(nil)); err != nil {
			return nil, err
		}
		return f, nil
	case err != nil:
		return nil, ioErr("stat "+path, err)
	}

	if _, err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the file into a Table. When the first row is not the
// canonical header it is replaced (or, for an empty file, inserted) and the
// file is persisted before any data row is returned.
func (f *File) Load() (*Table, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, ioErr("opening "+f.path, err)
	}
	defer fh.Close()

	records, err := readRows(fh)
	if err != nil {
		return nil, ioErr("reading "+f.path, err)
	}

	if len(records) == 0 {
		t := NewTable(nil)
		if err := f.Save(t); err != nil {
			return nil, err
		}
		return t, nil
	}

	t := NewTable(records[1:])
	if !HeaderMatches(records[0]) {
		if err := f.Save(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Save atomically writes the header and every data row of t.
func (f *File) Save(t *Table) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".stockbook-*.tmp")
	if err != nil {
		return ioErr("creating temp file", err)
	}
	tmpName := tmp.Name()

	fail := func(msg string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return ioErr(msg, err)
	}

	bw := bufio.NewWriter(tmp)
	w := csv.NewWriter(bw)
	if err := w.Write(types.Header); err != nil {
		return fail("writing header", err)
	}
	for _, row := range t.rows {
		if err := w.Write(row); err != nil {
			return fail("writing row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fail("flushing csv", err)
	}
	if err := bw.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ioErr("closing temp file", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return ioErr("renaming temp file", err)
	}
	return nil
}

// HeaderMatches reports whether row is exactly the canonical header.
func HeaderMatches(row []string) bool {
	if len(row) != len(types.Header) {
		return false
	}
	for i, h := range types.Header {
		if row[i] != h {
			return false
		}
	}
	return true
}

// readRows reads every CSV row. Rows may have any number of fields; a
// trailing fully-empty line is skipped by encoding/csv.
func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

func ioErr(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrIO, msg, err)
}
