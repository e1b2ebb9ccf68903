// Package cache holds the read snapshot of one store file. The snapshot is
// an in-memory SQLite database mirroring the file's data rows; it is either
// valid, and then exactly equal to the file, or invalid and empty.
// Staleness is handled by explicit invalidation, never by eviction.
package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Snapshot is the cached record set for one store path.
type Snapshot struct {
	db    *sql.DB
	valid bool
}

// Open creates an empty, invalid snapshot.
func Open() (*Snapshot, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating snapshot schema: %w", err)
		}
	}
	return &Snapshot{db: db}, nil
}

// Close releases the snapshot database.
func (s *Snapshot) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.valid = false
	return err
}

// Valid reports whether the snapshot mirrors the file.
func (s *Snapshot) Valid() bool {
	return s.valid
}

// Load replaces the snapshot with records and marks it valid.
func (s *Snapshot) Load(records []types.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot load: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteRecords); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	if err := upsert(tx, records); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot load: %w", err)
	}
	s.valid = true
	return nil
}

// Put patches records into a valid snapshot by row-number. It is a no-op on
// an invalid snapshot, since a partial snapshot must never be served.
func (s *Snapshot) Put(records ...types.Record) error {
	if !s.valid || len(records) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot patch: %w", err)
	}
	defer tx.Rollback()

	if err := upsert(tx, records); err != nil {
		s.valid = false
		return err
	}
	if err := tx.Commit(); err != nil {
		s.valid = false
		return fmt.Errorf("committing snapshot patch: %w", err)
	}
	return nil
}

// Invalidate drops every cached row.
func (s *Snapshot) Invalidate() error {
	s.valid = false
	if _, err := s.db.Exec(deleteRecords); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	return nil
}

// Records returns the cached records ordered by row-number. The boolean is
// false when the snapshot is invalid and the caller must read the file.
func (s *Snapshot) Records() ([]types.Record, bool, error) {
	if !s.valid {
		return nil, false, nil
	}
	rows, err := s.db.Query(selectRecords)
	if err != nil {
		return nil, false, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		var rowNumber int
		cells := make([]string, types.NumColumns)
		dest := make([]any, 0, types.NumColumns+1)
		dest = append(dest, &rowNumber)
		for i := range cells {
			dest = append(dest, &cells[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, false, fmt.Errorf("scanning snapshot row: %w", err)
		}
		out = append(out, types.RecordFromRow(cells, rowNumber))
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("reading snapshot rows: %w", err)
	}
	return out, true, nil
}

// Len returns the number of cached rows, or -1 when invalid.
func (s *Snapshot) Len() (int, error) {
	if !s.valid {
		return -1, nil
	}
	var n int
	if err := s.db.QueryRow(countRecords).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting snapshot rows: %w", err)
	}
	return n, nil
}

func upsert(tx *sql.Tx, records []types.Record) error {
	stmt, err := tx.Prepare(upsertRecord)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, types.NumColumns+1)
	for _, r := range records {
		args[0] = r.RowNumber
		for i, cell := range r.Row() {
			args[i+1] = cell
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting snapshot row %d: %w", r.RowNumber, err)
		}
	}
	return nil
}
