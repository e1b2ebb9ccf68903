package types

import "errors"

// Store is the CRUD surface over one tabular inventory file.
// Methods return plain results; not-found targets are counted, never
// returned as errors. Errors wrap ErrIO when the file cannot be read or
// written.
type Store interface {
	// Create normalizes r, assigns a serial when absent, appends it and
	// returns the stored record with its row-number and scannable artifact.
	Create(r Record) (CreateResult, error)

	// List returns every record with its current row-number.
	List() ([]Record, error)

	// Get resolves one selection to a record.
	Get(sel Selection) (Record, bool, error)

	// Update overwrites all fields of the resolved record with fields.
	Update(sel Selection, fields Record) (UpdateResult, error)

	// Delete removes every resolved target and returns their values.
	Delete(sels []Selection) (DeleteResult, error)

	// Restore re-appends records as new rows without serial checks.
	Restore(records []Record) (RestoreResult, error)

	// BatchCreate appends records with serials generated against one
	// snapshot of the existing serials.
	BatchCreate(records []Record) (BatchResult, error)

	// Decommission sets the status of every resolved target to label.
	Decommission(sels []Selection, label string) (DecommissionResult, error)

	// Close releases the store's cache.
	Close() error
}

// Store errors.
var (
	ErrIO          = errors.New("store i/o failure")
	ErrStoreClosed = errors.New("store is closed")
	ErrEmptyPath   = errors.New("store path must not be empty")
)
