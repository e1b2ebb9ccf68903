package types

// Outcome classifies a targeted operation. Not-found is a result, never an
// error; only I/O failures are returned as errors.
type Outcome int

const (
	// OutcomeApplied means the target resolved and the change was written.
	OutcomeApplied Outcome = iota
	// OutcomeNotFound means the target resolved to no record.
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// CreateResult is returned by Store.Create.
type CreateResult struct {
	Record    Record   `json:"record"`
	Artifact  Artifact `json:"-"`
	CacheKept bool     `json:"-"`
}

// UpdateResult is returned by Store.Update. Record holds the normalized
// post-update record when Outcome is OutcomeApplied.
type UpdateResult struct {
	Outcome   Outcome `json:"outcome"`
	Updated   int     `json:"updated"`
	Record    Record  `json:"record"`
	CacheKept bool    `json:"-"`
}

// DeleteResult is returned by Store.Delete. Records holds the full field
// values of every removed row, in removal order, so they can be restored.
type DeleteResult struct {
	Deleted   int      `json:"deleted"`
	Missing   int      `json:"missing"`
	Records   []Record `json:"records"`
	CacheKept bool     `json:"-"`
}

// RestoreResult is returned by Store.Restore.
type RestoreResult struct {
	Restored  int      `json:"restored"`
	Records   []Record `json:"records"`
	CacheKept bool     `json:"-"`
}

// BatchResult is returned by Store.BatchCreate and by seeding. Created is in
// creation order and carries the assigned row-numbers.
type BatchResult struct {
	Created   []Record `json:"created"`
	Skipped   int      `json:"skipped"`
	CacheKept bool     `json:"-"`
}

// DecommissionResult is returned by Store.Decommission. Matched counts every
// resolved target, including those already at the label; Updated counts only
// rows whose status changed.
type DecommissionResult struct {
	Matched   int  `json:"matched"`
	Updated   int  `json:"updated"`
	Missing   int  `json:"missing"`
	CacheKept bool `json:"-"`
}
