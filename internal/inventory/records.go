package inventory

import (
	"strings"

	"github.com/mesh-intelligence/stockbook/internal/metrics"
	"github.com/mesh-intelligence/stockbook/internal/normalize"
	"github.com/mesh-intelligence/stockbook/internal/serial"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Create normalizes r, assigns a serial when it has none (or a suffixed one
// when it collides), appends it and returns the stored record with its
// row-number and scannable artifact.
func (s *Store) Create(r types.Record) (result types.CreateResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("create", err) }()

	if err := s.checkOpen(); err != nil {
		return result, err
	}
	t, idx, err := s.load()
	if err != nil {
		return result, err
	}
	before := t.Len()

	rec := normalize.Record(r)
	rec.Serial = serial.Generate(rec, serial.NewSet(idx.serialSet()...))
	rec.RowNumber = t.Append(rec.Row())
	if err := s.file.Save(t); err != nil {
		return result, err
	}
	s.log.Debug("record created", "serial", rec.Serial, "row", rec.RowNumber)

	result.Record = rec
	result.CacheKept = s.applyCache(cacheDelta{before: before, patch: []types.Record{rec}})
	if s.encoder != nil {
		result.Artifact = s.encoder.Encode(rec)
	}
	return result, nil
}

// List returns every record with its current row-number, from the cache
// when it is valid and from the file otherwise.
func (s *Store) List() (records []types.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("list", err) }()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.list()
}

func (s *Store) list() ([]types.Record, error) {
	cached, ok, err := s.cache.Records()
	if err == nil && ok {
		s.metrics.Cache(metrics.CacheHit)
		return cached, nil
	}
	if err != nil {
		s.log.Warn("reading cache", "path", s.Path(), "error", err)
	}
	s.metrics.Cache(metrics.CacheMiss)

	t, err := s.file.Load()
	if err != nil {
		return nil, err
	}
	records := t.Records()
	if err := s.cache.Load(records); err != nil {
		s.log.Warn("filling cache", "path", s.Path(), "error", err)
	}
	return records, nil
}

// Get resolves sel against the current records.
func (s *Store) Get(sel types.Selection) (types.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return types.Record{}, false, err
	}
	records, err := s.list()
	if err != nil {
		return types.Record{}, false, err
	}
	idx := newRowIndex(records)
	res, ok := idx.find(sel)
	if !ok {
		return types.Record{}, false, nil
	}
	rec, _ := idx.record(res.row)
	return rec, true, nil
}

// Update overwrites every field of the record sel resolves to with the
// normalized fields. A blank serial in fields keeps the stored serial. An
// unresolved selection is reported as OutcomeNotFound.
func (s *Store) Update(sel types.Selection, fields types.Record) (result types.UpdateResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("update", err) }()

	if err := s.checkOpen(); err != nil {
		return result, err
	}
	t, idx, err := s.load()
	if err != nil {
		return result, err
	}
	res, ok := idx.find(sel)
	if !ok {
		s.metrics.Targets("update", "missing", 1)
		result.Outcome = types.OutcomeNotFound
		result.CacheKept = s.cache.Valid()
		return result, nil
	}
	current, _ := idx.record(res.row)

	rec := normalize.Record(fields)
	if rec.Serial == "" {
		rec.Serial = current.Serial
	}
	rec.RowNumber = res.row
	t.Set(res.row, rec.Row())
	if err := s.file.Save(t); err != nil {
		return result, err
	}
	s.metrics.Targets("update", "updated", 1)
	s.log.Debug("record updated", "serial", rec.Serial, "row", rec.RowNumber)

	result.Outcome = types.OutcomeApplied
	result.Updated = 1
	result.Record = rec
	result.CacheKept = s.applyCache(cacheDelta{
		before:     t.Len(),
		patch:      []types.Record{rec},
		invalidate: res.byScan,
		reason:     "target resolved by serial",
	})
	return result, nil
}

// Delete removes every row the selections resolve to, in one pass from the
// highest row to the lowest, and writes the file once. The removed records
// are returned in file order.
func (s *Store) Delete(sels []types.Selection) (result types.DeleteResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("delete", err) }()

	if err := s.checkOpen(); err != nil {
		return result, err
	}
	t, idx, err := s.load()
	if err != nil {
		return result, err
	}
	rows, missing, _ := idx.resolveAll(sels)
	result.Missing = missing
	s.metrics.Targets("delete", "missing", missing)
	if len(rows) == 0 {
		result.CacheKept = s.cache.Valid()
		return result, nil
	}

	result.Records = make([]types.Record, 0, len(rows))
	for _, row := range rows {
		rec, _ := t.Record(row)
		result.Records = append(result.Records, rec.WithoutRow())
	}
	for i := len(rows) - 1; i >= 0; i-- {
		t.Remove(rows[i])
	}
	if err := s.file.Save(t); err != nil {
		return types.DeleteResult{Missing: missing}, err
	}
	result.Deleted = len(rows)
	s.metrics.Targets("delete", "deleted", len(rows))
	s.log.Debug("records deleted", "count", len(rows), "missing", missing)

	result.CacheKept = s.applyCache(cacheDelta{invalidate: true, reason: "rows removed"})
	return result, nil
}

// Restore appends records as new rows, in order, without checking their
// serials against the store.
func (s *Store) Restore(records []types.Record) (result types.RestoreResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("restore", err) }()

	if err := s.checkOpen(); err != nil {
		return result, err
	}
	if len(records) == 0 {
		result.CacheKept = s.cache.Valid()
		return result, nil
	}
	t, _, err := s.load()
	if err != nil {
		return result, err
	}
	before := t.Len()

	result.Records = make([]types.Record, 0, len(records))
	for _, r := range records {
		r.RowNumber = t.Append(r.Row())
		result.Records = append(result.Records, r)
	}
	if err := s.file.Save(t); err != nil {
		return types.RestoreResult{}, err
	}
	result.Restored = len(records)
	s.metrics.Targets("restore", "restored", len(records))
	s.log.Debug("records restored", "count", len(records))

	result.CacheKept = s.applyCache(cacheDelta{before: before, patch: result.Records})
	return result, nil
}

// BatchCreate normalizes records and assigns serials against one snapshot
// of the existing serials, then appends them all and writes the file once.
func (s *Store) BatchCreate(records []types.Record) (result types.BatchResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("batch_create", err) }()

	return s.batch(records, false)
}

// Seed batch-creates records, skipping those whose serial is already in
// the store. A nil slice seeds the built-in sample records. Seeding is
// idempotent for records that carry serials.
func (s *Store) Seed(records []types.Record) (result types.BatchResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("seed", err) }()

	if records == nil {
		records = sampleRecords
	}
	return s.batch(records, true)
}

func (s *Store) batch(records []types.Record, skipExisting bool) (types.BatchResult, error) {
	var result types.BatchResult
	if err := s.checkOpen(); err != nil {
		return result, err
	}
	if len(records) == 0 {
		result.CacheKept = s.cache.Valid()
		return result, nil
	}
	t, idx, err := s.load()
	if err != nil {
		return result, err
	}
	before := t.Len()
	existing := serial.NewSet(idx.serialSet()...)

	for _, r := range records {
		rec := normalize.Record(r)
		if skipExisting && rec.Serial != "" && existing.Has(rec.Serial) {
			result.Skipped++
			continue
		}
		rec.Serial = serial.Generate(rec, existing)
		existing.Add(rec.Serial)
		rec.RowNumber = t.Append(rec.Row())
		result.Created = append(result.Created, rec)
	}
	if len(result.Created) == 0 {
		result.CacheKept = s.cache.Valid()
		return result, nil
	}
	if err := s.file.Save(t); err != nil {
		return types.BatchResult{}, err
	}
	s.log.Debug("records created", "count", len(result.Created), "skipped", result.Skipped)

	result.CacheKept = s.applyCache(cacheDelta{before: before, patch: result.Created})
	return result, nil
}

// Decommission sets the status of every resolved target to label, or to
// types.DefaultDecommissionLabel when label is blank. Targets already at
// the label count as matched but not updated. The file is written only when
// a status changed.
func (s *Store) Decommission(sels []types.Selection, label string) (result types.DecommissionResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.metrics.Operation("decommission", err) }()

	if err := s.checkOpen(); err != nil {
		return result, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = types.DefaultDecommissionLabel
	}
	t, idx, err := s.load()
	if err != nil {
		return result, err
	}
	rows, missing, _ := idx.resolveAll(sels)
	result.Matched = len(rows)
	result.Missing = missing
	s.metrics.Targets("decommission", "missing", missing)

	var changed []types.Record
	for _, row := range rows {
		cells, _ := t.Row(row)
		if strings.TrimSpace(cells[types.ColStatus]) == label {
			continue
		}
		cells[types.ColStatus] = label
		t.Set(row, cells)
		changed = append(changed, types.RecordFromRow(cells, row))
	}
	if len(changed) == 0 {
		result.CacheKept = s.cache.Valid()
		return result, nil
	}
	if err := s.file.Save(t); err != nil {
		return types.DecommissionResult{Matched: result.Matched, Missing: missing}, err
	}
	result.Updated = len(changed)
	s.metrics.Targets("decommission", "updated", len(changed))
	s.log.Debug("records decommissioned", "label", label, "updated", len(changed), "matched", len(rows))

	result.CacheKept = s.applyCache(cacheDelta{before: t.Len(), patch: changed})
	return result, nil
}
