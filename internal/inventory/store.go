// Package inventory is the CRUD engine over one tabular store file. The
// file is re-read for every mutation and written back whole; an in-memory
// SQLite snapshot serves reads until a mutation invalidates it.
package inventory

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mesh-intelligence/stockbook/internal/cache"
	"github.com/mesh-intelligence/stockbook/internal/metrics"
	"github.com/mesh-intelligence/stockbook/internal/tabular"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Store implements types.Store for one file path. Methods are serialized;
// separate processes writing the same file still race.
type Store struct {
	mu      sync.Mutex
	closed  bool
	file    *tabular.File
	cache   *cache.Snapshot
	encoder types.Encoder
	metrics *metrics.Collector
	log     *slog.Logger
}

var _ types.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithEncoder sets the collaborator that renders the scannable artifact
// returned by Create. Without one, Create returns an empty artifact.
func WithEncoder(e types.Encoder) Option {
	return func(s *Store) { s.encoder = e }
}

// WithMetrics records operations and cache events on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Store) { s.metrics = m }
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open opens the store file at path, creating it with the canonical header
// when absent. The cache starts empty and is filled by the first List.
func Open(path string, opts ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, types.ErrEmptyPath
	}
	f, err := tabular.Open(path)
	if err != nil {
		return nil, err
	}
	snap, err := cache.Open()
	if err != nil {
		return nil, err
	}
	s := &Store{
		file:  f,
		cache: snap,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("store opened", "path", path)
	return s, nil
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.file.Path()
}

// Close releases the cache. Further calls return types.ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.cache.Close()
}

// CacheValid reports whether reads are currently served from the snapshot.
func (s *Store) CacheValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.cache.Valid()
}

// load re-reads the file and indexes it.
func (s *Store) load() (*tabular.Table, *rowIndex, error) {
	t, err := s.file.Load()
	if err != nil {
		return nil, nil, err
	}
	return t, newRowIndex(t.Records()), nil
}

// cacheDelta is what a mutation did to the file, as far as the cache is
// concerned.
type cacheDelta struct {
	// before is the file's data row count prior to the mutation.
	before     int
	patch      []types.Record
	invalidate bool
	reason     string
}

// applyCache patches the snapshot with d.patch or invalidates it, and
// reports whether the snapshot is still valid.
func (s *Store) applyCache(d cacheDelta) bool {
	if !s.cache.Valid() {
		return false
	}
	if !d.invalidate {
		n, err := s.cache.Len()
		switch {
		case err != nil:
			d.reason = "counting cached rows failed"
		case n != d.before:
			d.reason = "cached row count differs from file"
		default:
			if err := s.cache.Put(d.patch...); err == nil {
				s.metrics.Cache(metrics.CachePatch)
				return true
			}
			d.reason = "patch failed"
		}
	}
	s.invalidate(d.reason)
	return false
}

func (s *Store) invalidate(reason string) {
	if err := s.cache.Invalidate(); err != nil {
		s.log.Warn("clearing cache", "path", s.Path(), "error", err)
	}
	s.metrics.Cache(metrics.CacheInvalidate)
	s.log.Debug("cache invalidated", "path", s.Path(), "reason", reason)
}

func (s *Store) checkOpen() error {
	if s.closed {
		return fmt.Errorf("%s: %w", s.Path(), types.ErrStoreClosed)
	}
	return nil
}
