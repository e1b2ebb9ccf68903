package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := New()

	c.Operation("create", nil)
	c.Operation("create", nil)
	c.Operation("delete", errors.New("disk full"))
	c.Targets("delete", "not_found", 3)
	c.Targets("delete", "not_found", 0)
	c.Cache(CacheHit)
	c.Encode("placeholder")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("delete", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.targets.WithLabelValues("delete", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cache.WithLabelValues(CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.encodes.WithLabelValues("placeholder")))
}

func TestNilCollectorDiscards(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.Operation("list", nil)
		c.Targets("delete", "applied", 1)
		c.Cache(CacheMiss)
		c.Encode("full")
	})
}

func TestWriteFile(t *testing.T) {
	c := New()
	c.Cache(CacheInvalidate)

	path := filepath.Join(t.TempDir(), "stockbook.prom")
	require.NoError(t, c.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stockbook_cache_events_total{event="invalidate"} 1`)
}
