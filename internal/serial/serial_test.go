package serial

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		width    int
		want     string
	}{
		{"truncates", "Router Cisco", "ITEM", 4, "ROUT"},
		{"strips punctuation and accents", "Sala-ñ 2", "LOC", 3, "SAL"},
		{"empty uses fallback", "", "CAT", 3, "CAT"},
		{"short value padded with fallback", "TV", "ITEM", 4, "TVIT"},
		{"no fallback pads with X", "A", "", 3, "AXX"},
		{"only symbols uses fallback", "!!!", "LOC", 3, "LOC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.value, tt.fallback, tt.width))
		})
	}
}

func TestBase(t *testing.T) {
	assert.Equal(t, "ROUT-CAT-LOC-TIP", Base(types.Record{Name: "Router"}))
	assert.Equal(t, "NOTE-COM-OFI-TAN", Base(types.Record{
		Name: "Notebook", Category: "Computadores", Location: "Oficina", Type: "Tangible",
	}))
	assert.Equal(t, "SILL-FUN-BOD", Base(types.Record{
		Name: "Silla", Category: "Fungible", Location: "Bodega", Type: "Fungible",
	}), "type segment is dropped when it repeats the category segment")
}

func TestGenerateForcesSuffix(t *testing.T) {
	got := Generate(types.Record{Name: "Router"}, NewSet())
	assert.Equal(t, "ROUT-CAT-LOC-TIP-001", got)
}

func TestGenerateKeepsSuppliedSerial(t *testing.T) {
	existing := NewSet("ABC")
	assert.Equal(t, "XYZ", Generate(types.Record{Serial: " XYZ "}, existing))
	assert.Equal(t, "ABC-001", Generate(types.Record{Serial: "ABC"}, existing))

	existing.Add("ABC-001")
	assert.Equal(t, "ABC-002", Generate(types.Record{Serial: "ABC"}, existing))
}

func TestGenerateBatchIsDistinctAndIncreasing(t *testing.T) {
	existing := NewSet("ROUT-CAT-LOC-TIP-001")
	r := types.Record{Name: "Router"}

	var got []string
	for i := 0; i < 5; i++ {
		s := Generate(r, existing)
		require.False(t, existing.Has(s))
		existing.Add(s)
		got = append(got, s)
	}

	prev := 1
	for _, s := range got {
		n, err := strconv.Atoi(s[strings.LastIndex(s, "-")+1:])
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
	assert.Equal(t, "ROUT-CAT-LOC-TIP-002", got[0])
	assert.Equal(t, "ROUT-CAT-LOC-TIP-006", got[4])
}

func TestSet(t *testing.T) {
	s := NewSet(" a ", "", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has(""))

	var nilSet *Set
	assert.False(t, nilSet.Has("a"))
	assert.Equal(t, 0, nilSet.Len())
}
