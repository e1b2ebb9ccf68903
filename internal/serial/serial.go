// Package serial derives collision-free serial identifiers for new records.
//
// A derived serial is NAME-CAT-LOC[-TYPE]-NNN: fixed-width segments built
// from the record's name, category, location and type, followed by a
// numeric suffix that is always present. No counter persists between calls;
// uniqueness comes from the caller's set of existing serials, which must be
// updated with each generated value before the next call.
package serial

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Segment widths and fallback words.
const (
	nameWidth     = 4
	categoryWidth = 3
	locationWidth = 3
	typeWidth     = 3

	nameFallback     = "ITEM"
	categoryFallback = "CAT"
	locationFallback = "LOC"
	typeFallback     = "TIP"
)

// Segment uppercases value, strips every character outside A-Z and 0-9 and
// fits the result to width. Short values are padded with the fallback word
// repeated; an empty value is replaced by the fallback.
func Segment(value, fallback string, width int) string {
	clean := alnumUpper(value)
	fill := alnumUpper(fallback)
	if clean == "" {
		clean = fill
	}
	if len(clean) >= width {
		return clean[:width]
	}
	if fill == "" {
		fill = "X"
	}
	return (clean + strings.Repeat(fill, width))[:width]
}

// Base returns the deterministic serial base for r. The type segment is
// appended only when it differs from the category segment.
func Base(r types.Record) string {
	name := Segment(r.Name, nameFallback, nameWidth)
	category := Segment(r.Category, categoryFallback, categoryWidth)
	location := Segment(r.Location, locationFallback, locationWidth)
	typ := Segment(r.Type, typeFallback, typeWidth)

	segments := []string{name, category, location}
	if typ != category {
		segments = append(segments, typ)
	}
	return strings.Join(segments, "-")
}

// Generate returns a serial for r that is not in existing. A serial already
// on r is kept unless it collides, in which case -001, -002, ... is appended
// until it is unique. Without one, the base is derived and a suffix starting
// at -001 is always appended.
func Generate(r types.Record, existing *Set) string {
	if s := strings.TrimSpace(r.Serial); s != "" {
		if !existing.Has(s) {
			return s
		}
		return withSuffix(s, existing)
	}
	return withSuffix(Base(r), existing)
}

func withSuffix(base string, existing *Set) string {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%03d", base, n)
		if !existing.Has(candidate) {
			return candidate
		}
	}
}

func alnumUpper(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
