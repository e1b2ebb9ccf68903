// Package report builds the location summary: records grouped by location
// with quantities summed per item, laid out on paginated pages with an
// optional grid of item images.
package report

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/stockbook/internal/pdfdoc"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Placeholder names for blank grouping values.
const (
	NoLocation = "(no location)"
	NoName     = "(unnamed)"
)

// ImageLoader resolves a record's image reference.
type ImageLoader func(ref string) (pdfdoc.Image, bool)

// Line is one aggregated item within a location.
type Line struct {
	Name     string
	Quantity int
	Image    pdfdoc.Image
	HasImage bool
}

// Section is one location.
type Section struct {
	Location string
	Lines    []Line
	Units    int
}

// Summary is the grouped record set.
type Summary struct {
	Sections []Section
	Records  int
	Lines    int
	Units    int
}

type group struct {
	section Section
	lines   map[string]int
}

// Summarize groups records by trimmed location, compared without regard to
// case, and sums quantities per trimmed item name. A record without a valid
// quantity counts as one unit. Each group keeps the first spelling seen;
// locations and items are sorted alphabetically. The first obtainable image
// of an item becomes its line image.
func Summarize(records []types.Record, load ImageLoader) Summary {
	var order []string
	groups := make(map[string]*group)

	for _, r := range records {
		loc := strings.TrimSpace(r.Location)
		if loc == "" {
			loc = NoLocation
		}
		key := strings.ToLower(loc)
		g, ok := groups[key]
		if !ok {
			g = &group{section: Section{Location: loc}, lines: make(map[string]int)}
			groups[key] = g
			order = append(order, key)
		}

		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = NoName
		}
		nameKey := strings.ToLower(name)
		i, ok := g.lines[nameKey]
		if !ok {
			i = len(g.section.Lines)
			g.lines[nameKey] = i
			g.section.Lines = append(g.section.Lines, Line{Name: name})
		}
		units := r.Quantity.Units()
		line := &g.section.Lines[i]
		line.Quantity += units
		g.section.Units += units
		if !line.HasImage && load != nil && strings.TrimSpace(r.Image) != "" {
			line.Image, line.HasImage = load(r.Image)
		}
	}

	col := collate.New(language.Spanish, collate.IgnoreCase)
	sum := Summary{Records: len(records)}
	for _, key := range order {
		s := groups[key].section
		sortBy(col, s.Lines, func(l Line) string { return l.Name })
		sum.Sections = append(sum.Sections, s)
		sum.Lines += len(s.Lines)
		sum.Units += s.Units
	}
	sortBy(col, sum.Sections, func(s Section) string { return s.Location })
	return sum
}

// HasImages reports whether any line has an image.
func (s Summary) HasImages() bool {
	for _, sec := range s.Sections {
		for _, l := range sec.Lines {
			if l.HasImage {
				return true
			}
		}
	}
	return false
}

// sortBy orders items by collated key, keeping equal keys in input order.
func sortBy[T any](col *collate.Collator, items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(key(items[i]), key(items[j])) < 0
	})
}
