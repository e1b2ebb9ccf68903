package serial

import "strings"

// Set is the collection of serials already present in a store. Values are
// trimmed on insert and lookup; blank serials are never members.
type Set struct {
	m map[string]struct{}
}

// NewSet returns a set holding serials.
func NewSet(serials ...string) *Set {
	s := &Set{m: make(map[string]struct{}, len(serials))}
	for _, v := range serials {
		s.Add(v)
	}
	return s
}

// Add inserts serial.
func (s *Set) Add(serial string) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return
	}
	s.m[serial] = struct{}{}
}

// Has reports whether serial is present. A nil set is empty.
func (s *Set) Has(serial string) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[strings.TrimSpace(serial)]
	return ok
}

// Len returns the number of serials.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}
