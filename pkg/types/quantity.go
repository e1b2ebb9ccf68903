package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultQuantity is the quantity given to records that omit one.
const DefaultQuantity = 1

// Quantity is a non-negative integer count that may be empty. The zero
// value is an omitted quantity, which normalization replaces with
// DefaultQuantity. A cell holding text other than a non-negative integer
// reads as empty and keeps that text in Raw, so rewriting the row leaves
// the cell as it was.
type Quantity struct {
	Value int
	Valid bool
	Set   bool
	Raw   string
}

// NewQuantity returns a valid quantity. Negative values yield an empty one.
func NewQuantity(n int) Quantity {
	if n < 0 {
		return EmptyQuantity()
	}
	return Quantity{Value: n, Valid: true, Set: true}
}

// EmptyQuantity returns an explicitly empty quantity.
func EmptyQuantity() Quantity {
	return Quantity{Set: true}
}

// Missing reports whether the quantity was never given.
func (q Quantity) Missing() bool {
	return !q.Set
}

// ParseQuantity parses a cell value. It reports false when s is not a
// non-negative integer; the returned quantity is then empty and carries s
// in Raw unless s is blank.
func ParseQuantity(s string) (Quantity, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return EmptyQuantity(), false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return Quantity{Set: true, Raw: s}, false
	}
	return NewQuantity(n), true
}

// String returns the cell representation: digits, or the raw text when
// empty.
func (q Quantity) String() string {
	if !q.Valid {
		return q.Raw
	}
	return strconv.Itoa(q.Value)
}

// Units returns the count used for aggregation. An empty quantity counts as
// a single unit since the record itself exists.
func (q Quantity) Units() int {
	if !q.Valid {
		return 1
	}
	return q.Value
}

// MarshalJSON encodes a valid quantity as a number and an empty one as
// its raw text.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return json.Marshal(q.Raw)
	}
	return []byte(strconv.Itoa(q.Value)), nil
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else decodes
// to an empty quantity rather than failing; null leaves q unchanged.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
	case float64:
		if t >= 0 && t == float64(int(t)) {
			*q = NewQuantity(int(t))
		} else {
			*q = Quantity{Set: true, Raw: string(data)}
		}
	case string:
		*q, _ = ParseQuantity(t)
	default:
		*q = EmptyQuantity()
	}
	return nil
}
