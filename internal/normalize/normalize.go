// Package normalize coerces arbitrary input into the canonical record shape.
// Storage favors permissiveness: malformed values are coerced or passed
// through, never rejected.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// keyIndex maps lowercase field keys and header labels to column indexes.
var keyIndex = func() map[string]int {
	m := make(map[string]int, 2*types.NumColumns)
	for i := range types.Fields {
		m[strings.ToLower(types.Fields[i])] = i
		m[strings.ToLower(types.Header[i])] = i
		m[strings.ReplaceAll(strings.ToLower(types.Fields[i]), "_", "-")] = i
	}
	return m
}()

// Map normalizes a loosely typed record. Keys may be field keys
// ("subsidy_program") or header labels ("Subsidy Program") in any case;
// unknown keys are ignored.
func Map(raw map[string]any) types.Record {
	row := make([]string, types.NumColumns)
	var quantity types.Quantity

	for k, v := range raw {
		i, ok := keyIndex[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			continue
		}
		if i == types.ColQuantity {
			quantity = Quantity(v)
			continue
		}
		row[i] = Stringify(v)
	}

	r := types.RecordFromRow(row, 0)
	r.Quantity = quantity
	return Record(r)
}

// Record normalizes a typed record: trims every string field, maps the
// enumerated fields onto their vocabularies and formats the tax id. A
// missing quantity becomes DefaultQuantity; any other quantity and the
// row-number are kept as given.
func Record(r types.Record) types.Record {
	if r.Quantity.Missing() {
		r.Quantity = types.NewQuantity(types.DefaultQuantity)
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Serial = Serial(r.Serial)
	r.Category = strings.TrimSpace(r.Category)
	r.Type = Types.Map(r.Type)
	r.SubsidyProgram = SubsidyPrograms.Map(r.SubsidyProgram)
	r.EducationLevel = EducationLevels.Map(r.EducationLevel)
	r.IntakeDate = strings.TrimSpace(r.IntakeDate)
	r.Supplier = strings.TrimSpace(r.Supplier)
	r.TaxID = TaxID(r.TaxID)
	r.InvoiceNumber = strings.TrimSpace(r.InvoiceNumber)
	r.Status = strings.TrimSpace(r.Status)
	r.ResponsibleParty = strings.TrimSpace(r.ResponsibleParty)
	r.Location = strings.TrimSpace(r.Location)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Image = strings.TrimSpace(r.Image)
	return r
}

// Serial normalizes a serial value for storage and comparison.
func Serial(s string) string {
	return strings.TrimSpace(s)
}

// Stringify converts a raw value into a trimmed cell string. Times become
// RFC 3339, non-finite floats become empty.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return Stringify(float64(t))
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Quantity parses a raw quantity. Integers and integral floats are kept;
// anything else, including negative numbers, yields an empty quantity.
func Quantity(v any) types.Quantity {
	switch t := v.(type) {
	case nil:
		return types.NewQuantity(types.DefaultQuantity)
	case types.Quantity:
		return t
	case int:
		return types.NewQuantity(t)
	case int64:
		return types.NewQuantity(int(t))
	case int32:
		return types.NewQuantity(int(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return types.EmptyQuantity()
		}
		return types.NewQuantity(int(t))
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return types.EmptyQuantity()
		}
		return types.NewQuantity(int(n))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return types.EmptyQuantity()
		}
		if q, ok := types.ParseQuantity(s); ok {
			return q
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Quantity(f)
		}
		return types.EmptyQuantity()
	default:
		return types.EmptyQuantity()
	}
}
