package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func TestMapMissingFields(t *testing.T) {
	r := Map(map[string]any{"name": "  Router  "})

	assert.Equal(t, "Router", r.Name)
	assert.Equal(t, types.NewQuantity(types.DefaultQuantity), r.Quantity)
	for i, cell := range r.Row() {
		if i == types.ColName || i == types.ColQuantity {
			continue
		}
		assert.Empty(t, cell, "field %s should default to empty", types.Fields[i])
	}
}

func TestMapAcceptsHeaderLabelsAndKeys(t *testing.T) {
	r := Map(map[string]any{
		"Subsidy Program":   "sep",
		"education-level":   "basica",
		"RESPONSIBLE_PARTY": "Ana",
		"unknown":           "ignored",
	})
	assert.Equal(t, "SEP", r.SubsidyProgram)
	assert.Equal(t, "Básica", r.EducationLevel)
	assert.Equal(t, "Ana", r.ResponsibleParty)
}

func TestMapQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want types.Quantity
	}{
		{"int", 2, types.NewQuantity(2)},
		{"integral float", 4.0, types.NewQuantity(4)},
		{"numeric string", " 7 ", types.NewQuantity(7)},
		{"float string", "3.0", types.NewQuantity(3)},
		{"json number", json.Number("5"), types.NewQuantity(5)},
		{"nil falls back to default", nil, types.NewQuantity(types.DefaultQuantity)},
		{"non-numeric is empty", "many", types.EmptyQuantity()},
		{"fraction is empty", 2.5, types.EmptyQuantity()},
		{"negative is empty", -3, types.EmptyQuantity()},
		{"NaN is empty", math.NaN(), types.EmptyQuantity()},
		{"empty string is empty", "", types.EmptyQuantity()},
		{"stored text is kept", types.Quantity{Set: true, Raw: "2.5"}, types.Quantity{Set: true, Raw: "2.5"}},
		{"missing typed quantity falls back to default", types.Quantity{}, types.NewQuantity(types.DefaultQuantity)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Map(map[string]any{"quantity": tt.in})
			assert.Equal(t, tt.want, r.Quantity)
		})
	}
}

func TestStringify(t *testing.T) {
	ts := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-09-10T12:00:00Z", Stringify(ts))
	assert.Equal(t, "", Stringify(time.Time{}))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "", Stringify(math.Inf(1)))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "x", Stringify(" x "))
}

func TestVocabularies(t *testing.T) {
	tests := []struct {
		vocab *Vocabulary
		in    string
		want  string
	}{
		{Types, "tangible", "Tangible"},
		{Types, "FUNGIBLE ", "Fungible"},
		{Types, "Consumible", "Consumible"},
		{SubsidyPrograms, "pro-retencion", "Pro-Retención"},
		{SubsidyPrograms, "Mantención", "Mantenimiento"},
		{EducationLevels, "TÉCNICO-PROFESIONAL", "Técnico-Profesional"},
		{EducationLevels, "media", "Media"},
		{EducationLevels, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.vocab.Map(tt.in))
		})
	}
	assert.Equal(t, []string{"Tangible", "Fungible"}, Types.Values())
}

func TestTaxID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456785", "12.345.678-5"},
		{"12.345.678-5", "12.345.678-5"},
		{" 10000013k ", "10.000.013-K"},
		{"76.543.210-3", "76.543.210-3"},
		{"76.543.210-5", "76.543.210-5"},
		{"US-EIN 12-3456789", "US-EIN 12-3456789"},
		{"5", "5"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TaxID(tt.in))
		})
	}
}

func TestCheckDigit(t *testing.T) {
	assert.Equal(t, "5", CheckDigit("12345678"))
	assert.Equal(t, "0", CheckDigit("10000004"))
	assert.Equal(t, "K", CheckDigit("10000013"))
	assert.Equal(t, "", CheckDigit(""))
}

func TestRecordNormalizesTypedInput(t *testing.T) {
	in := types.Record{
		Name:      " Chair ",
		Serial:    " S-1 ",
		Type:      "fungible",
		TaxID:     "123456785",
		Quantity:  types.NewQuantity(3),
		RowNumber: 4,
	}
	got := Record(in)
	require.Equal(t, "Chair", got.Name)
	assert.Equal(t, "S-1", got.Serial)
	assert.Equal(t, "Fungible", got.Type)
	assert.Equal(t, "12.345.678-5", got.TaxID)
	assert.Equal(t, types.NewQuantity(3), got.Quantity)
	assert.Equal(t, 4, got.RowNumber)
}

func TestRecordDefaultsMissingQuantity(t *testing.T) {
	assert.Equal(t, types.NewQuantity(types.DefaultQuantity), Record(types.Record{Name: "Router"}).Quantity)
	assert.Equal(t, types.EmptyQuantity(), Record(types.Record{Name: "Router", Quantity: types.EmptyQuantity()}).Quantity)
	assert.Equal(t, types.NewQuantity(0), Record(types.Record{Name: "Router", Quantity: types.NewQuantity(0)}).Quantity)
	assert.Equal(t, types.NewQuantity(types.DefaultQuantity), Map(map[string]any{"name": "Router"}).Quantity)
}
