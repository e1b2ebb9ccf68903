package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func TestParsePayloadRoundTrip(t *testing.T) {
	r := types.Record{
		Name:       "Proyector",
		Serial:     "PROY-AUD-SAL-TIP-001",
		Category:   "Audiovisual",
		Location:   "Sala 2",
		Supplier:   "VisualTech",
		IntakeDate: "2025-07-05",
		Quantity:   types.NewQuantity(1),
		Status:     "Operativo",
	}
	payload, err := FullPayload(r, Meta{Version: SchemaVersion, SavedAt: "2025-07-05T00:00:00Z", ID: "x"})
	require.NoError(t, err)

	s := ParsePayload(payload)
	assert.Equal(t, r.Serial, s.Serial)
	assert.Equal(t, r.Name, s.Name)
	assert.Equal(t, r.Category, s.Category)
	assert.Equal(t, r.Location, s.Location)
	assert.Equal(t, r.Supplier, s.Supplier)
	assert.Equal(t, r.IntakeDate, s.IntakeDate)
	require.NotNil(t, s.Meta)
	assert.Equal(t, SchemaVersion, s.Meta.Version)
	assert.Equal(t, "Operativo", s.Extras["status"])
	assert.Equal(t, "1", s.Extras["quantity"])
	assert.NotContains(t, s.Extras, "_meta")
}

func TestParsePayloadBareSerial(t *testing.T) {
	s := ParsePayload("  LOC-OFI-COM-250910-01 \n")
	assert.Equal(t, "LOC-OFI-COM-250910-01", s.Serial)
	assert.Nil(t, s.Meta)
	assert.Empty(t, s.Extras)
}

func TestParsePayloadNonObjectJSON(t *testing.T) {
	assert.Equal(t, "[1,2]", ParsePayload("[1,2]").Serial)
	assert.Equal(t, "null", ParsePayload("null").Serial)
}
