// Package qrcode encodes records into scannable QR images and parses
// scanned payloads back.
//
// The payload is the record as JSON, with the image reference replaced by a
// presence marker, plus a _meta envelope. Encoding never fails from the
// caller's point of view: a failed full payload is retried with only the
// serial and name, and a second failure yields a placeholder image.
package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goqr "github.com/skip2/go-qrcode"

	"github.com/mesh-intelligence/stockbook/internal/metrics"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// SchemaVersion is written to every payload's _meta.v.
const SchemaVersion = 1

// ImageMarker replaces a non-empty image reference in payloads.
const ImageMarker = "attached"

// DefaultSize is the rendered QR image edge in pixels.
const DefaultSize = 256

// placeholderPNG is a transparent 1x1 PNG.
var placeholderPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR4nGNgYAAAAAMAASsJTYQAAAAASUVORK5CYII=")

// Placeholder returns the artifact used when encoding fails.
func Placeholder() types.Artifact {
	return types.Artifact{PNG: append([]byte(nil), placeholderPNG...), Placeholder: true}
}

// Meta is the payload envelope.
type Meta struct {
	Version int    `json:"v"`
	SavedAt string `json:"saved_at"`
	ID      string `json:"id"`
}

type fullPayload struct {
	types.Record
	Meta Meta `json:"_meta"`
}

type reducedPayload struct {
	Serial string `json:"serial"`
	Name   string `json:"name"`
	Meta   Meta   `json:"_meta"`
}

// Encoder renders records as QR PNG images.
type Encoder struct {
	size    int
	level   goqr.RecoveryLevel
	now     func() time.Time
	render  func(content string, level goqr.RecoveryLevel, size int) ([]byte, error)
	log     *slog.Logger
	metrics *metrics.Collector
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithSize sets the image edge in pixels.
func WithSize(px int) Option {
	return func(e *Encoder) {
		if px > 0 {
			e.size = px
		}
	}
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Encoder) { e.log = l }
}

// WithMetrics records the stage each encode finishes at.
func WithMetrics(m *metrics.Collector) Option {
	return func(e *Encoder) { e.metrics = m }
}

// WithClock overrides the time source for _meta.saved_at.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) { e.now = now }
}

// WithRenderer replaces the QR renderer.
func WithRenderer(render func(content string, level goqr.RecoveryLevel, size int) ([]byte, error)) Option {
	return func(e *Encoder) { e.render = render }
}

// New returns an Encoder with medium error correction.
func New(opts ...Option) *Encoder {
	e := &Encoder{
		size:   DefaultSize,
		level:  goqr.Medium,
		now:    time.Now,
		render: goqr.Encode,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode implements types.Encoder.
func (e *Encoder) Encode(r types.Record) types.Artifact {
	meta := e.meta()

	full, err := FullPayload(r, meta)
	if err == nil {
		var png []byte
		if png, err = e.render(full, e.level, e.size); err == nil {
			e.metrics.Encode("full")
			return types.Artifact{PNG: png, Payload: full}
		}
	}
	e.log.Warn("qr encode failed, retrying with reduced payload", "serial", r.Serial, "error", err)

	reduced, err := ReducedPayload(r, meta)
	if err == nil {
		var png []byte
		if png, err = e.render(reduced, e.level, e.size); err == nil {
			e.metrics.Encode("reduced")
			return types.Artifact{PNG: png, Payload: reduced}
		}
	}
	e.log.Warn("qr reduced encode failed, using placeholder", "serial", r.Serial, "error", err)
	e.metrics.Encode("placeholder")
	return Placeholder()
}

func (e *Encoder) meta() Meta {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Meta{
		Version: SchemaVersion,
		SavedAt: e.now().UTC().Format(time.RFC3339),
		ID:      id.String(),
	}
}

// Redact returns the copy of r that goes into a payload: the image
// reference becomes ImageMarker when present and the row-number is dropped.
func Redact(r types.Record) types.Record {
	if r.Image != "" {
		r.Image = ImageMarker
	}
	r.RowNumber = 0
	return r
}

// FullPayload returns the JSON payload carrying every redacted field.
func FullPayload(r types.Record, meta Meta) (string, error) {
	b, err := json.Marshal(fullPayload{Record: Redact(r), Meta: meta})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(b), nil
}

// ReducedPayload returns the fallback payload with only serial and name.
func ReducedPayload(r types.Record, meta Meta) (string, error) {
	b, err := json.Marshal(reducedPayload{Serial: r.Serial, Name: r.Name, Meta: meta})
	if err != nil {
		return "", fmt.Errorf("marshal reduced payload: %w", err)
	}
	return string(b), nil
}
