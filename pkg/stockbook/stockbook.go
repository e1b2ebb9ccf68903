// Package stockbook provides the public API for opening an inventory store.
// This package exposes the factory function while keeping the engine,
// cache and file accessor internal.
package stockbook

import (
	"log/slog"

	"github.com/mesh-intelligence/stockbook/internal/inventory"
	"github.com/mesh-intelligence/stockbook/internal/metrics"
	"github.com/mesh-intelligence/stockbook/internal/qrcode"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Version is the module version reported by the CLI.
const Version = "0.3.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/stockbook"

// Open opens the store at cfg.StorePath with a QR encoder attached, so
// Create returns a scannable artifact. logger may be nil.
//
// Example:
//
//	store, err := stockbook.Open(types.Config{StorePath: "inventory.csv"}, nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func Open(cfg types.Config, logger *slog.Logger) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := metrics.New()
	enc := qrcode.New(qrcode.WithLogger(logger), qrcode.WithMetrics(m))
	s, err := inventory.Open(cfg.StorePath,
		inventory.WithEncoder(enc),
		inventory.WithMetrics(m),
		inventory.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
