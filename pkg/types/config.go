package types

import (
	"errors"
	"strings"
)

// Config holds the settings used to open a store.
type Config struct {
	StorePath         string `json:"store_path" yaml:"store_path"`
	DecommissionLabel string `json:"decommission_label" yaml:"decommission_label"`
	LogLevel          string `json:"log_level" yaml:"log_level"`
	LogFormat         string `json:"log_format" yaml:"log_format"`
	MetricsFile       string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}

// Config validation errors.
var (
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)

var knownLogLevels = map[string]bool{
	"":        true,
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var knownLogFormats = map[string]bool{
	"":     true,
	"text": true,
	"json": true,
}

// Validate checks that the Config is well-formed and returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StorePath) == "" {
		return ErrEmptyPath
	}
	if !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	if !knownLogFormats[strings.ToLower(c.LogFormat)] {
		return ErrLogFormatUnknown
	}
	return nil
}

// Label returns the configured decommission label or the default.
func (c Config) Label() string {
	if l := strings.TrimSpace(c.DecommissionLabel); l != "" {
		return l
	}
	return DefaultDecommissionLabel
}
