// Package paths resolves configuration, data and store file locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the directory name used under the platform config and data
// roots.
const AppDirName = "stockbook"

// File names inside the resolved directories.
const (
	ConfigFileName      = "config.yaml"
	StoreFileName       = "inventory.csv"
	LastDeletedFileName = "last-deleted.json"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "STOCKBOOK_CONFIG_DIR"
	EnvDataDir   = "STOCKBOOK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/stockbook (fallback ~/.config/stockbook)
// macOS:   ~/Library/Application Support/stockbook
// Windows: %APPDATA%/stockbook
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userConfigSubdir()
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/stockbook (fallback ~/.local/share/stockbook)
// macOS:   ~/Library/Application Support/stockbook
// Windows: %APPDATA%/stockbook
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return userConfigSubdir()
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppDirName), nil
}

func userConfigSubdir() (string, error) {
	// os.UserConfigDir is ~/Library/Application Support on macOS and
	// %APPDATA% on Windows.
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > STOCKBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > STOCKBOOK_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

// ResolveStorePath returns the store file following the precedence chain:
// flag > config.yaml store_path > <dataDir>/inventory.csv.
func ResolveStorePath(flag, configValue, dataDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	return filepath.Join(dataDir, StoreFileName), nil
}
