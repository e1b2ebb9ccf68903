// Package cli implements the stockbook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/internal/inventory"
	"github.com/mesh-intelligence/stockbook/internal/logging"
	"github.com/mesh-intelligence/stockbook/internal/metrics"
	"github.com/mesh-intelligence/stockbook/internal/paths"
	"github.com/mesh-intelligence/stockbook/internal/qrcode"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// skipConfig marks commands that run without loading configuration.
const skipConfig = "skip-config"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	storePath string
	logLevel  string
	jsonMode  bool
}

// env is the state shared by the commands of one root command.
type env struct {
	flags   rootFlags
	dataDir string
	cfg     types.Config
	log     *slog.Logger
	metrics *metrics.Collector
}

// NewRootCmd creates the top-level "stockbook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	e := &env{log: logging.Discard()}
	root := &cobra.Command{
		Use:   "stockbook",
		Short: "A flat-file inventory record store",
		Long: "Stockbook keeps inventory records in a single CSV file, assigns serials,\n" +
			"and prints QR label sheets and location reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return e.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.flushMetrics()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.flags.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&e.flags.dataDir, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	pf.StringVar(&e.flags.storePath, "store", "", "store file (default: <data-dir>/"+paths.StoreFileName+")")
	pf.StringVar(&e.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&e.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(e),
		newAddCmd(e),
		newListCmd(e),
		newGetCmd(e),
		newUpdateCmd(e),
		newDeleteCmd(e),
		newRestoreCmd(e),
		newImportCmd(e),
		newDecommissionCmd(e),
		newLabelsCmd(e),
		newReportCmd(e),
		newSeedCmd(e),
		newScanCmd(e),
		newInfoCmd(e),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "stockbook:", err)
		os.Exit(exitCode(err))
	}
}

// setup loads config.yaml and resolves the store path, logger and metrics.
func (e *env) setup(stderr io.Writer) error {
	configDir, err := paths.ResolveConfigDir(e.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	e.dataDir, err = paths.ResolveDataDir(e.flags.dataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	storePath, err := paths.ResolveStorePath(e.flags.storePath, v.GetString(cfgKeyStorePath), e.dataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve store path: %w", err))
	}

	e.cfg = configFromViper(v, storePath)
	if e.flags.logLevel != "" {
		e.cfg.LogLevel = e.flags.logLevel
	}
	if err := e.cfg.Validate(); err != nil {
		return userError(fmt.Errorf("invalid configuration: %w", err))
	}
	e.log = logging.Setup(stderr, e.cfg.LogLevel, e.cfg.LogFormat)
	e.metrics = metrics.New()
	e.log.Debug("configuration loaded", "config_dir", configDir, "store", storePath)
	return nil
}

// open opens the configured store with a QR encoder attached. The caller
// must Close it.
func (e *env) open() (*inventory.Store, error) {
	enc := qrcode.New(qrcode.WithLogger(e.log), qrcode.WithMetrics(e.metrics))
	s, err := inventory.Open(e.cfg.StorePath,
		inventory.WithEncoder(enc),
		inventory.WithMetrics(e.metrics),
		inventory.WithLogger(e.log),
	)
	if err != nil {
		return nil, sysError(fmt.Errorf("open store: %w", err))
	}
	return s, nil
}

func (e *env) flushMetrics() error {
	if e.metrics == nil || e.cfg.MetricsFile == "" {
		return nil
	}
	if err := e.metrics.WriteFile(e.cfg.MetricsFile); err != nil {
		e.log.Warn("writing metrics", "file", e.cfg.MetricsFile, "error", err)
	}
	return nil
}

// exitError carries a process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error to a process exit code. Store I/O failures are
// system errors; anything else not already classified is a user error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, types.ErrIO) {
		return exitSysError
	}
	return exitUserError
}
