package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockbook/internal/paths"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyStorePath         = "store_path"
	cfgKeyDecommissionLabel = "decommission_label"
	cfgKeyLogLevel          = "log_level"
	cfgKeyLogFormat         = "log_format"
	cfgKeyMetricsFile       = "metrics_file"

	envPrefix = "STOCKBOOK"
)

// defaultConfig is written to config.yaml on first run.
var defaultConfig = types.Config{
	DecommissionLabel: types.DefaultDecommissionLabel,
	LogLevel:          "warn",
	LogFormat:         "text",
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. STOCKBOOK_<KEY> environment
// variables override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if _, err := writeConfigIfMissing(filepath.Join(configDir, paths.ConfigFileName)); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDecommissionLabel, defaultConfig.DecommissionLabel)
	v.SetDefault(cfgKeyLogLevel, defaultConfig.LogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultConfig.LogFormat)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyStorePath, cfgKeyDecommissionLabel, cfgKeyLogLevel, cfgKeyLogFormat, cfgKeyMetricsFile} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether the file was written.
func writeConfigIfMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# stockbook configuration\n# store_path defaults to <data dir>/" + paths.StoreFileName + "\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}

func configFromViper(v *viper.Viper, storePath string) types.Config {
	return types.Config{
		StorePath:         storePath,
		DecommissionLabel: v.GetString(cfgKeyDecommissionLabel),
		LogLevel:          v.GetString(cfgKeyLogLevel),
		LogFormat:         v.GetString(cfgKeyLogFormat),
		MetricsFile:       v.GetString(cfgKeyMetricsFile),
	}
}
