// Config loading for the grip CLI.
// Implements: prd007-configuration-directories (R1.4, R1.5, R1.6).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys per prd007 R1.5.
	cfgKeyDataDir        = "data_dir"
	cfgKeyStressHandlers = "stress.handlers"
	cfgKeyStressWorkers  = "stress.workers"
	cfgKeyStressOps      = "stress.ops"
)

// Built-in stress defaults, overridable by config.yaml and flags.
const (
	defaultStressHandlers = 64
	defaultStressWorkers  = 4
	defaultStressOps      = 10000
)

// stressDefaults holds the effective stress parameters after config load.
// Flags override these per command.
var stressDefaults struct {
	handlers int
	workers  int
	ops      int
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# grip CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Stress run defaults
stress:
  handlers: 64
  workers: 4
  ops: 10000
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyStressHandlers, defaultStressHandlers)
	v.SetDefault(cfgKeyStressWorkers, defaultStressWorkers)
	v.SetDefault(cfgKeyStressOps, defaultStressOps)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
