// Package paths resolves configuration and data directory locations for
// the grip CLI.
// Implements: prd007-configuration-directories (R1, R2).
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative data directory used when no override is active.
const DefaultDataDirName = ".handrail"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "HANDRAIL_CONFIG_DIR"
	EnvDataDir   = "HANDRAIL_DATA_DIR"
)

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/handrail (fallback ~/.config/handrail)
// macOS:   ~/Library/Application Support/handrail
// Windows: %APPDATA%/handrail
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "handrail"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "handrail"), nil
	}

	// macOS and Windows: os.UserConfigDir returns
	// ~/Library/Application Support and %APPDATA% respectively.
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "handrail"), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > HANDRAIL_CONFIG_DIR env > DefaultConfigDir().
// Relative overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config.yaml value > HANDRAIL_DATA_DIR env > the
// CWD-relative default $(CWD)/.handrail.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
