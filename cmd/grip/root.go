// Root command for the grip CLI.
// Implements: prd006-grip-cli (R1, R6); prd007-configuration-directories (R1, R2).
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/handrail/internal/paths"
	"github.com/mesh-intelligence/handrail/pkg/handrail"
)

// Exit codes per prd006-grip-cli R7.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagNoLedger  bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:     "grip",
	Short:   "grip is a workbench for the handrail defensive primitives",
	Version: handrail.Version,
	Long: `grip exercises the handrail primitives: it stresses the signal-safe
counter and the guarded resource, evaluates checked arithmetic from the
command line, and records every run in a local SQLite ledger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		stressDefaults.handlers = cfg.GetInt(cfgKeyStressHandlers)
		stressDefaults.workers = cfg.GetInt(cfgKeyStressWorkers)
		stressDefaults.ops = cfg.GetInt(cfgKeyStressOps)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.handrail)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoLedger, "no-ledger", false, "do not record this run in the ledger")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(stressCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runsCmd)
}

// resolveConfigDir returns the configuration directory following the
// prd007 precedence: --config-dir flag > HANDRAIL_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the prd007
// precedence: --data-dir flag > config.yaml data_dir > HANDRAIL_DATA_DIR
// env > default $(CWD)/.handrail.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
