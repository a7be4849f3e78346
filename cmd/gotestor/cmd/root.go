package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gotestor/internal/config"
	"github.com/dbsmedya/gotestor/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile    string
	logLevel   string
	logFormat  string
	maxColumns int
	skipVerify bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "gotestor",
	Short: "Typical testor enumeration for boolean matrices",
	Long: `A CLI tool that computes the typical testors of a boolean matrix:
the minimal column subsets that hit every row of its basic matrix.

Features:
  - Basic matrix reduction (duplicate and superrow removal)
  - YYC row-by-row frontier enumeration
  - BT branch-and-bound bit-vector enumeration
  - Cross-checking of both enumerators and result verification
  - Matrix combinators theta, phi and gamma with repeated application`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.Enable = false
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "testor.yaml",
		"Path to configuration file (built-in matrices work without one)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Enumeration overrides
	rootCmd.PersistentFlags().IntVar(&maxColumns, "max-columns", 0,
		"Override the widest basic matrix accepted for enumeration")

	// Safety overrides
	rootCmd.PersistentFlags().BoolVar(&skipVerify, "skip-verify", false,
		"Skip verification of enumerator results")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel   string
	LogFormat  string
	MaxColumns int
	SkipVerify bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		MaxColumns: maxColumns,
		SkipVerify: skipVerify,
	}
}

// loadConfig loads the configuration file, applies CLI overrides and
// validates the result. A missing file yields the defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.MaxColumns, overrides.SkipVerify)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
