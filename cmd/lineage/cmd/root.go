package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brewersproject/lineage/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	inputPath string
	outputDir string
	noLock    bool
)

var rootCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Apprenticeship lineage reconstruction",
	Long: `Reconstructs master-to-apprentice lineages from a table of historical
apprenticeship indentures and exports them as Gephi node and edge tables.

A later record's master is recognized as an earlier apprentice when the birth
years are plausible, the names are nearly identical and the two birth-year
estimates overlap strongly enough.

Features:
  - Breadth-first lineage growth from every record (sweep)
  - Gephi nodes.csv / edges.csv per lineage of depth 2 or more
  - Summary report with one row per seed
  - Single-seed tree preview (trace) and scorer diagnostics (score)`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "lineage.yaml",
		"Path to configuration file (optional unless set explicitly)")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "",
		"Override input CSV path")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "",
		"Override output directory")
	rootCmd.PersistentFlags().BoolVar(&noLock, "no-lock", false,
		"Do not lock the output directory during a sweep")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Input:     inputPath,
		OutputDir: outputDir,
		NoLock:    noLock,
	}
}

// loadConfig loads the configuration file, applies CLI overrides and
// validates the result. A missing file falls back to defaults unless the
// --config flag was given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	required := false
	if f := cmd.Flags().Lookup("config"); f != nil {
		required = f.Changed
	}

	cfg, err := config.LoadOrDefault(GetConfigFile(), required)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
