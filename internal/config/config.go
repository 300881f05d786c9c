// Package config provides configuration structures and loading for the lineage tool.
package config

import "path/filepath"

// Config represents the complete application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Sweep   SweepConfig   `yaml:"sweep" mapstructure:"sweep"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// InputConfig locates the indenture table.
type InputConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // CSV file with one row per indenture
}

// OutputConfig controls where lineage graphs and the summary report are written.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`                 // root of per-seed directories
	ReportFile string `yaml:"report_file" mapstructure:"report_file"` // summary CSV, relative to Dir unless absolute
	Lock       bool   `yaml:"lock" mapstructure:"lock"`               // hold a file lock on Dir during a sweep
}

// SweepConfig controls the everyone sweep.
type SweepConfig struct {
	ProgressInterval int `yaml:"progress_interval" mapstructure:"progress_interval"` // seeds between progress notices, 0 disables
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // debug, info, warn, error
	Format     string `yaml:"format" mapstructure:"format"`           // json or text
	Output     string `yaml:"output" mapstructure:"output"`           // stdout, stderr, or file path
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"` // rotate file output at this size
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // rotated files to keep
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path: "csv/all_records.csv",
		},
		Output: OutputConfig{
			Dir:        "everyone",
			ReportFile: "apprentice_report.csv",
			Lock:       true,
		},
		Sweep: SweepConfig{
			ProgressInterval: 100,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
}

// ReportPath returns the summary report location.
func (o OutputConfig) ReportPath() string {
	if filepath.IsAbs(o.ReportFile) {
		return o.ReportFile
	}
	return filepath.Join(o.Dir, o.ReportFile)
}
