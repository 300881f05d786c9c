package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lineage.yaml")

	configContent := `
input:
  path: data/brewers.csv

output:
  dir: networks
  report_file: report.csv
  lock: false

sweep:
  progress_interval: 25

logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Input.Path != "data/brewers.csv" {
		t.Errorf("expected input path 'data/brewers.csv', got %s", cfg.Input.Path)
	}
	if cfg.Output.Dir != "networks" {
		t.Errorf("expected output dir 'networks', got %s", cfg.Output.Dir)
	}
	if cfg.Output.ReportFile != "report.csv" {
		t.Errorf("expected report file 'report.csv', got %s", cfg.Output.ReportFile)
	}
	if cfg.Output.Lock {
		t.Error("expected lock disabled")
	}
	if cfg.Sweep.ProgressInterval != 25 {
		t.Errorf("expected progress_interval 25, got %d", cfg.Sweep.ProgressInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}

	// Defaults survive for fields the file leaves out.
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("expected default max_backups 3, got %d", cfg.Logging.MaxBackups)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(configPath, []byte("input:\n  path: rows.csv\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Input.Path != "rows.csv" {
		t.Errorf("expected input path 'rows.csv', got %s", cfg.Input.Path)
	}
	if cfg.Output.Dir != "everyone" {
		t.Errorf("expected default output dir, got %s", cfg.Output.Dir)
	}
	if !cfg.Output.Lock {
		t.Error("expected default lock enabled")
	}
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("LINEAGE_DATA", "/srv/brewers")

	configPath := filepath.Join(t.TempDir(), "env.yaml")
	content := "input:\n  path: ${LINEAGE_DATA}/all_records.csv\noutput:\n  dir: $LINEAGE_DATA/everyone\n  report_file: ${UNSET_LINEAGE_VAR}.csv\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Input.Path != "/srv/brewers/all_records.csv" {
		t.Errorf("unexpected input path %s", cfg.Input.Path)
	}
	if cfg.Output.Dir != "/srv/brewers/everyone" {
		t.Errorf("unexpected output dir %s", cfg.Output.Dir)
	}
	if cfg.Output.ReportFile != "${UNSET_LINEAGE_VAR}.csv" {
		t.Errorf("unknown variables should be left as-is, got %s", cfg.Output.ReportFile)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadOrDefault(missing, false)
	if err != nil {
		t.Fatalf("expected defaults for optional missing file, got %v", err)
	}
	if cfg.Output.Dir != "everyone" {
		t.Errorf("expected default output dir, got %s", cfg.Output.Dir)
	}

	if _, err := LoadOrDefault(missing, true); err == nil {
		t.Error("expected error for required missing file")
	}
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("input.path", "viper.csv")
	v.Set("sweep.progress_interval", 0)

	cfg, err := LoadFromViper(v)
	if err != nil {
		t.Fatalf("LoadFromViper failed: %v", err)
	}
	if cfg.Input.Path != "viper.csv" {
		t.Errorf("expected input path 'viper.csv', got %s", cfg.Input.Path)
	}
	if cfg.Sweep.ProgressInterval != 0 {
		t.Errorf("expected progress_interval 0, got %d", cfg.Sweep.ProgressInterval)
	}
}
