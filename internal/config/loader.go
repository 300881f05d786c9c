package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// The format follows the file extension (YAML when there is none) and
// environment variables in path fields are substituted.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	if filepath.Ext(configPath) == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOrDefault behaves like Load, except that a missing file yields the
// defaults unless required is set.
func LoadOrDefault(configPath string, required bool) (*Config, error) {
	if !required {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			substituteEnvVars(cfg)
			return cfg, nil
		}
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)
	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns in path fields.
func substituteEnvVars(cfg *Config) {
	cfg.Input.Path = expandEnvVar(cfg.Input.Path)
	cfg.Output.Dir = expandEnvVar(cfg.Output.Dir)
	cfg.Output.ReportFile = expandEnvVar(cfg.Output.ReportFile)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
// Unknown variables are left untouched.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// Overrides holds CLI flag values that take precedence over the file.
// Zero values leave the configuration untouched.
type Overrides struct {
	LogLevel  string
	LogFormat string
	Input     string
	OutputDir string
	NoLock    bool
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Input != "" {
		c.Input.Path = o.Input
	}
	if o.OutputDir != "" {
		c.Output.Dir = o.OutputDir
	}
	if o.NoLock {
		c.Output.Lock = false
	}
}
