package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOrDefault loads configPath when it exists and returns DefaultConfig
// otherwise, so built-in matrices work without a config file.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
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
	if cfg.Matrices == nil {
		cfg.Matrices = map[string]MatrixConfig{}
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	// Matrix operands may be chosen per environment
	for name, mc := range cfg.Matrices {
		if mc.Combine != nil {
			combine := *mc.Combine
			combine.Left = expandEnvVar(combine.Left)
			combine.Right = expandEnvVar(combine.Right)
			mc.Combine = &combine
		}
		cfg.Matrices[name] = mc
	}

	cfg.Enumeration.Algorithm = expandEnvVar(cfg.Enumeration.Algorithm)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
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
		// Return original if env var not found
		return match
	})
}

// GetMatrix retrieves a specific matrix configuration by name.
func (c *Config) GetMatrix(name string) (*MatrixConfig, error) {
	mc, exists := c.Matrices[name]
	if !exists {
		return nil, fmt.Errorf("matrix %q not found in configuration", name)
	}
	return &mc, nil
}

// ListMatrices returns all matrix names defined in the configuration, sorted.
func (c *Config) ListMatrices() []string {
	names := make([]string, 0, len(c.Matrices))
	for name := range c.Matrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyOverrides applies CLI flag overrides to the global configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, maxColumns int, skipVerify bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if maxColumns > 0 {
		c.Enumeration.MaxColumns = maxColumns
	}
	if skipVerify {
		c.Verification.SkipVerification = true
	}
}

// ApplyMatrixOverrides combines global, matrix-specific and CLI values into
// the effective enumeration config for one matrix.
func (c *Config) ApplyMatrixOverrides(name, algorithm, rowOrder string) EnumerationConfig {
	enumeration := c.GetMatrixEnumeration(name)

	if algorithm != "" {
		enumeration.Algorithm = algorithm
	}
	if rowOrder != "" {
		enumeration.RowOrder = rowOrder
	}

	return enumeration
}
