// Package config provides configuration structures and loading for GoTestor.
package config

// Config represents the complete application configuration.
type Config struct {
	Matrices     map[string]MatrixConfig `yaml:"matrices" mapstructure:"matrices"`
	Enumeration  EnumerationConfig       `yaml:"enumeration" mapstructure:"enumeration"`
	Verification VerificationConfig      `yaml:"verification" mapstructure:"verification"`
	Logging      LoggingConfig           `yaml:"logging" mapstructure:"logging"`
}

// MatrixConfig describes one named input matrix. Exactly one of Rows,
// Generate or Combine must be set.
type MatrixConfig struct {
	Description  string              `yaml:"description" mapstructure:"description"`
	Rows         []string            `yaml:"rows" mapstructure:"rows"` // "0 1 1" or "011"
	Generate     *GenerateConfig     `yaml:"generate,omitempty" mapstructure:"generate"`
	Combine      *CombineConfig      `yaml:"combine,omitempty" mapstructure:"combine"`
	Enumeration  *EnumerationConfig  `yaml:"enumeration,omitempty" mapstructure:"enumeration"`
	Verification *VerificationConfig `yaml:"verification,omitempty" mapstructure:"verification"`
}

// GenerateConfig describes a seeded random matrix.
type GenerateConfig struct {
	Rows    int     `yaml:"rows" mapstructure:"rows"`
	Cols    int     `yaml:"cols" mapstructure:"cols"`
	Density float64 `yaml:"density" mapstructure:"density"`
	Seed    int64   `yaml:"seed" mapstructure:"seed"`
}

// CombineConfig derives a matrix from two other named matrices.
type CombineConfig struct {
	Operator string `yaml:"operator" mapstructure:"operator"` // theta, phi or gamma
	Left     string `yaml:"left" mapstructure:"left"`
	Right    string `yaml:"right" mapstructure:"right"`
	Power    int    `yaml:"power" mapstructure:"power"` // extra self-applications of the operator
}

// EnumerationConfig selects the enumerators and row order used for a run.
type EnumerationConfig struct {
	Algorithm  string `yaml:"algorithm" mapstructure:"algorithm"`     // yyc, bt or both
	RowOrder   string `yaml:"row_order" mapstructure:"row_order"`     // original, ones-ascending or both
	MaxColumns int    `yaml:"max_columns" mapstructure:"max_columns"` // refuse wider basic matrices
}

// VerificationConfig represents result verification settings.
type VerificationConfig struct {
	Method           string `yaml:"method" mapstructure:"method"` // "cover" or "typical"
	SkipVerification bool   `yaml:"skip_verification" mapstructure:"skip_verification"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Matrices: map[string]MatrixConfig{},
		Enumeration: EnumerationConfig{
			Algorithm:  "both",
			RowOrder:   "original",
			MaxColumns: 32,
		},
		Verification: VerificationConfig{
			Method:           "cover",
			SkipVerification: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// GetMatrixEnumeration returns the enumeration config for a matrix by name, falling back to global if not set.
func (c *Config) GetMatrixEnumeration(name string) EnumerationConfig {
	mc, err := c.GetMatrix(name)
	if err != nil {
		return c.Enumeration
	}
	return mc.GetEnumeration(c.Enumeration)
}

// GetMatrixVerification returns the verification config for a matrix by name, falling back to global if not set.
func (c *Config) GetMatrixVerification(name string) VerificationConfig {
	mc, err := c.GetMatrix(name)
	if err != nil {
		return c.Verification
	}
	return mc.GetVerification(c.Verification)
}

// GetEnumeration returns the enumeration config for a matrix, falling back to global if not set.
func (mc *MatrixConfig) GetEnumeration(global EnumerationConfig) EnumerationConfig {
	if mc.Enumeration == nil {
		return global
	}

	// Merge matrix-specific with global defaults
	result := global
	if mc.Enumeration.Algorithm != "" {
		result.Algorithm = mc.Enumeration.Algorithm
	}
	if mc.Enumeration.RowOrder != "" {
		result.RowOrder = mc.Enumeration.RowOrder
	}
	if mc.Enumeration.MaxColumns > 0 {
		result.MaxColumns = mc.Enumeration.MaxColumns
	}
	return result
}

// GetVerification returns the verification config for a matrix, falling back to global if not set.
func (mc *MatrixConfig) GetVerification(global VerificationConfig) VerificationConfig {
	if mc.Verification == nil {
		return global
	}

	result := global
	if mc.Verification.Method != "" {
		result.Method = mc.Verification.Method
	}
	result.SkipVerification = mc.Verification.SkipVerification || global.SkipVerification
	return result
}

// Source returns which of rows, generate or combine the matrix uses, or
// an empty string when none or several are set.
func (mc *MatrixConfig) Source() string {
	var sources []string
	if len(mc.Rows) > 0 {
		sources = append(sources, "rows")
	}
	if mc.Generate != nil {
		sources = append(sources, "generate")
	}
	if mc.Combine != nil {
		sources = append(sources, "combine")
	}
	if len(sources) != 1 {
		return ""
	}
	return sources[0]
}
