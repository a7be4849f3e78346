package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/gotestor/internal/matrix"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

var (
	validAlgorithms = map[string]bool{"yyc": true, "bt": true, "both": true, "": true}
	validRowOrders  = map[string]bool{"original": true, "ones-ascending": true, "both": true, "": true}
	validMethods    = map[string]bool{"cover": true, "typical": true, "": true}
)

// Validate checks the configuration for required fields and valid values.
// Matrix names referenced by combine entries must exist either in the
// configuration or among the built-in presets; cycles between combine
// entries are detected later, when the derivation graph is built.
func (c *Config) Validate() error {
	var errors ValidationErrors

	for _, name := range c.ListMatrices() {
		mc := c.Matrices[name]
		if err := c.validateMatrix(name, &mc); err != nil {
			errors = append(errors, err...)
		}
	}

	if err := validateEnumeration("enumeration", &c.Enumeration); err != nil {
		errors = append(errors, err...)
	}

	if err := validateVerification("verification", &c.Verification); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateMatrix(name string, mc *MatrixConfig) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("matrices.%s", name)

	switch mc.Source() {
	case "rows":
		if _, err := matrix.Parse(mc.Rows); err != nil {
			errors = append(errors, ValidationError{
				Field:   prefix + ".rows",
				Message: err.Error(),
			})
		}
	case "generate":
		errors = append(errors, validateGenerate(prefix+".generate", mc.Generate)...)
	case "combine":
		errors = append(errors, c.validateCombine(prefix+".combine", mc.Combine)...)
	default:
		errors = append(errors, ValidationError{
			Field:   prefix,
			Message: "exactly one of rows, generate or combine must be set",
		})
	}

	if mc.Enumeration != nil {
		errors = append(errors, validateEnumeration(prefix+".enumeration", mc.Enumeration)...)
	}
	if mc.Verification != nil {
		errors = append(errors, validateVerification(prefix+".verification", mc.Verification)...)
	}

	return errors
}

func validateGenerate(prefix string, g *GenerateConfig) ValidationErrors {
	var errors ValidationErrors

	if g.Rows < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".rows",
			Message: "rows cannot be negative",
		})
	}

	if g.Cols < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".cols",
			Message: "cols cannot be negative",
		})
	}

	if g.Density < 0 || g.Density > 1 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".density",
			Message: "density must be between 0 and 1",
		})
	}

	return errors
}

func (c *Config) validateCombine(prefix string, cc *CombineConfig) ValidationErrors {
	var errors ValidationErrors

	if !matrix.ValidOperator(matrix.Operator(cc.Operator)) {
		errors = append(errors, ValidationError{
			Field:   prefix + ".operator",
			Message: "operator must be 'theta', 'phi', or 'gamma'",
		})
	}

	operands := []struct{ field, ref string }{{"left", cc.Left}, {"right", cc.Right}}
	for _, op := range operands {
		field, ref := op.field, op.ref
		if ref == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + "." + field,
				Message: field + " operand is required",
			})
			continue
		}
		if _, ok := c.Matrices[ref]; !ok && !matrix.HasPreset(ref) {
			errors = append(errors, ValidationError{
				Field:   prefix + "." + field,
				Message: fmt.Sprintf("matrix %q is not defined", ref),
			})
		}
	}

	if cc.Power < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".power",
			Message: "power cannot be negative",
		})
	}

	return errors
}

func validateEnumeration(prefix string, e *EnumerationConfig) ValidationErrors {
	var errors ValidationErrors

	if !validAlgorithms[e.Algorithm] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".algorithm",
			Message: "algorithm must be 'yyc', 'bt', or 'both'",
		})
	}

	if !validRowOrders[e.RowOrder] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".row_order",
			Message: "row_order must be 'original', 'ones-ascending', or 'both'",
		})
	}

	if e.MaxColumns < 0 || e.MaxColumns > 64 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_columns",
			Message: "max_columns must be between 0 and 64",
		})
	}

	return errors
}

func validateVerification(prefix string, v *VerificationConfig) ValidationErrors {
	var errors ValidationErrors

	if !validMethods[v.Method] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".method",
			Message: "method must be 'cover' or 'typical'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
