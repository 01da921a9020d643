package configloader

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/langex/pkg/config"
	"github.com/yaklabco/langex/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "checker.min_length").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// calleePattern matches dotted callee names such as t, $t or this.$t.
//
//nolint:gochecknoglobals // compiled once
var calleePattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*$`)

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	// Validate format
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, diff, summary, table", cfg.Format),
		})
	}

	// Validate jobs
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	// Validate backups.mode
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	if cfg.MaxKeyLength < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_key_length",
			Value:   cfg.MaxKeyLength,
			Message: "max_key_length must be >= 0 (0 means default)",
		})
	}

	validateCalls(cfg, result)
	validateChecker(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateExtensions(cfg, result)

	return result
}

// validateCalls checks that call prefixes look like callee expressions.
func validateCalls(cfg *config.Config, result *ValidationResult) {
	calls := []struct {
		field string
		value string
	}{
		{"calls.script", cfg.Calls.Script},
		{"calls.setup", cfg.Calls.Setup},
		{"calls.template", cfg.Calls.Template},
		{"calls.jsx", cfg.Calls.JSX},
	}
	for _, call := range calls {
		if call.value == "" || calleePattern.MatchString(call.value) {
			continue
		}
		result.Errors = append(result.Errors, ValidationError{
			Field:   call.field,
			Value:   call.value,
			Message: fmt.Sprintf("invalid call %q; expected a function name such as this.$t", call.value),
		})
	}
}

// validateChecker checks the literal classification settings.
func validateChecker(cfg *config.Config, result *ValidationResult) {
	if cfg.Checker.MinLength < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "checker.min_length",
			Value:   cfg.Checker.MinLength,
			Message: "min_length must be >= 0",
		})
	}

	for i, pattern := range cfg.Checker.IgnorePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("checker.ignore_patterns[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	excluded := make(map[string]bool, len(cfg.Checker.ExcludedAttributes))
	for _, name := range cfg.Checker.ExcludedAttributes {
		excluded[name] = true
	}
	for _, name := range cfg.Checker.AllowedAttributes {
		if excluded[name] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "checker.allowed_attributes",
				Value:   name,
				Message: fmt.Sprintf("attribute %q is both allowed and excluded; it stays excluded", name),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileGlob(pattern); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: err.Error(),
			})
		}
	}
}

// validateExtensions warns about extensions no extractor handles.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	supported := runner.DefaultExtensions()
	for i, ext := range cfg.Extensions {
		normalized := strings.ToLower(ext)
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if !slices.Contains(supported, normalized) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("unsupported extension %q; files with it are never extracted", ext),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
