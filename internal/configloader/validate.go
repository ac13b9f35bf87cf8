package configloader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/framework"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "checks.AX002.severity").
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

// knownSeverities lists valid severity values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSeverities = map[string]bool{
	"error":   true,
	"warning": true,
	"info":    true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatTable:   true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
	config.FormatHTML:    true,
}

// knownCheckFormats lists valid check format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownCheckFormats = map[config.CheckFormat]bool{
	config.CheckFormatName:     true,
	config.CheckFormatID:       true,
	config.CheckFormatCombined: true,
}

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
	addError := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.TargetFramework != "" && !framework.Valid(cfg.TargetFramework) {
		addError("target_framework", cfg.TargetFramework,
			"invalid framework version %q; expected a version such as 3.5, 4.0 or 4.7.2", cfg.TargetFramework)
	}

	if cfg.AppVirtualPath != "" && !strings.HasPrefix(cfg.AppVirtualPath, "/") {
		addError("app_virtual_path", cfg.AppVirtualPath,
			"application virtual path %q must start with /", cfg.AppVirtualPath)
	}

	if cfg.SeverityDefault != "" && !knownSeverities[cfg.SeverityDefault] {
		addError("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		addError("format", cfg.Format,
			"invalid format %q; must be one of: text, table, json, sarif, diff, summary, html", cfg.Format)
	}

	if cfg.CheckFormat != "" && !knownCheckFormats[cfg.CheckFormat] {
		addError("check_format", cfg.CheckFormat,
			"invalid check format %q; must be one of: name, id, combined", cfg.CheckFormat)
	}

	if cfg.Jobs < 0 {
		addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			addError(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	validateRegistrations(cfg, addError)
	validateChecks(cfg, result)
	validateIgnorePatterns(cfg, addError)

	return result
}

type errorFunc func(field string, value any, format string, args ...any)

// validateRegistrations checks that every registration names a tag prefix
// and either a user control source or a namespace.
func validateRegistrations(cfg *config.Config, addError errorFunc) {
	for i, reg := range cfg.Registrations {
		field := fmt.Sprintf("registrations[%d]", i)
		switch {
		case reg.TagPrefix == "":
			addError(field+".tag_prefix", reg, "tag_prefix is required")
		case reg.Src != "" && reg.TagName == "":
			addError(field+".tag_name", reg, "user control registration %q needs a tag_name", reg.TagPrefix)
		case reg.Src == "" && reg.Namespace == "":
			addError(field, reg, "registration %q needs either src and tag_name or a namespace", reg.TagPrefix)
		}
	}
}

// validateChecks checks per-check configurations for errors and warnings.
func validateChecks(cfg *config.Config, result *ValidationResult) {
	for _, checkID := range sortedCheckKeys(cfg.Checks) {
		checkCfg := cfg.Checks[checkID]

		if _, exists := check.DefaultRegistry.Get(checkID); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "checks." + checkID,
				Value:   checkID,
				Message: fmt.Sprintf("unknown check %q; it will be ignored", checkID),
			})
		}

		if checkCfg.Severity != nil && !knownSeverities[*checkCfg.Severity] {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "checks." + checkID + ".severity",
				Value:   *checkCfg.Severity,
				Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *checkCfg.Severity),
			})
		}
	}
}

// validateIgnorePatterns rejects malformed character classes. Ignore
// patterns use gitignore syntax, which filepath.Match accepts apart from
// "**" and leading negation.
func validateIgnorePatterns(cfg *config.Config, addError errorFunc) {
	for i, pattern := range cfg.Ignore {
		if strings.TrimSpace(pattern) == "" {
			addError(fmt.Sprintf("ignore[%d]", i), pattern, "empty ignore pattern")
			continue
		}
		if _, err := filepath.Match(strings.TrimPrefix(pattern, "!"), ""); err != nil {
			addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid ignore pattern: %v", err)
		}
	}
}

func sortedCheckKeys(checks map[string]config.CheckConfig) []string {
	return slices.Sorted(maps.Keys(checks))
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return knownSeverities[s]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
