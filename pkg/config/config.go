// Package config defines core configuration types for aspxgen.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import (
	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/framework"
)

// Severity represents the severity level of a check diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// CheckConfig holds per-check configuration options.
type CheckConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Registration is a tag prefix registration applied to every document,
// the equivalent of a register directive in the web application config.
type Registration struct {
	TagPrefix string `mapstructure:"tag_prefix" yaml:"tag_prefix"`
	TagName   string `mapstructure:"tag_name" yaml:"tag_name,omitempty"`
	Namespace string `mapstructure:"namespace" yaml:"namespace,omitempty"`
	Assembly  string `mapstructure:"assembly" yaml:"assembly,omitempty"`
	Src       string `mapstructure:"src" yaml:"src,omitempty"`
}

// Directive renders the registration as a register directive.
func (r Registration) Directive() *directive.Directive {
	attrs := make(map[string]string, 5)
	set := func(key, value string) {
		if value != "" {
			attrs[key] = value
		}
	}
	set(directive.AttrTagPrefix, r.TagPrefix)
	set(directive.AttrTagName, r.TagName)
	set(directive.AttrNamespace, r.Namespace)
	set(directive.AttrAssembly, r.Assembly)
	set(directive.AttrSrc, r.Src)
	return directive.New(directive.NameRegister, attrs)
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
	FormatHTML    OutputFormat = "html"
)

// CheckFormat controls how check identifiers appear in output.
type CheckFormat string

const (
	CheckFormatName     CheckFormat = "name"     // "unresolved-type"
	CheckFormatID       CheckFormat = "id"       // "AX002"
	CheckFormatCombined CheckFormat = "combined" // "AX002/unresolved-type"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderChecks shows the checks table first (default).
	SummaryOrderChecks SummaryOrder = "checks"
	// SummaryOrderFiles shows the files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderChecks, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// Default document extensions.
const (
	ExtPage        = ".aspx"
	ExtUserControl = ".ascx"
	ExtMaster      = ".master"
)

// DefaultExtensions returns the markup extensions processed by default.
func DefaultExtensions() []string {
	return []string{ExtPage, ExtUserControl, ExtMaster}
}

// Config is the root configuration structure for aspxgen.
type Config struct {
	// TargetFramework is the .NET Framework version markup is parsed for.
	TargetFramework string `mapstructure:"target_framework" yaml:"target_framework"`

	// AppVirtualPath is the virtual root of the web application.
	AppVirtualPath string `mapstructure:"app_virtual_path" yaml:"app_virtual_path"`

	// AppRoot is the physical application directory. Relative paths are
	// resolved against the directory of the config file that sets it.
	AppRoot string `mapstructure:"app_root" yaml:"app_root,omitempty"`

	// DefaultNamespace prefixes predicted Visual Basic class names.
	DefaultNamespace string `mapstructure:"default_namespace" yaml:"default_namespace,omitempty"`

	// Registrations are applied to every document before its own directives.
	Registrations []Registration `mapstructure:"registrations" yaml:"registrations,omitempty"`

	// Catalogs are YAML type catalogs merged over the built-in catalog.
	Catalogs []string `mapstructure:"catalogs" yaml:"catalogs,omitempty"`

	// Extensions lists the file extensions treated as markup documents.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// SeverityDefault is the default severity for checks that don't specify one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default,omitempty"`

	// Checks contains per-check configuration keyed by check ID.
	Checks map[string]CheckConfig `mapstructure:"checks" yaml:"checks,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// RespectGitignore skips files ignored by .gitignore. Nil means true.
	RespectGitignore *bool `mapstructure:"respect_gitignore" yaml:"respect_gitignore,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// FailureLog is the file generation failures are appended to.
	FailureLog string `mapstructure:"failure_log" yaml:"failure_log,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// CheckFormat controls how check identifiers appear in output.
	CheckFormat CheckFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EnableChecks contains check IDs to explicitly enable.
	EnableChecks []string `mapstructure:"-" yaml:"-"`

	// DisableChecks contains check IDs to explicitly disable.
	DisableChecks []string `mapstructure:"-" yaml:"-"`

	// FixChecks limits auto-fixing to specific check IDs.
	FixChecks []string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		TargetFramework: framework.Default,
		AppVirtualPath:  "/",
		Extensions:      DefaultExtensions(),
		SeverityDefault: string(SeverityWarning),
		Checks:          make(map[string]CheckConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:      FormatText,
		CheckFormat: CheckFormatName,
		Jobs:        0, // 0 means use GOMAXPROCS
	}
}

// GitignoreEnabled reports whether .gitignore files are honored.
func (c *Config) GitignoreEnabled() bool {
	return c.RespectGitignore == nil || *c.RespectGitignore
}

// RegistrationDirectives returns the configured registrations as register directives.
func (c *Config) RegistrationDirectives() []*directive.Directive {
	if len(c.Registrations) == 0 {
		return nil
	}
	out := make([]*directive.Directive, 0, len(c.Registrations))
	for _, r := range c.Registrations {
		out = append(out, r.Directive())
	}
	return out
}
