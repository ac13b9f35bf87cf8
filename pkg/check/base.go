package check

import "github.com/yaklabco/aspxgen/pkg/config"

// BaseCheck carries the metadata of a check. Embed it and implement Apply.
type BaseCheck struct {
	id       string
	name     string
	desc     string
	tags     []string
	fixable  bool
	severity config.Severity
	disabled bool
}

// NewBaseCheck creates a BaseCheck enabled by default with warning severity.
func NewBaseCheck(id, name, desc string, tags []string, fixable bool) BaseCheck {
	return BaseCheck{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		fixable:  fixable,
		severity: config.SeverityWarning,
	}
}

// WithSeverity returns a copy with a different default severity.
func (c BaseCheck) WithSeverity(s config.Severity) BaseCheck {
	c.severity = s
	return c
}

// DisabledByDefault returns a copy that only runs when enabled explicitly.
func (c BaseCheck) DisabledByDefault() BaseCheck {
	c.disabled = true
	return c
}

// ID returns the unique identifier.
func (c *BaseCheck) ID() string {
	return c.id
}

// Name returns the human-readable name.
func (c *BaseCheck) Name() string {
	return c.name
}

// Description returns what the check looks for.
func (c *BaseCheck) Description() string {
	return c.desc
}

// DefaultEnabled returns whether the check runs without configuration.
func (c *BaseCheck) DefaultEnabled() bool {
	return !c.disabled
}

// DefaultSeverity returns the severity used without configuration.
func (c *BaseCheck) DefaultSeverity() config.Severity {
	return c.severity
}

// Tags returns categorization tags.
func (c *BaseCheck) Tags() []string {
	return c.tags
}

// CanFix returns whether the check proposes fixes.
func (c *BaseCheck) CanFix() bool {
	return c.fixable
}
