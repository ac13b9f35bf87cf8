// Package check runs checks over parsed markup documents and applies the
// fixes they propose.
package check

import (
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fix"
)

// Diagnostic is a single issue found in a document.
type Diagnostic struct {
	// CheckID identifies the check that reported the issue (e.g. "AX002").
	CheckID string

	// CheckName is the human-readable check name (e.g. "unresolved-type").
	CheckName string

	Message  string
	Severity config.Severity

	// FilePath is the physical path of the document.
	FilePath string

	// Positions are 1-based; columns count runes.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// FixEdits are byte edits of the document content that fix the issue.
	FixEdits []fix.TextEdit
}

// HasFix returns true if this diagnostic has associated fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// Check is implemented by every document check.
type Check interface {
	// ID returns the unique identifier (e.g. "AX001").
	ID() string

	// Name returns the human-readable name.
	Name() string

	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Tags() []string

	// CanFix reports whether diagnostics may carry fix edits.
	CanFix() bool

	// Apply inspects the document in ctx. Errors are reserved for internal
	// failures; issues are returned as diagnostics.
	Apply(ctx *Context) ([]Diagnostic, error)
}
