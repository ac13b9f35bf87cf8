package check

import (
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fix"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic of check at line 1, column 1 of path.
func NewDiagnostic(check Check, path, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			CheckID:     check.ID(),
			CheckName:   check.Name(),
			Message:     message,
			Severity:    check.DefaultSeverity(),
			FilePath:    path,
			StartLine:   1,
			StartColumn: 1,
			EndLine:     1,
			EndColumn:   1,
		},
	}
}

// WithRange sets the position. Non-positive lines keep the default.
func (b *DiagnosticBuilder) WithRange(startLine, startCol, endLine, endCol int) *DiagnosticBuilder {
	if startLine <= 0 {
		return b
	}
	if endLine < startLine {
		endLine, endCol = startLine, startCol
	}
	b.diag.StartLine, b.diag.StartColumn = startLine, max(startCol, 1)
	b.diag.EndLine, b.diag.EndColumn = endLine, max(endCol, 1)
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix adds the edits accumulated by builder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
