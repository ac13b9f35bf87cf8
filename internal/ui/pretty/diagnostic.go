package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
)

// FormatDiagnostic formats a diagnostic as
//
//	path:line:col  severity  message  (check)
//
// followed by the source line with a caret under the column when
// showContext is set, and the suggestion if there is one.
func (s *Styles) FormatDiagnostic(diag *check.Diagnostic, showContext bool, sourceLine string, format config.CheckFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	severity := s.FormatSeverity(diag.Severity)

	checkDisplay := s.CheckID.Render("(" + config.FormatCheckID(format, diag.CheckID, diag.CheckName) + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		checkDisplay,
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// tabWidth matches the lipgloss default tab expansion.
const tabWidth = 4

// FormatSourceContext formats the source line with a caret under column.
// Columns count runes. Rendering expands tabs to tabWidth spaces, so the
// caret padding does the same.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		var padding strings.Builder
		for i, r := range []rune(line) {
			if i >= column-1 {
				break
			}
			if r == '\t' {
				padding.WriteString(strings.Repeat(" ", tabWidth))
			} else {
				padding.WriteRune(' ')
			}
		}
		if missing := column - 1 - utf8.RuneCountInString(line); missing > 0 {
			padding.WriteString(strings.Repeat(" ", missing))
		}
		builder.WriteString(indent + padding.String() + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
