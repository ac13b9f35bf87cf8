package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatSummaryOneLine formats run statistics as a single line, for example
// "5 issues (2 errors, 3 warnings) in 2 files, 1 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	errs := stats.DiagnosticsBySeverity[string(config.SeverityError)]
	warnings := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]
	infos := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]

	fixed := ""
	if stats.DiagnosticsFixed > 0 {
		fixed = s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.DiagnosticsFixed, stats.FilesModified, plural(stats.FilesModified, "file")))
	}

	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "document")))
		if fixed != "" {
			msg += ", " + fixed
		}
		return msg + "\n"
	}

	var severities []string
	if errs > 0 {
		severities = append(severities, s.Error.Render(fmt.Sprintf("%d %s", errs, plural(errs, "error"))))
	}
	if warnings > 0 {
		severities = append(severities, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning"))))
	}
	if infos > 0 {
		severities = append(severities, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue"))
	if len(severities) > 0 {
		head += " (" + strings.Join(severities, ", ") + ")"
	}

	parts := []string{
		head,
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file")),
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if fixed != "" {
		parts = append(parts, fixed)
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row := func(label string, value string) {
		fmt.Fprintf(&b, "  %-19s%s\n", label, value)
	}

	row("Documents checked:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("With issues:", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row("Modified:", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesErrored > 0 {
		row("Failed:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Controls declared:", s.SummaryValue.Render(strconv.Itoa(stats.ControlsDeclared)))

	b.WriteString("\n")
	row("Total issues:", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))

	errs := stats.DiagnosticsBySeverity[string(config.SeverityError)]
	warnings := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]
	infos := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]
	if errs > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(errs)))
	}
	if warnings > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(warnings)))
	}
	if infos > 0 {
		row("  Info:", s.Info.Render(strconv.Itoa(infos)))
	}

	b.WriteString("\n")
	switch {
	case errs > 0:
		b.WriteString(s.Failure.Render("Check failed with errors"))
	case warnings > 0:
		b.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Check passed"))
	}
	b.WriteString("\n")

	return b.String()
}
