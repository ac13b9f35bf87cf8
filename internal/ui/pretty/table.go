package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

const (
	fixableSymbol    = "+"
	columnGap        = "  "
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// Column describes one table column.
type Column struct {
	Title    string
	MinWidth int

	// Shrink columns give up width, in order, when the table is wider than
	// the terminal.
	Shrink bool

	// KeepEnd truncates from the left so file names stay visible.
	KeepEnd bool
}

// TableRow is one row of cells. Severity picks the row color.
type TableRow struct {
	Cells    []string
	Severity config.Severity
}

// TableFormatter lays out rows in aligned columns.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	checkFormat  config.CheckFormat
}

// NewTableFormatter creates a table formatter. A termWidth of 0 or less
// means defaultTermWidth.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, checkFormat config.CheckFormat) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		checkFormat:  checkFormat,
	}
}

// Render lays out groups of rows under a header. Groups are divided by a
// light separator.
func (t *TableFormatter) Render(columns []Column, groups [][]TableRow) string {
	widths := t.columnWidths(columns, groups)

	var b strings.Builder
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.Title
	}
	b.WriteString(t.styles.TableHeader.Render(layout(columns, widths, titles)) + "\n")
	b.WriteString(t.separator(widths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			b.WriteString(t.separator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			b.WriteString(t.rowStyle(row.Severity).Render(layout(columns, widths, row.Cells)) + "\n")
		}
	}

	b.WriteString(t.separator(widths, heavySeparator) + "\n")
	return b.String()
}

func (t *TableFormatter) columnWidths(columns []Column, groups [][]TableRow) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = max(c.MinWidth, len(c.Title))
	}
	for _, group := range groups {
		for _, row := range group {
			for i, cell := range row.Cells {
				if i < len(widths) {
					widths[i] = max(widths[i], len(cell))
				}
			}
		}
	}

	for i, c := range columns {
		excess := totalWidth(widths) - t.termWidth
		if excess <= 0 {
			break
		}
		if c.Shrink {
			widths[i] = max(max(c.MinWidth, len(c.Title)), widths[i]-excess)
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w
	}
	return total + len(columnGap)*(len(widths)-1)
}

func layout(columns []Column, widths []int, cells []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if c.KeepEnd {
			cell = truncateStart(cell, widths[i])
		} else {
			cell = truncateEnd(cell, widths[i])
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return " " + strings.TrimRight(strings.Join(parts, columnGap), " ")
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

var diagnosticColumns = []Column{
	{Title: "FILE", MinWidth: 20, Shrink: true, KeepEnd: true},
	{Title: "LOC", MinWidth: 8},
	{Title: "MESSAGE", MinWidth: 35, Shrink: true},
	{Title: "CHECK", MinWidth: 8},
	{Title: fixableSymbol},
}

// diagnosticRow renders diag for the diagnostic columns; withFile=false
// leaves the FILE cell out.
func (t *TableFormatter) diagnosticRow(path string, diag *check.Diagnostic, withFile bool) TableRow {
	fixable := ""
	if diag.HasFix() {
		fixable = fixableSymbol
	}
	cells := []string{
		fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
		diag.Message,
		config.FormatCheckID(t.checkFormat, diag.CheckID, diag.CheckName),
		fixable,
	}
	if withFile {
		cells = append([]string{path}, cells...)
	}
	return TableRow{Cells: cells, Severity: diag.Severity}
}

// FormatTable formats the diagnostics of a run, grouped by document.
// It returns "" when there is nothing to show.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}
		rows := make([]TableRow, 0, len(file.Result.Diagnostics))
		for i := range file.Result.Diagnostics {
			rows = append(rows, t.diagnosticRow(file.Path, &file.Result.Diagnostics[i], true))
		}
		groups = append(groups, rows)
	}
	if len(groups) == 0 {
		return ""
	}

	return t.Render(diagnosticColumns, groups) + t.formatLegend() + "\n"
}

// FormatFileTable formats one document's diagnostics without the FILE
// column, followed by a per-severity count.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return ""
	}

	diags := file.Result.Diagnostics
	rows := make([]TableRow, 0, len(diags))
	counts := make(map[config.Severity]int)
	fixable := 0
	for i := range diags {
		rows = append(rows, t.diagnosticRow(file.Path, &diags[i], false))
		counts[diags[i].Severity]++
		if diags[i].HasFix() {
			fixable++
		}
	}

	var parts []string
	if n := counts[config.SeverityError]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error"))))
	}
	if n := counts[config.SeverityWarning]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning"))))
	}
	if n := counts[config.SeverityInfo]; n > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", n)))
	}
	if fixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", fixable)))
	}

	return t.Render(diagnosticColumns[1:], [][]TableRow{rows}) + " " + strings.Join(parts, " | ") + "\n"
}

// FormatDeclarations formats the fields and properties of decls.
func (t *TableFormatter) FormatDeclarations(decls *codegen.Declarations) string {
	if decls == nil {
		return ""
	}

	columns := []Column{
		{Title: "MEMBER", MinWidth: 12},
		{Title: "TYPE", MinWidth: 30, Shrink: true},
		{Title: "LOC", MinWidth: 6},
	}

	var groups [][]TableRow
	if len(decls.Properties) > 0 {
		rows := make([]TableRow, 0, len(decls.Properties))
		for _, p := range decls.Properties {
			rows = append(rows, TableRow{Cells: []string{p.Name, p.TypeName, ""}})
		}
		groups = append(groups, rows)
	}
	if len(decls.Fields) > 0 {
		rows := make([]TableRow, 0, len(decls.Fields))
		for _, f := range decls.Fields {
			loc := ""
			if f.Line > 0 {
				loc = fmt.Sprintf("%d:%d", f.Line, f.Column)
			}
			rows = append(rows, TableRow{Cells: []string{f.Name, f.TypeName, loc}})
		}
		groups = append(groups, rows)
	}

	header := t.styles.ClassName.Render(decls.FullClassName()) + t.styles.Dim.Render(" ("+decls.VirtualPath+")") + "\n"
	if len(groups) == 0 {
		return header + t.styles.Dim.Render(" no declarations") + "\n"
	}
	return header + t.Render(columns, groups)
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: E = error | W = warning | %s = fixable", fixableSymbol),
		)
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = error  %s = warning  %s = info  %s = fixable",
			t.styles.TableErrorRow.Render(" error "),
			t.styles.TableWarnRow.Render(" warning "),
			t.styles.TableInfoRow.Render(" info "),
			t.styles.TableFixable.Render(fixableSymbol)),
	)
}

// FormatTableSummary formats a one-line summary for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, "document"))}

	if n := stats.DiagnosticsBySeverity[string(config.SeverityError)]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error"))))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning"))))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]; n > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", n)))
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

func truncateEnd(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}

func truncateStart(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[len(str)-maxLen:]
	}
	return ellipsis + str[len(str)-maxLen+len(ellipsis):]
}
