package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/aspxgen/internal/ui/pretty"
	"github.com/yaklabco/aspxgen/pkg/analysis"
	"github.com/yaklabco/aspxgen/pkg/config"
)

// Table layout for summary output. Both tables share one width.
const (
	tableWidth         = 90
	checkColWidth      = 32
	fileColWidth       = 55
	numColWidth        = 7
	warnColWidth       = 9
	fixableColWidth    = 8
	maxCheckNameLength = 30
	maxFilePathLength  = 53
)

// padRight pads s to width with spaces on the right. Pad before styling.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s to width with spaces on the left. Pad before styling.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer writes a report as per-check and per-document tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	for _, failure := range report.Failures {
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(failure.FilePath),
			r.styles.Error.Render("error: "+failure.Error))
	}

	if report.Totals.Issues == 0 {
		fmt.Fprintln(bw, r.styles.Success.Render("No issues found"))
		return bw.Flush()
	}

	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		r.renderFileTable(bw, report.ByFile)
		fmt.Fprintln(bw)
		r.renderCheckTable(bw, report.ByCheck)
	} else {
		r.renderCheckTable(bw, report.ByCheck)
		fmt.Fprintln(bw)
		r.renderFileTable(bw, report.ByFile)
	}

	fmt.Fprintln(bw)
	r.renderTotals(bw, report.Totals)

	return bw.Flush()
}

func (r *SummaryRenderer) rowStyle(counts analysis.SeverityCounts, cell string) string {
	switch {
	case counts.Errors > 0:
		return r.styles.TableErrorRow.Render(cell)
	case counts.Warnings > 0:
		return r.styles.TableWarnRow.Render(cell)
	default:
		return cell
	}
}

func (r *SummaryRenderer) renderCheckTable(bw *bufio.Writer, checks []analysis.CheckAnalysis) {
	if len(checks) == 0 {
		return
	}

	separator := r.styles.TableSeparator.Render(strings.Repeat("-", tableWidth))
	fmt.Fprintln(bw, r.styles.Bold.Render("Checks Summary"))
	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "%s %s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Check", checkColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Info", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixable", fixableColWidth)),
	)
	fmt.Fprintln(bw, separator)

	for _, c := range checks {
		label := c.Label
		if label == "" {
			label = c.CheckID
		}
		if len(label) > maxCheckNameLength {
			label = label[:maxCheckNameLength-3] + "..."
		}

		fixable := padLeft("", fixableColWidth)
		if c.Fixable {
			fixable = r.styles.Success.Render(padLeft("yes", fixableColWidth))
		}

		fmt.Fprintf(bw, "%s %s %s %s %s %s\n",
			r.rowStyle(c.SeverityCounts, padRight(label, checkColWidth)),
			padLeft(strconv.Itoa(c.Issues), numColWidth),
			padLeft(strconv.Itoa(c.Errors), numColWidth),
			padLeft(strconv.Itoa(c.Warnings), warnColWidth),
			padLeft(strconv.Itoa(c.Infos), numColWidth),
			fixable,
		)
	}
}

func (r *SummaryRenderer) renderFileTable(bw *bufio.Writer, files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	separator := r.styles.TableSeparator.Render(strings.Repeat("-", tableWidth))
	fmt.Fprintln(bw, r.styles.Bold.Render("Documents Summary"))
	fmt.Fprintln(bw, separator)
	fmt.Fprintf(bw, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Document", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Info", numColWidth)),
	)
	fmt.Fprintln(bw, separator)

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "..." + path[len(path)-(maxFilePathLength-3):]
		}

		fmt.Fprintf(bw, "%s %s %s %s %s\n",
			r.rowStyle(file.SeverityCounts, padRight(path, fileColWidth)),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
			padLeft(strconv.Itoa(file.Infos), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(bw *bufio.Writer, totals analysis.Totals) {
	line := fmt.Sprintf("%d %s", totals.Issues, pluralize(totals.Issues, "issue", "issues"))

	var severities []string
	if totals.Errors > 0 {
		severities = append(severities, r.styles.Error.Render(
			fmt.Sprintf("%d %s", totals.Errors, pluralize(totals.Errors, "error", "errors"))))
	}
	if totals.Warnings > 0 {
		severities = append(severities, r.styles.Warning.Render(
			fmt.Sprintf("%d %s", totals.Warnings, pluralize(totals.Warnings, "warning", "warnings"))))
	}
	if totals.Infos > 0 {
		severities = append(severities, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(severities) > 0 {
		line += " (" + strings.Join(severities, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d %s", totals.FilesWithIssues, pluralize(totals.FilesWithIssues, "document", "documents"))

	fmt.Fprintln(bw, r.styles.Bold.Render("Total: ")+line)
	if totals.Controls > 0 {
		fmt.Fprintln(bw, r.styles.Dim.Render(fmt.Sprintf("%d controls declared", totals.Controls)))
	}
}
