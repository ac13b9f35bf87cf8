package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/aspxgen/pkg/analysis"
	"github.com/yaklabco/aspxgen/pkg/config"
)

const htmlStyle = `<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #ccc; padding: 0.25em 0.6em; text-align: left; }
th { background: #f3f3f3; }
code { font-size: 0.95em; }
</style>
`

// markdownEscaper escapes the characters that would otherwise be read as
// markdown or raw HTML inside a table cell.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// HTMLRenderer writes a report as a standalone HTML page. The page is built
// as markdown and converted with goldmark.
type HTMLRenderer struct {
	opts     Options
	markdown goldmark.Markdown
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{
		opts:     opts,
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(_ context.Context, report *analysis.Report) error {
	var body bytes.Buffer
	if err := r.markdown.Convert(r.buildMarkdown(report), &body); err != nil {
		return fmt.Errorf("convert report: %w", err)
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	fmt.Fprintln(bw, "<!DOCTYPE html>")
	fmt.Fprintln(bw, `<html><head><meta charset="utf-8"><title>aspxgen report</title>`)
	fmt.Fprint(bw, htmlStyle)
	fmt.Fprintln(bw, "</head><body>")
	bw.Write(body.Bytes())
	fmt.Fprintln(bw, "</body></html>")
	return bw.Flush()
}

func (r *HTMLRenderer) buildMarkdown(report *analysis.Report) []byte {
	var md bytes.Buffer

	md.WriteString("# aspxgen report\n\n")
	totals := report.Totals
	fmt.Fprintf(&md, "%d documents checked, %d with issues, %d failed. ",
		totals.Files, totals.FilesWithIssues, totals.FilesFailed)
	fmt.Fprintf(&md, "%d issues (%d errors, %d warnings, %d info), %d fixable. ",
		totals.Issues, totals.Errors, totals.Warnings, totals.Infos, totals.Fixable)
	fmt.Fprintf(&md, "%d controls declared.\n\n", totals.Controls)

	if version := r.opts.ToolVersion; version != "" {
		fmt.Fprintf(&md, "Generated by aspxgen %s at %s.\n\n",
			escapeMarkdown(version), report.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))
	}

	if len(report.Failures) > 0 {
		md.WriteString("## Failures\n\n| Document | Error |\n| --- | --- |\n")
		for _, f := range report.Failures {
			fmt.Fprintf(&md, "| %s | %s |\n", escapeMarkdown(f.FilePath), escapeMarkdown(f.Error))
		}
		md.WriteString("\n")
	}

	if len(report.ByCheck) > 0 {
		md.WriteString("## Checks\n\n| Check | Issues | Errors | Warnings | Info | Fixable |\n")
		md.WriteString("| --- | ---: | ---: | ---: | ---: | :---: |\n")
		for _, c := range report.ByCheck {
			fixable := ""
			if c.Fixable {
				fixable = "yes"
			}
			fmt.Fprintf(&md, "| %s | %d | %d | %d | %d | %s |\n",
				escapeMarkdown(c.Label), c.Issues, c.Errors, c.Warnings, c.Infos, fixable)
		}
		md.WriteString("\n")
	}

	if len(report.Diagnostics) > 0 {
		md.WriteString("## Diagnostics\n\n| Document | Location | Severity | Check | Message |\n")
		md.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, d := range report.Diagnostics {
			fmt.Fprintf(&md, "| %s | %d:%d | %s | %s | %s |\n",
				escapeMarkdown(d.FilePath), d.StartLine, d.StartColumn, escapeMarkdown(d.Severity),
				escapeMarkdown(config.FormatCheckID(r.opts.CheckFormat, d.CheckID, d.CheckName)),
				escapeMarkdown(d.Message))
		}
		md.WriteString("\n")
	}

	if len(report.Declarations) > 0 {
		md.WriteString("## Declarations\n\n")
		for _, decl := range report.Declarations {
			fmt.Fprintf(&md, "### %s\n\n", escapeMarkdown(decl.ClassName))
			fmt.Fprintf(&md, "%s (%s)\n\n", escapeMarkdown(decl.VirtualPath), escapeMarkdown(decl.FilePath))

			md.WriteString("| Member | Type |\n| --- | --- |\n")
			if decl.Master != "" {
				fmt.Fprintf(&md, "| Master | %s |\n", escapeMarkdown(decl.Master))
			}
			if decl.Previous != "" {
				fmt.Fprintf(&md, "| PreviousPage | %s |\n", escapeMarkdown(decl.Previous))
			}
			for _, name := range slices.Sorted(maps.Keys(decl.Fields)) {
				fmt.Fprintf(&md, "| %s | %s |\n", escapeMarkdown(name), escapeMarkdown(decl.Fields[name]))
			}
			md.WriteString("\n")
		}
	}

	if totals.Issues == 0 && len(report.Failures) == 0 {
		md.WriteString("No issues found.\n")
	}

	return md.Bytes()
}
