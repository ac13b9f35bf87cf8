// Package analysis turns a runner result into the aggregated views the
// reporters render: a flat diagnostic list, per-document and per-check
// counts, and the declarations generated for each document.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

// ReportVersion is the report format version.
const ReportVersion = "1.0.0"

const (
	severityError   = string(config.SeverityError)
	severityWarning = string(config.SeverityWarning)
	severityInfo    = string(config.SeverityInfo)
)

// DisplayPath returns path relative to workDir, or path itself when workDir
// is empty or path cannot be made relative.
func DisplayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

type analyzer struct {
	opts   Options
	report *Report

	files      map[string]*FileAnalysis
	checks     map[string]*CheckAnalysis
	fileChecks map[string]map[string]bool
	checkFiles map[string]map[string]bool
}

// Analyze computes every view of result in one pass over its diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	a := &analyzer{
		opts:       opts,
		report:     report,
		files:      make(map[string]*FileAnalysis),
		checks:     make(map[string]*CheckAnalysis),
		fileChecks: make(map[string]map[string]bool),
		checkFiles: make(map[string]map[string]bool),
	}

	for _, file := range result.Files {
		report.Totals.Files++
		path := DisplayPath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesFailed++
			report.Failures = append(report.Failures, FailureEntry{FilePath: path, Error: file.Error.Error()})
			continue
		}
		if file.Result == nil {
			continue
		}
		if file.Result.Written {
			report.Totals.FilesModified++
		}
		if file.Result.FileResult == nil {
			continue
		}
		a.addFile(path, file.Result.FileResult)
	}

	if opts.IncludeByCheck {
		report.ByCheck = a.byCheck()
	}
	if opts.IncludeByFile {
		report.ByFile = a.byFile()
	}
	return report
}

func (a *analyzer) addFile(path string, fr *check.FileResult) {
	totals := &a.report.Totals

	if decls := fr.Declarations; decls != nil {
		totals.Controls += len(decls.Fields)
		if a.opts.IncludeDeclarations {
			a.report.Declarations = append(a.report.Declarations, declarationEntry(path, decls))
		}
	}

	if len(fr.Diagnostics) == 0 {
		return
	}
	totals.FilesWithIssues++

	fa := &FileAnalysis{Path: path}
	a.files[path] = fa
	a.fileChecks[path] = make(map[string]bool)

	for i := range fr.Diagnostics {
		diag := &fr.Diagnostics[i]
		severity := string(diag.Severity)
		if severity == "" {
			severity = severityWarning
		}
		fixable := diag.HasFix()

		totals.Issues++
		totals.add(severity)
		if fixable {
			totals.Fixable++
		}

		fa.Issues++
		fa.add(severity)
		a.fileChecks[path][diag.CheckID] = true

		ca := a.check(diag)
		ca.Issues++
		ca.add(severity)
		ca.Fixable = ca.Fixable || fixable
		a.checkFiles[diag.CheckID][path] = true

		if a.opts.IncludeDiagnostics {
			a.report.Diagnostics = append(a.report.Diagnostics, diagnosticEntry(path, severity, diag))
		}
	}
}

func (a *analyzer) check(diag *check.Diagnostic) *CheckAnalysis {
	if ca, ok := a.checks[diag.CheckID]; ok {
		return ca
	}
	ca := &CheckAnalysis{
		CheckID:   diag.CheckID,
		CheckName: diag.CheckName,
		Label:     config.FormatCheckID(a.opts.CheckFormat, diag.CheckID, diag.CheckName),
	}
	a.checks[diag.CheckID] = ca
	a.checkFiles[diag.CheckID] = make(map[string]bool)
	return ca
}

func diagnosticEntry(path, severity string, diag *check.Diagnostic) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath:    path,
		CheckID:     diag.CheckID,
		CheckName:   diag.CheckName,
		Severity:    severity,
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     diag.HasFix(),
	}
	for _, edit := range diag.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}

func declarationEntry(path string, decls *codegen.Declarations) DeclarationEntry {
	entry := DeclarationEntry{
		FilePath:    path,
		VirtualPath: decls.VirtualPath,
		ClassName:   decls.FullClassName(),
		Language:    string(decls.Language),
	}
	for _, p := range decls.Properties {
		switch p.Name {
		case codegen.PropertyMaster:
			entry.Master = p.TypeName
		case codegen.PropertyPreviousPage:
			entry.Previous = p.TypeName
		}
	}
	if len(decls.Fields) > 0 {
		entry.Fields = make(map[string]string, len(decls.Fields))
		for _, f := range decls.Fields {
			entry.Fields[f.Name] = f.TypeName
		}
	}
	return entry
}

func (a *analyzer) byCheck() []CheckAnalysis {
	out := make([]CheckAnalysis, 0, len(a.checks))
	for id, ca := range a.checks {
		ca.Files = sortedKeys(a.checkFiles[id])
		out = append(out, *ca)
	}
	sortBy(out, a.opts, func(c CheckAnalysis) (string, int, SeverityCounts) {
		return c.CheckID, c.Issues, c.SeverityCounts
	})
	return out
}

func (a *analyzer) byFile() []FileAnalysis {
	out := make([]FileAnalysis, 0, len(a.files))
	for path, fa := range a.files {
		fa.Checks = sortedKeys(a.fileChecks[path])
		out = append(out, *fa)
	}
	sortBy(out, a.opts, func(f FileAnalysis) (string, int, SeverityCounts) {
		return f.Path, f.Issues, f.SeverityCounts
	})
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// sortBy orders items by opts.SortBy. Ties fall back to the key so output
// is stable across runs.
func sortBy[T any](items []T, opts Options, fields func(T) (string, int, SeverityCounts)) {
	slices.SortFunc(items, func(left, right T) int {
		lKey, lIssues, lCounts := fields(left)
		rKey, rIssues, rCounts := fields(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = cmp.Or(
				cmp.Compare(rCounts.Errors, lCounts.Errors),
				cmp.Compare(rCounts.Warnings, lCounts.Warnings),
				cmp.Compare(rIssues, lIssues),
			)
		default:
			result = cmp.Compare(lIssues, rIssues)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(lKey, rKey))
	})
}
