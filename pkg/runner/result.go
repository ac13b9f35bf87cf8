package runner

import (
	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
)

// FileOutcome is the pipeline result for one discovered document.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *check.PipelineResult

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts documents whose fixes were not written.
	FilesSkipped int
	FilesErrored int

	DiagnosticsTotal      int
	DiagnosticsFixable    int
	DiagnosticsBySeverity map[string]int

	FilesWithIssues  int
	FilesModified    int
	DiagnosticsFixed int

	// ControlsDeclared is the number of control fields across all
	// generated declarations.
	ControlsDeclared int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered as discovered (sorted by path).
	Files []FileOutcome
	Stats Stats

	// Errors holds failures not tied to a single document.
	Errors []error
}

// HasFailures reports whether any error-severity diagnostic occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostic occurred.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += pr.TotalEditsApplied

	if pr.FileResult == nil {
		return
	}
	if pr.Declarations != nil {
		r.Stats.ControlsDeclared += len(pr.Declarations.Fields)
	}

	count := len(pr.Diagnostics)
	r.Stats.DiagnosticsTotal += count
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	if count > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range pr.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
