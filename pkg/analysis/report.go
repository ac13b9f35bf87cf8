package analysis

import "time"

// Report holds the views renderers draw from. Analyze computes it once per run.
type Report struct {
	Diagnostics  []DiagnosticEntry  `json:"diagnostics,omitempty"`
	ByFile       []FileAnalysis     `json:"byFile,omitempty"`
	ByCheck      []CheckAnalysis    `json:"byCheck,omitempty"`
	Declarations []DeclarationEntry `json:"declarations,omitempty"`
	Failures     []FailureEntry     `json:"failures,omitempty"`

	Totals Totals `json:"summary"`

	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic with a display path.
type DiagnosticEntry struct {
	FilePath    string     `json:"filePath"`
	CheckID     string     `json:"checkId"`
	CheckName   string     `json:"checkName"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	Suggestion  string     `json:"suggestion,omitempty"`
	Fixable     bool       `json:"fixable"`
	Fixes       []FixEntry `json:"fixes,omitempty"`
}

// FixEntry is a byte-offset text edit.
type FixEntry struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// DeclarationEntry summarizes the generated declarations of one document.
type DeclarationEntry struct {
	FilePath    string            `json:"filePath"`
	VirtualPath string            `json:"virtualPath"`
	ClassName   string            `json:"className"`
	Language    string            `json:"language,omitempty"`
	Master      string            `json:"master,omitempty"`
	Previous    string            `json:"previousPage,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// FailureEntry is a document that could not be processed.
type FailureEntry struct {
	FilePath string `json:"filePath"`
	Error    string `json:"error"`
}

// SeverityCounts counts diagnostics per severity.
type SeverityCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *SeverityCounts) add(severity string) {
	switch severity {
	case severityError:
		c.Errors++
	case severityWarning:
		c.Warnings++
	case severityInfo:
		c.Infos++
	}
}

// Totals are the run-wide counts.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesFailed     int `json:"filesFailed"`
	FilesModified   int `json:"filesModified"`
	Issues          int `json:"totalIssues"`
	SeverityCounts
	Fixable  int `json:"fixable"`
	Controls int `json:"controlsDeclared"`
}

// HasIssues reports whether any diagnostic was found.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any error-severity diagnostic was found.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis aggregates the diagnostics of one document.
type FileAnalysis struct {
	Path   string `json:"path"`
	Issues int    `json:"issues"`
	SeverityCounts
	Checks []string `json:"checks,omitempty"`
}

// CheckAnalysis aggregates the diagnostics of one check.
type CheckAnalysis struct {
	CheckID   string `json:"checkId"`
	CheckName string `json:"checkName"`

	// Label is the identifier in the configured check format.
	Label  string `json:"label"`
	Issues int    `json:"issues"`
	SeverityCounts
	Fixable bool     `json:"fixable"`
	Files   []string `json:"files,omitempty"`
}
