package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/aspxgen/pkg/analysis"
)

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version      string                      `json:"version"`
	Files        []JSONFileResult            `json:"files"`
	Declarations []analysis.DeclarationEntry `json:"declarations,omitempty"`
	Summary      analysis.Totals             `json:"summary"`
}

// JSONFileResult holds the diagnostics of one document.
type JSONFileResult struct {
	Path        string                     `json:"path"`
	Diagnostics []analysis.DiagnosticEntry `json:"diagnostics"`
	Error       string                     `json:"error,omitempty"`
}

// JSONRenderer writes a report as JSON.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(buildJSONOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return bw.Flush()
}

// buildJSONOutput groups the flat diagnostic list by document. Documents
// keep their report order; failed documents carry their error.
func buildJSONOutput(report *analysis.Report) *JSONOutput {
	output := &JSONOutput{
		Version:      report.Version,
		Files:        make([]JSONFileResult, 0, len(report.ByFile)+len(report.Failures)),
		Declarations: report.Declarations,
		Summary:      report.Totals,
	}

	index := make(map[string]int)
	for _, diag := range report.Diagnostics {
		i, ok := index[diag.FilePath]
		if !ok {
			i = len(output.Files)
			index[diag.FilePath] = i
			output.Files = append(output.Files, JSONFileResult{Path: diag.FilePath})
		}
		output.Files[i].Diagnostics = append(output.Files[i].Diagnostics, diag)
	}
	for _, failure := range report.Failures {
		output.Files = append(output.Files, JSONFileResult{
			Path:        failure.FilePath,
			Diagnostics: []analysis.DiagnosticEntry{},
			Error:       failure.Error,
		})
	}

	return output
}
