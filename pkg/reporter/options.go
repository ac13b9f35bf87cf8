package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/aspxgen/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	Writer      io.Writer
	ErrorWriter io.Writer

	Format Format

	// Color is "auto" (default), "always" or "never".
	Color string

	// ShowContext prints the source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints aggregate statistics after the results.
	ShowSummary bool

	// GroupByFile groups text output under a header per document.
	GroupByFile bool

	// Compact minifies JSON and SARIF output.
	Compact bool

	// PerFile prints one table per document (table format only).
	PerFile bool

	CheckFormat  config.CheckFormat
	SummaryOrder config.SummaryOrder

	// WorkingDir makes paths relative. Empty keeps them as they are.
	WorkingDir string

	// ToolVersion is written into SARIF and HTML output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		CheckFormat:  config.CheckFormatName,
		SummaryOrder: config.SummaryOrderChecks,
		ToolVersion:  "dev",
	}
}
