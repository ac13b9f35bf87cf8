package analysis

import "github.com/yaklabco/aspxgen/pkg/config"

// SortField selects the order of the ByFile and ByCheck views.
type SortField string

const (
	// SortByCount sorts by issue count.
	SortByCount SortField = "count"
	// SortByAlpha sorts by path or check ID, always ascending.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts errors first, then warnings, then the rest.
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	IncludeDiagnostics  bool
	IncludeByFile       bool
	IncludeByCheck      bool
	IncludeDeclarations bool

	SortBy SortField

	// SortDesc applies to SortByCount only.
	SortDesc bool

	CheckFormat config.CheckFormat

	// WorkingDir makes paths relative. Empty keeps them as they are.
	WorkingDir string
}

// DefaultOptions returns options that include every view, sorted by count
// with the busiest first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics:  true,
		IncludeByFile:       true,
		IncludeByCheck:      true,
		IncludeDeclarations: true,
		SortBy:              SortByCount,
		SortDesc:            true,
		CheckFormat:         config.CheckFormatName,
	}
}
