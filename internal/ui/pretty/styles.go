// Package pretty renders styled terminal output for diagnostics, declarations
// and run summaries with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indexes.
const (
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
	colorGray    = "8"
	colorSilver  = "7"
)

// Styles holds the renderers for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Diagnostics
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	CheckID    lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Fix diffs
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summaries
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Tables
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Designer declarations
	ClassName lipgloss.Style
	FieldName lipgloss.Style
	TypeName  lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// styler builds styles from palette colors. The plain styler ignores colors
// and attributes so every style renders text unchanged.
type styler struct {
	color bool
}

func (s styler) plain() lipgloss.Style {
	return lipgloss.NewStyle()
}

func (s styler) fg(color string) lipgloss.Style {
	if !s.color {
		return s.plain()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (s styler) bold(color string) lipgloss.Style {
	if !s.color {
		return s.plain()
	}
	style := lipgloss.NewStyle().Bold(true)
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}

func (s styler) italic(color string) lipgloss.Style {
	if !s.color {
		return s.plain()
	}
	return s.fg(color).Italic(true)
}

// NewStyles returns the output styles, colored when colorEnabled is set.
func NewStyles(colorEnabled bool) *Styles {
	st := styler{color: colorEnabled}

	return &Styles{
		Error:   st.bold(colorRed),
		Warning: st.bold(colorYellow),
		Info:    st.bold(colorBlue),

		FilePath:   st.bold(""),
		Location:   st.fg(colorGray),
		CheckID:    st.fg(colorGray),
		Message:    st.plain(),
		Suggestion: st.italic(colorGreen),
		SourceLine: st.fg(colorSilver),
		Caret:      st.fg(colorRed),

		DiffHeader:  st.bold(""),
		DiffHunk:    st.fg(colorCyan),
		DiffAdd:     st.fg(colorGreen),
		DiffRemove:  st.fg(colorRed),
		DiffContext: st.fg(colorGray),

		SummaryTitle: st.bold(""),
		SummaryValue: st.plain(),
		Success:      st.bold(colorGreen),
		Failure:      st.bold(colorRed),

		TableHeader:    st.bold(colorSilver),
		TableErrorRow:  st.fg(colorRed),
		TableWarnRow:   st.fg(colorYellow),
		TableInfoRow:   st.fg(colorBlue),
		TableFixable:   st.fg(colorGreen),
		TableLegend:    st.italic(colorGray),
		TableSeparator: st.fg(colorGray),

		ClassName: st.bold(colorMagenta),
		FieldName: st.fg(colorCyan),
		TypeName:  st.fg(colorGray),

		Dim:  st.fg(colorGray),
		Bold: st.bold(""),
	}
}

// IsColorEnabled reports whether output to writer should be colored.
// Mode is "always", "never" or "auto"; anything else means auto. In auto
// mode color needs a terminal writer and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
