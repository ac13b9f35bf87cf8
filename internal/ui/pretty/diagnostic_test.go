package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aspxgen/internal/ui/pretty"
	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
)

func newDiagnostic() *check.Diagnostic {
	return &check.Diagnostic{
		CheckID:     "AX005",
		CheckName:   "duplicate-id",
		Message:     `control id "Total" is already declared`,
		Severity:    config.SeverityWarning,
		FilePath:    "Orders.aspx",
		StartLine:   3,
		StartColumn: 5,
	}
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  config.CheckFormat
		want    string
		notWant string
	}{
		{config.CheckFormatName, "(duplicate-id)", "(AX005)"},
		{config.CheckFormatID, "(AX005)", "(duplicate-id)"},
		{config.CheckFormatCombined, "(AX005/duplicate-id)", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			got := pretty.NewStyles(false).FormatDiagnostic(newDiagnostic(), false, "", tt.format)

			assert.Contains(t, got, "Orders.aspx:3:5")
			assert.Contains(t, got, "warning")
			assert.Contains(t, got, `control id "Total" is already declared`)
			assert.Contains(t, got, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, got, tt.notWant)
			}
			assert.NotContains(t, got, "Suggestion:")
		})
	}
}

func TestFormatDiagnostic_ContextAndSuggestion(t *testing.T) {
	t.Parallel()

	diag := newDiagnostic()
	diag.Suggestion = "rename the second control"

	got := pretty.NewStyles(false).FormatDiagnostic(diag, true, `  <asp:TextBox id="Total" runat="server" />`, config.CheckFormatName)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, `          <asp:TextBox id="Total" runat="server" />`, lines[1])
	assert.Equal(t, "            ^", lines[2])
	assert.Contains(t, lines[3], "Suggestion: rename the second control")
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		caret  string
	}{
		{"first column", "<p>", 1, "        ^"},
		{"tabs expanded", "\t\t<p>", 3, "                ^"},
		{"runes not bytes", "éé<p>", 3, "          ^"},
		{"past the end", "ab", 4, "           ^"},
		{"no caret", "ab", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := strings.Split(strings.TrimSuffix(styles.FormatSourceContext(tt.line, tt.column), "\n"), "\n")
			if tt.caret == "" {
				assert.Len(t, lines, 1)
				return
			}
			assert.Len(t, lines, 2)
			assert.Equal(t, tt.caret, lines[1])
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "custom", styles.FormatSeverity("custom"))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "Default.aspx", styles.FormatFileHeader("Default.aspx", 0))
	assert.Equal(t, "Default.aspx (1 issue)", styles.FormatFileHeader("Default.aspx", 1))
	assert.Equal(t, "Default.aspx (3 issues)", styles.FormatFileHeader("Default.aspx", 3))
}
