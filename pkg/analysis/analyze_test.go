package analysis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fix"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

func outcome(path string, decls *codegen.Declarations, diags ...check.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &check.PipelineResult{
			Path:       path,
			FileResult: &check.FileResult{Diagnostics: diags, Declarations: decls},
		},
	}
}

var (
	duplicateID = check.Diagnostic{CheckID: "AX005", CheckName: "duplicate-id", Severity: config.SeverityWarning, Message: "dup"}
	conflict    = check.Diagnostic{CheckID: "AX004", CheckName: "case-conflict", Severity: config.SeverityError, Message: "case"}
	codeFile    = check.Diagnostic{
		CheckID:   "AX006",
		CheckName: "codefile-directive",
		Severity:  config.SeverityInfo,
		FixEdits:  []fix.TextEdit{{StartOffset: 3, EndOffset: 3, NewText: "x"}},
	}
)

func sampleResult() *runner.Result {
	home := &codegen.Declarations{
		VirtualPath: "/Home.aspx",
		Namespace:   "Site",
		ClassName:   "Home",
		Fields: []codegen.Field{
			{Name: "Title", TypeName: "System.Web.UI.WebControls.Label"},
			{Name: "Grid", TypeName: "System.Web.UI.WebControls.GridView"},
		},
		Properties: []codegen.Property{{Name: codegen.PropertyMaster, TypeName: "Site.SiteMaster"}},
	}
	return &runner.Result{Files: []runner.FileOutcome{
		outcome("/site/Cart.aspx", nil, conflict, duplicateID, duplicateID),
		outcome("/site/Edit.aspx", nil, codeFile),
		outcome("/site/Home.aspx", home),
		{Path: "/site/Broken.aspx", Error: errors.New("permission denied")},
	}}
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	want := Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesFailed:     1,
		Issues:          4,
		SeverityCounts:  SeverityCounts{Errors: 1, Warnings: 2, Infos: 1},
		Fixable:         1,
		Controls:        2,
	}
	if diff := cmp.Diff(want, report.Totals); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, report.Totals.HasErrors())
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, []FailureEntry{{FilePath: "/site/Broken.aspx", Error: "permission denied"}}, report.Failures)
}

func TestAnalyze_Views(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/site"
	opts.CheckFormat = config.CheckFormatCombined
	report := Analyze(sampleResult(), opts)

	require.Len(t, report.Diagnostics, 4)
	assert.Equal(t, "Cart.aspx", report.Diagnostics[0].FilePath)
	assert.True(t, report.Diagnostics[3].Fixable)
	assert.Equal(t, []FixEntry{{StartOffset: 3, EndOffset: 3, NewText: "x"}}, report.Diagnostics[3].Fixes)

	require.Len(t, report.ByCheck, 3)
	assert.Equal(t, "AX005", report.ByCheck[0].CheckID)
	assert.Equal(t, 2, report.ByCheck[0].Issues)
	assert.Equal(t, "AX005/duplicate-id", report.ByCheck[0].Label)
	// Equal counts fall back to the check ID.
	assert.Equal(t, "AX004", report.ByCheck[1].CheckID)
	assert.True(t, report.ByCheck[2].Fixable)

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, FileAnalysis{
		Path:           "Cart.aspx",
		Issues:         3,
		SeverityCounts: SeverityCounts{Errors: 1, Warnings: 2},
		Checks:         []string{"AX004", "AX005"},
	}, report.ByFile[0])

	require.Len(t, report.Declarations, 1)
	assert.Equal(t, DeclarationEntry{
		FilePath:    "Home.aspx",
		VirtualPath: "/Home.aspx",
		ClassName:   "Site.Home",
		Master:      "Site.SiteMaster",
		Fields: map[string]string{
			"Title": "System.Web.UI.WebControls.Label",
			"Grid":  "System.Web.UI.WebControls.GridView",
		},
	}, report.Declarations[0])
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("b.aspx", nil, duplicateID, duplicateID, duplicateID),
		outcome("a.aspx", nil, conflict),
		outcome("c.aspx", nil, codeFile, codeFile),
	}}

	tests := []struct {
		sortBy SortField
		desc   bool
		want   []string
	}{
		{SortByCount, true, []string{"b.aspx", "c.aspx", "a.aspx"}},
		{SortByCount, false, []string{"a.aspx", "c.aspx", "b.aspx"}},
		{SortByAlpha, true, []string{"a.aspx", "b.aspx", "c.aspx"}},
		{SortBySeverity, false, []string{"a.aspx", "b.aspx", "c.aspx"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sortBy), func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc

			var got []string
			for _, f := range Analyze(result, opts).ByFile {
				got = append(got, f.Path)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_OptionalViews(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{})
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByCheck)
	assert.Empty(t, report.Declarations)
	assert.Equal(t, 4, report.Totals.Issues)

	empty := Analyze(nil, DefaultOptions())
	assert.Zero(t, empty.Totals)
	assert.False(t, empty.Totals.HasIssues())
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/site/a.aspx", DisplayPath("/site/a.aspx", ""))
	assert.Equal(t, "pages/a.aspx", DisplayPath("/site/pages/a.aspx", "/site"))
	assert.Equal(t, "a.aspx", DisplayPath("a.aspx", "/site"))
}
