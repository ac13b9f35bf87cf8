package checks_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/check/checks"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fix"
	"github.com/yaklabco/aspxgen/pkg/parser"
	"github.com/yaklabco/aspxgen/pkg/vpath"
)

func checkPage(t *testing.T, cfg *config.Config, docs map[string]string, content []byte) *check.FileResult {
	t.Helper()

	registry := check.NewRegistry()
	checks.RegisterAll(registry)

	app := vpath.NewApp("/", "")
	engine := check.NewEngine(parser.Options{App: app, Source: &vpath.MapSource{App: app, Docs: docs}}, registry)

	result, err := engine.CheckFile(context.Background(), "Default.aspx", content, cfg)
	require.NoError(t, err)
	require.Empty(t, result.CheckErrors)
	return result
}

// linesByCheck maps check IDs to the start lines of their diagnostics.
func linesByCheck(diags []check.Diagnostic) map[string][]int {
	out := make(map[string][]int)
	for _, d := range diags {
		out[d.CheckID] = append(out[d.CheckID], d.StartLine)
	}
	for _, lines := range out {
		sort.Ints(lines)
	}
	return out
}

func TestBuiltinChecks(t *testing.T) {
	t.Parallel()

	const page = `<%@ Page Language="C#" Inherits="Site.Home" %>
<%@ Register TagPrefix="uc" TagName="Menu" Src="~/Missing.ascx" %>
<uc:Menu id="Nav" runat="server" />
<uc:Other id="Other" runat="server" />
<foo:Bar id="X" runat="server" />
<asp:Label id="Title" runat="server" />
<asp:Label id="Title" runat="server" />
<asp:Label id="title" runat="server" />
<asp:Nope id="N" runat="server" />`

	result := checkPage(t, nil, nil, []byte(page))

	assert.Equal(t, map[string][]int{
		"AX002": {4, 9},
		"AX003": {2},
		"AX004": {8},
		"AX005": {7},
		"AX007": {5},
	}, linesByCheck(result.Diagnostics))

	for _, d := range result.Diagnostics {
		switch d.CheckID {
		case "AX004":
			assert.Equal(t, config.SeverityError, d.Severity)
			assert.Contains(t, d.Message, `"title"`)
		case "AX003":
			assert.Equal(t, config.SeverityInfo, d.Severity)
			assert.Contains(t, d.Message, "uc:Menu")
		case "AX007":
			assert.Contains(t, d.Message, `"foo"`)
		}
	}
}

func TestBuiltinChecks_Options(t *testing.T) {
	t.Parallel()

	const page = `<%@ Page Inherits="P" %>
<foo:Bar id="X" runat="server" />
<asp:Nope id="N" runat="server" />`

	cfg := config.NewConfig()
	cfg.Checks["unresolved-type"] = config.CheckConfig{Options: map[string]any{
		"ignore_types": []any{"system.web.ui.webcontrols.nope"},
	}}
	cfg.Checks["AX007"] = config.CheckConfig{Options: map[string]any{
		"ignore_prefixes": []string{"FOO"},
	}}

	result := checkPage(t, cfg, nil, []byte(page))
	assert.Empty(t, result.Diagnostics)
}

func TestBuiltinChecks_VisualBasicIgnoresCase(t *testing.T) {
	t.Parallel()

	const page = `<%@ Page Language="VB" Inherits="P" %>
<asp:Label id="total" runat="server" />
<asp:Label id="Total" runat="server" />`

	result := checkPage(t, nil, nil, []byte(page))
	assert.Empty(t, result.Diagnostics)
}

func TestParseFailure(t *testing.T) {
	t.Parallel()

	const page = "<%@ Page Inherits=\"P\" %>\n  <%@ MasterType VirtualPath=\"~/Gone.master\" %>\n" +
		"<%@ PreviousPageType VirtualPath=\"/elsewhere/Search.aspx\" %>\n<asp:Label id=\"L1\" runat=\"server\" />"

	result := checkPage(t, nil, nil, []byte(page))
	require.Len(t, result.Diagnostics, 2)

	diag := result.Diagnostics[0]
	assert.Equal(t, "AX001", diag.CheckID)
	assert.Equal(t, "parse-failure", diag.CheckName)
	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, 2, diag.StartLine)
	assert.Equal(t, 3, diag.StartColumn)

	assert.Equal(t, "AX001", result.Diagnostics[1].CheckID)
	assert.Equal(t, 3, result.Diagnostics[1].StartLine)

	require.NotNil(t, result.Declarations)
	_, ok := result.Declarations.Field("L1")
	assert.True(t, ok)
}

func TestUserControlFallback_Resolved(t *testing.T) {
	t.Parallel()

	const page = `<%@ Page Inherits="P" %>
<%@ Register TagPrefix="uc" TagName="Menu" Src="~/Menu.ascx" %>
<uc:Menu id="Nav" runat="server" />`

	result := checkPage(t, nil, map[string]string{
		"~/Menu.ascx": `<%@ Control Inherits="Site.Menu" %>`,
	}, []byte(page))

	assert.Empty(t, result.Diagnostics)
	field, ok := result.Declarations.Field("Nav")
	require.True(t, ok)
	assert.Equal(t, "Site.Menu", field.TypeName)
}

func TestCodeFileDirective(t *testing.T) {
	t.Parallel()

	const (
		page  = "<%@ Page Language=\"C#\" CodeFile=\"Default.aspx.cs\" Inherits=\"Home\" %>\n<p>é</p>"
		fixed = "<%@ Page Language=\"C#\" CodeFile=\"Default.aspx.cs\" Inherits=\"Home\" CodeBehind=\"Default.aspx.cs\" %>\n<p>é</p>"
	)

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		result := checkPage(t, nil, nil, []byte(page))
		assert.Empty(t, result.Diagnostics)
	})

	tests := []struct {
		name   string
		prefix string
	}{
		{"utf-8", ""},
		{"utf-8 with bom", "\xEF\xBB\xBF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Fix = true
			cfg.EnableChecks = []string{"codefile-directive"}

			content := []byte(tt.prefix + page)
			result := checkPage(t, cfg, nil, content)

			require.Len(t, result.Diagnostics, 1)
			diag := result.Diagnostics[0]
			assert.Equal(t, "AX006", diag.CheckID)
			assert.Equal(t, config.SeverityInfo, diag.Severity)
			assert.Equal(t, 1, diag.StartLine)
			assert.True(t, diag.HasFix())

			require.Len(t, result.Edits, 1)
			assert.Equal(t, tt.prefix+fixed, string(fix.ApplyEdits(content, result.Edits)))
		})
	}

	t.Run("already has CodeBehind", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.EnableChecks = []string{"AX006"}

		result := checkPage(t, cfg, nil, []byte(fixed))
		assert.Empty(t, result.Diagnostics)
	})
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"AX001", "AX002", "AX003", "AX004", "AX005", "AX006", "AX007"},
		check.DefaultRegistry.IDs())

	require.NotNil(t, config.DefaultCheckInfoProvider)
	infos := config.DefaultCheckInfoProvider()
	require.Len(t, infos, 7)
	assert.True(t, infos[5].CanFix)
	assert.False(t, infos[5].Enabled)
}
