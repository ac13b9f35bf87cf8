package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/markup"
)

func parseDirective(t *testing.T, text string) *directive.Directive {
	t.Helper()

	doc := markup.Parse(text, "4.8")
	dirs := doc.Directives()
	require.NotEmpty(t, dirs)
	return directive.FromElement(dirs[0])
}

func TestFromElement(t *testing.T) {
	t.Parallel()

	d := parseDirective(t, `<%@ Page Language="C#" Inherits="My.Page" CodeFile="Default.aspx.cs" %>`)

	assert.Equal(t, "page", d.Name)
	assert.True(t, d.IsMain())
	assert.Equal(t, "My.Page", d.Value(directive.AttrInherits))
	assert.Equal(t, "Default.aspx.cs", d.Value(directive.AttrCodeFile))
	assert.NotNil(t, d.Element)
}

func TestFromElement_NonDirective(t *testing.T) {
	t.Parallel()

	doc := markup.Parse("<b>", "4.8")
	assert.Nil(t, directive.FromElement(doc.Elements[0]))
}

func TestIsMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"", true},
		{"page", true},
		{"Control", true},
		{"master", true},
		{"register", false},
		{"import", false},
		{"mastertype", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := directive.New(tt.name, nil)
			assert.Equal(t, tt.want, d.IsMain())
		})
	}
}

func TestDirective_String(t *testing.T) {
	t.Parallel()

	d := directive.New("Register", map[string]string{
		"TagPrefix": "uc",
		"Namespace": "My.Controls",
	})

	assert.Equal(t, `<%@ register namespace="My.Controls" tagprefix="uc" %>`, d.String())

	// Rendered directives parse back to the same attributes.
	round := parseDirective(t, d.String())
	assert.Equal(t, d.Name, round.Name)
	assert.Equal(t, d.Attrs, round.Attrs)
}

func TestRegistrationKinds(t *testing.T) {
	t.Parallel()

	uc := directive.New("register", map[string]string{"tagprefix": "uc", "tagname": "Menu", "src": "~/Menu.ascx"})
	ns := directive.New("register", map[string]string{"tagprefix": "x", "namespace": "X.Controls", "assembly": "X"})
	mixed := directive.New("register", map[string]string{"tagprefix": "m", "tagname": "T", "src": "t.ascx", "namespace": "N"})

	assert.True(t, uc.IsUserControlRegistration())
	assert.False(t, uc.IsNamespaceRegistration())
	assert.True(t, ns.IsNamespaceRegistration())
	assert.False(t, ns.IsUserControlRegistration())
	assert.False(t, mixed.IsUserControlRegistration())
	assert.False(t, mixed.IsNamespaceRegistration())
}

func TestParseClassName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want directive.ClassName
	}{
		{"My.Site.Default", directive.ClassName{Full: "My.Site.Default", Namespace: "My.Site", Name: "Default"}},
		{" My.Page , MyAssembly ", directive.ClassName{Full: "My.Page", Namespace: "My", Name: "Page"}},
		{"Default", directive.ClassName{Full: "Default", Name: "Default"}},
		{"", directive.ClassName{}},
		{",Asm", directive.ClassName{Full: ",Asm", Name: ",Asm"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, directive.ParseClassName(tt.in))
		})
	}
}

func TestTypeNameFromInherits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "My.Control", directive.TypeNameFromInherits(".My.Control, Asm"))
	assert.Equal(t, ".", directive.TypeNameFromInherits("."))
	assert.Equal(t, "A", directive.TypeNameFromInherits("A"))
}

func TestParser_Main(t *testing.T) {
	t.Parallel()

	text := `<%@ Register TagPrefix="uc" TagName="X" Src="x.ascx" %>
<%@ Control Inherits="My.Controls.Menu" %>
<%@ Page Inherits="Ignored" %>`

	d, ok := directive.NewParser(text, "4.8").Main()
	require.True(t, ok)
	assert.Equal(t, "control", d.Name)
	assert.Equal(t, "My.Controls.Menu", d.Value(directive.AttrInherits))
}

func TestParser_NoDirective(t *testing.T) {
	t.Parallel()

	_, ok := directive.NewParser("<p>no directives</p>", "4.8").Main()
	assert.False(t, ok)
}
