package typeinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/typeinfo"
)

func TestAssignableTo(t *testing.T) {
	t.Parallel()

	c := typeinfo.Builtin()
	button, ok := c.Lookup("System.Web.UI.WebControls.Button")
	require.True(t, ok)
	content, ok := c.Lookup(typeinfo.TypeContent)
	require.True(t, ok)

	assert.True(t, typeinfo.AssignableTo(c, button, typeinfo.TypeControl))
	assert.True(t, typeinfo.AssignableTo(c, button, "System.Web.UI.WebControls.WebControl"))
	assert.False(t, typeinfo.AssignableTo(c, button, typeinfo.TypeContent))
	assert.True(t, typeinfo.AssignableTo(c, content, typeinfo.TypeContent))
	assert.False(t, typeinfo.AssignableTo(c, nil, typeinfo.TypeControl))
}

func TestAssignableTo_UnknownBase(t *testing.T) {
	t.Parallel()

	c := typeinfo.NewCatalog()
	c.Add(typeinfo.Type{Name: "X", Base: "Missing.Base"})

	x, _ := c.Lookup("X")
	assert.True(t, typeinfo.AssignableTo(c, x, "Missing.Base"))
	assert.False(t, typeinfo.AssignableTo(c, x, "Other"))
}

func TestAncestors_Cycle(t *testing.T) {
	t.Parallel()

	c := typeinfo.NewCatalog()
	c.Add(typeinfo.Type{Name: "A", Base: "B"})
	c.Add(typeinfo.Type{Name: "B", Base: "A"})

	a, _ := c.Lookup("A")
	assert.Len(t, typeinfo.Ancestors(c, a), 2)
}

func TestParseChildrenOf(t *testing.T) {
	t.Parallel()

	c := typeinfo.Builtin()

	tests := []struct {
		typeName     string
		wantProps    bool
		wantDefault  string
		wantExplicit bool
	}{
		{"System.Web.UI.WebControls.DropDownList", true, "Items", true},
		{"System.Web.UI.WebControls.Button", true, "", true},
		{"System.Web.UI.WebControls.Label", false, "", true},
		{"System.Web.UI.WebControls.Panel", false, "", true},
		{"System.Web.UI.HtmlControls.HtmlGenericControl", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			t.Parallel()

			ty, ok := c.Lookup(tt.typeName)
			require.True(t, ok)

			pc, found := typeinfo.ParseChildrenOf(c, ty)
			assert.Equal(t, tt.wantExplicit, found)
			if found {
				assert.Equal(t, tt.wantProps, pc.AsProperties)
				assert.Equal(t, tt.wantDefault, pc.DefaultProperty)
			}
		})
	}
}

func TestFindPropertyAndClassify(t *testing.T) {
	t.Parallel()

	c := typeinfo.Builtin()
	grid, ok := c.Lookup("System.Web.UI.WebControls.GridView")
	require.True(t, ok)
	form, ok := c.Lookup("System.Web.UI.WebControls.FormView")
	require.True(t, ok)

	tests := []struct {
		owner *typeinfo.Type
		prop  string
		want  typeinfo.PropertyKind
	}{
		{grid, "columns", typeinfo.PropertyCollection},
		{grid, "EmptyDataTemplate", typeinfo.PropertyTemplate},
		{grid, "HeaderStyle", typeinfo.PropertyComplex},
		{grid, "CssClass", typeinfo.PropertyScalar},
		{grid, "Width", typeinfo.PropertyScalar},
		{grid, "Visible", typeinfo.PropertyScalar},
		{form, "ItemTemplate", typeinfo.PropertyTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			t.Parallel()

			prop, ok := typeinfo.FindProperty(c, tt.owner, tt.prop)
			require.True(t, ok)

			kind, _ := typeinfo.Classify(c, prop)
			assert.Equal(t, tt.want, kind, "kind %s", kind)
		})
	}

	itemTemplate, _ := typeinfo.FindProperty(c, form, "ItemTemplate")
	assert.True(t, itemTemplate.SingleInstance)

	_, ok = typeinfo.FindProperty(c, grid, "NoSuchProperty")
	assert.False(t, ok)
}

func TestClassify_CollectionWinsOverTemplate(t *testing.T) {
	t.Parallel()

	c := typeinfo.NewCatalog()
	p := &typeinfo.Property{Name: "Both", Type: "Unknown", Collection: true, Template: true}

	kind, _ := typeinfo.Classify(c, p)
	assert.Equal(t, typeinfo.PropertyCollection, kind)

	unknown := &typeinfo.Property{Name: "U", Type: "Unknown"}
	kind, pt := typeinfo.Classify(c, unknown)
	assert.Equal(t, typeinfo.PropertyScalar, kind)
	assert.Nil(t, pt)
}

func TestBuilderOf(t *testing.T) {
	t.Parallel()

	c := typeinfo.NewCatalog()
	c.Add(typeinfo.Type{Name: "Base", Builder: &typeinfo.Builder{Type: "BaseBuilder"}})
	c.Add(typeinfo.Type{Name: "Derived", Base: "Base"})

	derived, _ := c.Lookup("Derived")
	b, ok := typeinfo.BuilderOf(c, derived)
	require.True(t, ok)
	assert.Equal(t, "BaseBuilder", b.Type)
}
