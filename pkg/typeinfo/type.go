// Package typeinfo describes control types and their properties.
//
// Type metadata comes from YAML catalogs: a built-in catalog covering the
// System.Web controls and any number of project catalogs for custom controls.
package typeinfo

import "strings"

// Well-known type names.
const (
	TypeObject             = "System.Object"
	TypeString             = "System.String"
	TypeControl            = "System.Web.UI.Control"
	TypeUserControl        = "System.Web.UI.UserControl"
	TypeContent            = "System.Web.UI.WebControls.Content"
	TypeHTMLGenericControl = "System.Web.UI.HtmlControls.HtmlGenericControl"
)

// Type is the metadata of one type.
type Type struct {
	// Name is the namespace-qualified type name.
	Name string `yaml:"name"`

	// Assembly is the simple name of the defining assembly.
	Assembly string `yaml:"assembly,omitempty"`

	// Base is the full name of the base type.
	Base string `yaml:"base,omitempty"`

	// Value marks value types (structs and enums). Value types and
	// System.String are scalars when used as property types.
	Value bool `yaml:"value,omitempty"`

	// Template marks types implementing the template contract.
	Template bool `yaml:"template,omitempty"`

	// Collection marks collection types.
	Collection bool `yaml:"collection,omitempty"`

	ParseChildren *ParseChildren `yaml:"parse_children,omitempty"`
	Builder       *Builder       `yaml:"builder,omitempty"`
	Properties    []Property     `yaml:"properties,omitempty"`
}

// ParseChildren says how a control interprets nested markup.
type ParseChildren struct {
	// AsProperties means child tags are properties, not controls.
	AsProperties bool `yaml:"as_properties"`

	// DefaultProperty receives the children when set.
	DefaultProperty string `yaml:"default_property,omitempty"`
}

// Builder describes a control builder attached to a control type.
type Builder struct {
	// Type is the builder's type name.
	Type string `yaml:"type"`

	// DeclareType is the field type the builder declares, when it differs
	// from the control type.
	DeclareType string `yaml:"declare_type,omitempty"`

	// DeclareTypeAttribute names a tag attribute whose value is the declare
	// type, for builders that pick the type from markup.
	DeclareTypeAttribute string `yaml:"declare_type_attribute,omitempty"`
}

// Property is a declared property of a type.
type Property struct {
	Name string `yaml:"name"`

	// Type is the full name of the property type.
	Type string `yaml:"type"`

	// Template overrides the property type's template marker.
	Template bool `yaml:"template,omitempty"`

	// SingleInstance marks templates instantiated once. Controls inside
	// them are declared on the page.
	SingleInstance bool `yaml:"single_instance,omitempty"`

	// Collection overrides the property type's collection marker.
	Collection bool `yaml:"collection,omitempty"`

	// IgnoreUnknownContent skips plain HTML inside a collection property.
	IgnoreUnknownContent bool `yaml:"ignore_unknown_content,omitempty"`
}

// Namespace returns the part of the name before the last dot.
func (t *Type) Namespace() string {
	if idx := strings.LastIndexByte(t.Name, '.'); idx >= 0 {
		return t.Name[:idx]
	}
	return ""
}

// ShortName returns the part of the name after the last dot.
func (t *Type) ShortName() string {
	if idx := strings.LastIndexByte(t.Name, '.'); idx >= 0 {
		return t.Name[idx+1:]
	}
	return t.Name
}

// IsScalar reports whether t is a string or a value type.
func (t *Type) IsScalar() bool {
	return t.Value || t.Name == TypeString
}

// SplitQualified splits an assembly-qualified name "Type, Assembly, Version=..."
// into the type name and the simple assembly name.
func SplitQualified(name string) (string, string) {
	typeName, rest, found := strings.Cut(name, ",")
	typeName = strings.TrimSpace(typeName)
	if !found {
		return typeName, ""
	}
	asm, _, _ := strings.Cut(rest, ",")
	return typeName, strings.TrimSpace(asm)
}
