// Package directive models <%@ ... %> directives and the register table
// that maps tag prefixes to control namespaces and user controls.
package directive

import (
	"sort"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/markup"
)

// Directive names with special meaning.
const (
	NamePage             = "page"
	NameControl          = "control"
	NameMaster           = "master"
	NameRegister         = "register"
	NameMasterType       = "mastertype"
	NamePreviousPageType = "previouspagetype"
)

// Attribute keys read from directives. Keys are lower-case.
const (
	AttrTagPrefix   = "tagprefix"
	AttrTagName     = "tagname"
	AttrNamespace   = "namespace"
	AttrAssembly    = "assembly"
	AttrSrc         = "src"
	AttrInherits    = "inherits"
	AttrCodeFile    = "codefile"
	AttrCodeBehind  = "codebehind"
	AttrLanguage    = "language"
	AttrVirtualPath = "virtualpath"
	AttrTypeName    = "typename"
)

// Directive is the name and attribute map of a directive.
type Directive struct {
	// Name is lower-cased. Empty for a directive without a name.
	Name string

	// Attrs maps lower-cased attribute names to unquoted values.
	// A repeated attribute keeps its last value.
	Attrs map[string]string

	// Element is the source element. Nil for registrations that did not come
	// from markup.
	Element *markup.Element
}

// New creates a directive with the given name and attributes.
// Keys are lower-cased.
func New(name string, attrs map[string]string) *Directive {
	d := &Directive{Name: strings.ToLower(name), Attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		d.Attrs[strings.ToLower(k)] = v
	}
	return d
}

// FromElement converts a directive element. It returns nil for other kinds.
func FromElement(e *markup.Element) *Directive {
	if e == nil || e.Kind != markup.KindDirective {
		return nil
	}

	d := &Directive{Name: e.LowerName(), Attrs: make(map[string]string), Element: e}
	for _, attr := range e.Attrs {
		if val, ok := attr.Value(); ok {
			d.Attrs[attr.LowerName()] = val
		}
	}
	return d
}

// IsMain reports whether d is the page, control or master directive.
// A directive without a name is the main directive of its file type.
func (d *Directive) IsMain() bool {
	switch d.Name {
	case "", NamePage, NameControl, NameMaster:
		return true
	default:
		return false
	}
}

// Value returns the attribute value, or "" when absent.
func (d *Directive) Value(key string) string {
	return d.Attrs[key]
}

// Has reports whether the attribute is present with a non-empty value.
func (d *Directive) Has(key string) bool {
	return d.Attrs[key] != ""
}

// IsUserControlRegistration reports whether d registers a user control:
// src and tagname set, namespace and assembly empty.
func (d *Directive) IsUserControlRegistration() bool {
	return d.Has(AttrSrc) && d.Has(AttrTagName) && !d.Has(AttrNamespace) && !d.Has(AttrAssembly)
}

// IsNamespaceRegistration reports whether d maps a prefix to a namespace:
// namespace set, src and tagname empty.
func (d *Directive) IsNamespaceRegistration() bool {
	return d.Has(AttrNamespace) && !d.Has(AttrSrc) && !d.Has(AttrTagName)
}

// String renders d as directive markup. Attributes are sorted by key.
func (d *Directive) String() string {
	keys := make([]string, 0, len(d.Attrs))
	for k := range d.Attrs {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("<%@ ")
	sb.WriteString(d.Name)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(d.Attrs[k])
		sb.WriteString(`"`)
	}
	sb.WriteString(" %>")
	return sb.String()
}
