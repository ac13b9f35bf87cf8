// Package controls resolves server tags to control types and walks the
// document tree to collect the controls a page declares.
package controls

import (
	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/markup"
	"github.com/yaklabco/aspxgen/pkg/typeinfo"
)

// Resolution tells which family a tag resolved through.
type Resolution int

const (
	// Unresolved tags matched no register directive or HTML table.
	Unresolved Resolution = iota

	// HTML tags have no prefix and map to System.Web.UI.HtmlControls.
	HTML

	// UserControl tags are registered with src and tagname.
	UserControl

	// Custom tags are registered with a namespace and optional assembly.
	Custom
)

func (r Resolution) String() string {
	switch r {
	case HTML:
		return "html"
	case UserControl:
		return "user-control"
	case Custom:
		return "custom"
	default:
		return "unresolved"
	}
}

// Info is the resolved description of one server control.
type Info struct {
	// ID is the value of the id attribute. Empty when the tag has none.
	ID string

	// TypeName is the resolved type name, or the last name attempted when
	// no type could be found.
	TypeName string

	Resolution Resolution

	// ControlType is the catalog entry for TypeName, if any.
	ControlType *typeinfo.Type

	// BuilderType names the control builder attached to ControlType.
	BuilderType string

	// DeclareTypeName is the type of the generated field. It defaults to
	// TypeName.
	DeclareTypeName string
	DeclareType     *typeinfo.Type

	// ParseChildrenAsProperties means nested tags are properties.
	ParseChildrenAsProperties bool

	// DefaultProperty receives nested markup when set.
	DefaultProperty string

	// Directive is the register directive the type came from. Nil for
	// HTML controls.
	Directive *directive.Directive

	// Element is the tag the control was declared with.
	Element *markup.Element
}

// IsHTMLControl reports whether the tag resolved through the HTML tables.
func (ci *Info) IsHTMLControl() bool { return ci.Resolution == HTML }

// IsUserControl reports whether the tag is a registered user control.
func (ci *Info) IsUserControl() bool { return ci.Resolution == UserControl }

// IsCustomControl reports whether the tag resolved through a namespace registration.
func (ci *Info) IsCustomControl() bool { return ci.Resolution == Custom }
