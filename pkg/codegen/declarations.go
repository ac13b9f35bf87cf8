// Package codegen turns parse results into the declarations a generated
// companion (designer) file holds: the partial class, one field per declared
// control and the strongly typed Master and PreviousPage properties.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/langdetect"
	"github.com/yaklabco/aspxgen/pkg/parser"
)

// ErrCaseConflict is returned when two control ids differ only by case in a
// case-sensitive code-behind language.
var ErrCaseConflict = errors.New("control ids differ only by case")

// Property names of the strongly typed page properties.
const (
	PropertyMaster       = "Master"
	PropertyPreviousPage = "PreviousPage"
)

// Field is a control field of the generated class.
type Field struct {
	Name     string `json:"name"`
	TypeName string `json:"type"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// Property is a strongly typed property of the generated class.
type Property struct {
	Name     string `json:"name"`
	TypeName string `json:"type"`
}

// Declarations is the language-neutral content of a designer file.
type Declarations struct {
	VirtualPath string              `json:"virtualPath"`
	Namespace   string              `json:"namespace,omitempty"`
	ClassName   string              `json:"className"`
	Language    langdetect.Language `json:"language,omitempty"`
	Fields      []Field             `json:"fields"`
	Properties  []Property          `json:"properties,omitempty"`
}

// FullClassName returns the namespace qualified class name.
func (d *Declarations) FullClassName() string {
	if d.Namespace == "" {
		return d.ClassName
	}
	return d.Namespace + "." + d.ClassName
}

// Field returns the field with the given name.
func (d *Declarations) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Build collects the declarations of a parse result.
//
// Controls without an id or a declare type get no field. When an id repeats
// exactly, the first control wins. In a case-sensitive language, ids that
// differ only by case are reported as ErrCaseConflict; the declarations are
// still returned so callers can report every conflict.
func Build(result *parser.Result) (*Declarations, error) {
	decls := &Declarations{
		VirtualPath: result.VirtualPath,
		Namespace:   result.ClassName.Namespace,
		ClassName:   result.ClassName.Name,
		Language:    langdetect.ForDirective(result.MainDirective),
		Fields:      make([]Field, 0, len(result.Controls)),
	}

	var errs []error
	byName := make(map[string]Field, len(result.Controls))
	byLower := make(map[string]Field, len(result.Controls))
	caseSensitive := decls.Language.CaseSensitive()

	for _, ci := range result.Controls {
		if ci.ID == "" || ci.DeclareTypeName == "" {
			continue
		}
		if _, seen := byName[ci.ID]; seen {
			continue
		}

		field := Field{Name: ci.ID, TypeName: ci.DeclareTypeName}
		if ci.Element != nil && result.Document != nil {
			field.Line, field.Column = result.Document.Position(ci.Element)
		}

		lower := strings.ToLower(ci.ID)
		if prev, clash := byLower[lower]; clash && caseSensitive {
			errs = append(errs, &ConflictError{First: prev, Second: field})
		} else if !clash {
			byLower[lower] = field
		}

		byName[ci.ID] = field
		decls.Fields = append(decls.Fields, field)
	}

	if result.MasterType != "" {
		decls.Properties = append(decls.Properties, Property{Name: PropertyMaster, TypeName: result.MasterType})
	}
	if result.PreviousPageType != "" {
		decls.Properties = append(decls.Properties, Property{Name: PropertyPreviousPage, TypeName: result.PreviousPageType})
	}

	return decls, errors.Join(errs...)
}

// ConflictError names two fields whose ids differ only by case.
type ConflictError struct {
	First  Field
	Second Field
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %q (line %d) and %q (line %d)",
		ErrCaseConflict, e.First.Name, e.First.Line, e.Second.Name, e.Second.Line)
}

func (e *ConflictError) Unwrap() error {
	return ErrCaseConflict
}
