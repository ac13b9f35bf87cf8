package controls

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/markup"
	"github.com/yaklabco/aspxgen/pkg/typeinfo"
)

var (
	errNoControl     = errors.New("markup declares no control")
	errNoBuilder     = errors.New("control type has no builder")
	errNoDeclareType = errors.New("builder declares no type")
)

// DeclareResolver refines the field type of a custom control whose type
// carries a control builder.
type DeclareResolver interface {
	// DeclareType returns the declare type name for the control declared by
	// e, registered through d.
	DeclareType(d *directive.Directive, e *markup.Element) (string, error)
}

// CatalogDeclareResolver reads declare rules from the type catalog. It
// re-parses the register directive together with the control's markup so
// the rule sees the control exactly as a standalone document would.
type CatalogDeclareResolver struct {
	Types   typeinfo.Resolver
	Version string
}

var _ DeclareResolver = (*CatalogDeclareResolver)(nil)

// DeclareType implements DeclareResolver.
func (c *CatalogDeclareResolver) DeclareType(d *directive.Directive, e *markup.Element) (string, error) {
	doc := markup.Parse(d.String()+e.OuterText(), c.Version)

	registry := directive.NewRegistry()
	for _, de := range doc.Directives() {
		if rd := directive.FromElement(de); rd.Name == directive.NameRegister {
			registry.Add(rd)
		}
	}

	tag, ok := markup.FindFirst(doc.Root, func(el *markup.Element) bool {
		return el.Kind == markup.KindTag
	})
	if !ok {
		return "", errNoControl
	}

	ci := NewResolver(registry, c.Types, c.Version).Resolve(tag)
	if ci.ControlType == nil {
		return "", fmt.Errorf("resolve %s: %w", tag.Name(), errNoControl)
	}

	b, ok := typeinfo.BuilderOf(c.Types, ci.ControlType)
	if !ok {
		return "", errNoBuilder
	}

	if b.DeclareTypeAttribute != "" {
		if v, found := tag.AttrValue(strings.ToLower(b.DeclareTypeAttribute)); found && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	if b.DeclareType != "" {
		return b.DeclareType, nil
	}
	return "", fmt.Errorf("%s: %w", b.Type, errNoDeclareType)
}
