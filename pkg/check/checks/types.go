package checks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/controls"
	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/markup"
)

// UnresolvedTypeCheck reports server tags whose prefix is registered but
// which resolve to no known control type: namespace registrations whose
// type is missing from the catalog, and user control prefixes that do not
// declare the tag name.
//
// Options:
//
//	ignore_types: type names (case-insensitive) not to report
type UnresolvedTypeCheck struct {
	check.BaseCheck
}

// NewUnresolvedTypeCheck creates the unresolved-type check.
func NewUnresolvedTypeCheck() *UnresolvedTypeCheck {
	return &UnresolvedTypeCheck{
		BaseCheck: check.NewBaseCheck(
			"AX002",
			"unresolved-type",
			"A registered tag resolves to no known control type; its field cannot be typed",
			[]string{"types"},
			false,
		),
	}
}

// Apply implements check.Check.
func (c *UnresolvedTypeCheck) Apply(ctx *check.Context) ([]check.Diagnostic, error) {
	if ctx.Result == nil {
		return nil, nil
	}

	ignored := ctx.OptionStringSlice("ignore_types", nil)
	var diags []check.Diagnostic

	for _, ci := range ctx.Result.Controls {
		if ci.Resolution != controls.Custom || ci.ControlType != nil {
			continue
		}
		if slices.ContainsFunc(ignored, func(s string) bool { return strings.EqualFold(s, ci.TypeName) }) {
			continue
		}
		diags = append(diags, ctx.At(c, ci.Element,
			fmt.Sprintf("type %q of control %q not found", ci.TypeName, ci.ID)).
			WithSuggestion("add the type to a catalog listed under catalogs").
			Build())
	}

	for _, tag := range markup.ServerTags(ctx.Result.Document.Root) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("check cancelled: %w", ctx.Ctx.Err())
		}

		prefix, local := tag.SplitName()
		registers := ctx.Result.Registry.ForPrefix(prefix)
		if len(registers) == 0 || declaresTag(registers, local) {
			continue
		}
		diags = append(diags, ctx.At(c, tag,
			fmt.Sprintf("no registration of prefix %q declares tag %q", prefix, local)).
			Build())
	}
	return diags, nil
}

// declaresTag reports whether a namespace registration or a user control
// registration named local is among registers.
func declaresTag(registers []*directive.Directive, local string) bool {
	return slices.ContainsFunc(registers, func(d *directive.Directive) bool {
		if d.IsUserControlRegistration() {
			return strings.EqualFold(d.Value(directive.AttrTagName), strings.TrimSpace(local))
		}
		return d.IsNamespaceRegistration()
	})
}
