package checks

import (
	"fmt"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/directive"
)

// UserControlFallbackCheck reports user control registrations typed as
// System.Web.UI.UserControl because the control's own class could not be
// read: the src is outside the application, missing or part of a cycle.
type UserControlFallbackCheck struct {
	check.BaseCheck
}

// NewUserControlFallbackCheck creates the user-control-fallback check.
func NewUserControlFallbackCheck() *UserControlFallbackCheck {
	return &UserControlFallbackCheck{
		BaseCheck: check.NewBaseCheck(
			"AX003",
			"user-control-fallback",
			"A user control's class could not be determined and the generic user control type is used",
			[]string{"types", "user-control"},
			false,
		).WithSeverity(config.SeverityInfo),
	}
}

// Apply implements check.Check.
func (c *UserControlFallbackCheck) Apply(ctx *check.Context) ([]check.Diagnostic, error) {
	if ctx.Result == nil {
		return nil, nil
	}

	diags := make([]check.Diagnostic, 0, len(ctx.Result.Fallbacks))
	for _, fb := range ctx.Result.Fallbacks {
		d := fb.Directive
		message := fmt.Sprintf("user control %s:%s is typed as %s: %v",
			d.Value(directive.AttrTagPrefix), d.Value(directive.AttrTagName),
			directive.DefaultUserControlType, fb.Err)
		if d.Element == nil {
			message = "configured " + message
		}
		diags = append(diags, ctx.At(c, d.Element, message).Build())
	}
	return diags, nil
}
