package checks

import (
	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/parser"
)

// ParseFailureCheck reports parse sessions that failed and MasterType or
// PreviousPageType directives whose virtual path cannot be resolved.
type ParseFailureCheck struct {
	check.BaseCheck
}

// NewParseFailureCheck creates the parse-failure check.
func NewParseFailureCheck() *ParseFailureCheck {
	return &ParseFailureCheck{
		BaseCheck: check.NewBaseCheck(
			"AX001",
			"parse-failure",
			"The document or a strongly typed page reference could not be parsed",
			[]string{"parse"},
			false,
		).WithSeverity(config.SeverityError),
	}
}

// Apply implements check.Check.
func (c *ParseFailureCheck) Apply(ctx *check.Context) ([]check.Diagnostic, error) {
	var failures []*parser.ParseError
	if ctx.ParseErr != nil {
		failures = append(failures, ctx.ParseErr)
	}
	if ctx.Result != nil {
		failures = append(failures, ctx.Result.TypeErrors...)
	}

	diags := make([]check.Diagnostic, 0, len(failures))
	for _, perr := range failures {
		diags = append(diags, check.NewDiagnostic(c, ctx.Path, perr.Err.Error()).
			WithRange(perr.Line, perr.Column, perr.Line, perr.Column).
			Build())
	}
	return diags, nil
}
