package checks

import (
	"errors"
	"fmt"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
)

// CaseConflictCheck reports control ids that differ only by case in a
// case-sensitive code-behind language. Such a page does not compile once
// converted.
type CaseConflictCheck struct {
	check.BaseCheck
}

// NewCaseConflictCheck creates the case-conflict check.
func NewCaseConflictCheck() *CaseConflictCheck {
	return &CaseConflictCheck{
		BaseCheck: check.NewBaseCheck(
			"AX004",
			"case-conflict",
			"Control ids differ only by case in a case-sensitive language",
			[]string{"ids", "codegen"},
			false,
		).WithSeverity(config.SeverityError),
	}
}

// Apply implements check.Check.
func (c *CaseConflictCheck) Apply(ctx *check.Context) ([]check.Diagnostic, error) {
	var diags []check.Diagnostic
	for _, conflict := range conflicts(ctx.DeclErr) {
		diags = append(diags, check.NewDiagnostic(c, ctx.Path,
			fmt.Sprintf("control id %q differs only by case from %q (line %d)",
				conflict.Second.Name, conflict.First.Name, conflict.First.Line)).
			WithRange(conflict.Second.Line, conflict.Second.Column, conflict.Second.Line, conflict.Second.Column).
			WithSuggestion("rename one of the controls").
			Build())
	}
	return diags, nil
}

// conflicts flattens the conflicts joined into err.
func conflicts(err error) []*codegen.ConflictError {
	if err == nil {
		return nil
	}

	var out []*codegen.ConflictError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, conflicts(e)...)
		}
		return out
	}

	var conflict *codegen.ConflictError
	if errors.As(err, &conflict) {
		out = append(out, conflict)
	}
	return out
}

// DuplicateIDCheck reports controls that repeat an earlier id. Only the
// first control with an id gets a field.
type DuplicateIDCheck struct {
	check.BaseCheck
}

// NewDuplicateIDCheck creates the duplicate-id check.
func NewDuplicateIDCheck() *DuplicateIDCheck {
	return &DuplicateIDCheck{
		BaseCheck: check.NewBaseCheck(
			"AX005",
			"duplicate-id",
			"A control id is declared more than once; only the first declaration gets a field",
			[]string{"ids", "codegen"},
			false,
		),
	}
}

// Apply implements check.Check.
func (c *DuplicateIDCheck) Apply(ctx *check.Context) ([]check.Diagnostic, error) {
	if ctx.Result == nil {
		return nil, nil
	}

	first := make(map[string]int)
	var diags []check.Diagnostic
	for _, ci := range ctx.Result.Controls {
		if ci.ID == "" {
			continue
		}

		line, _ := ctx.Result.Document.Position(ci.Element)
		firstLine, seen := first[ci.ID]
		if !seen {
			first[ci.ID] = line
			continue
		}
		diags = append(diags, ctx.At(c, ci.Element,
			fmt.Sprintf("control id %q already declared on line %d", ci.ID, firstLine)).Build())
	}
	return diags, nil
}
