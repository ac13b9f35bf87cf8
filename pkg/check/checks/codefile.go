package checks

import (
	"fmt"
	"slices"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/fix"
	"github.com/yaklabco/aspxgen/pkg/markup"
)

// attrCodeBehind is the spelling of the attribute the fix adds.
const attrCodeBehind = "CodeBehind"

// CodeFileDirectiveCheck reports main directives that name a CodeFile but
// no CodeBehind. Web application projects compile the code file only when
// CodeBehind names it. The fix adds CodeBehind with the CodeFile value.
type CodeFileDirectiveCheck struct {
	check.BaseCheck
}

// NewCodeFileDirectiveCheck creates the codefile-directive check.
func NewCodeFileDirectiveCheck() *CodeFileDirectiveCheck {
	return &CodeFileDirectiveCheck{
		BaseCheck: check.NewBaseCheck(
			"AX006",
			"codefile-directive",
			"The main directive names a CodeFile without CodeBehind",
			[]string{"directive", "conversion"},
			true,
		).WithSeverity(config.SeverityInfo).DisabledByDefault(),
	}
}

// Apply implements check.Check.
func (c *CodeFileDirectiveCheck) Apply(ctx *check.Context) ([]check.Diagnostic, error) {
	if ctx.Result == nil || ctx.Result.MainDirective == nil {
		return nil, nil
	}

	main := ctx.Result.MainDirective
	codeFile := main.Value(directive.AttrCodeFile)
	if codeFile == "" || main.Has(directive.AttrCodeBehind) {
		return nil, nil
	}

	b := ctx.At(c, main.Element, fmt.Sprintf("%s directive has CodeFile %q but no CodeBehind", main.Name, codeFile)).
		WithSuggestion(fmt.Sprintf("add %s=%q", attrCodeBehind, codeFile))

	if edits, ok := addCodeBehind(ctx.Text, ctx.Result.Document, main.Element, codeFile); ok {
		b.WithFix(edits)
	}
	return []check.Diagnostic{b.Build()}, nil
}

// addCodeBehind inserts the attribute into a private copy of the document
// so the shared parse result keeps its offsets, and returns an edit that
// replaces the directive with its rewritten text.
func addCodeBehind(text string, doc *markup.Document, e *markup.Element, value string) (*fix.EditBuilder, bool) {
	if doc == nil || e == nil {
		return nil, false
	}
	idx := slices.Index(doc.Directives(), e)
	if idx < 0 {
		return nil, false
	}

	private := markup.Parse(text, doc.Version).Directives()
	if idx >= len(private) {
		return nil, false
	}
	target := private[idx]

	start, end := target.Span.ByteRange()
	if _, ok := target.AddAttribute(attrCodeBehind, value, false, true); !ok {
		return nil, false
	}

	b := fix.NewEditBuilder()
	b.ReplaceRange(start, end, target.Span.Text())
	return b, true
}
