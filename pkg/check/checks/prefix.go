package checks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/markup"
)

// UnregisteredPrefixCheck reports server tags whose prefix no register
// directive declares. They are dropped from the generated declarations.
//
// Options:
//
//	ignore_prefixes: prefixes (case-insensitive) not to report
type UnregisteredPrefixCheck struct {
	check.BaseCheck
}

// NewUnregisteredPrefixCheck creates the unregistered-prefix check.
func NewUnregisteredPrefixCheck() *UnregisteredPrefixCheck {
	return &UnregisteredPrefixCheck{
		BaseCheck: check.NewBaseCheck(
			"AX007",
			"unregistered-prefix",
			"A server tag uses a tag prefix that is not registered",
			[]string{"directive", "types"},
			false,
		),
	}
}

// Apply implements check.Check.
func (c *UnregisteredPrefixCheck) Apply(ctx *check.Context) ([]check.Diagnostic, error) {
	doc := ctx.Document()
	if doc == nil {
		return nil, nil
	}

	ignored := ctx.OptionStringSlice("ignore_prefixes", nil)
	var diags []check.Diagnostic
	for _, tag := range markup.ServerTags(doc.Root) {
		prefix, local := tag.SplitName()
		if prefix == "" || ctx.Result.Registry.HasPrefix(prefix) {
			continue
		}
		if slices.ContainsFunc(ignored, func(s string) bool { return strings.EqualFold(s, prefix) }) {
			continue
		}
		diags = append(diags, ctx.At(c, tag,
			fmt.Sprintf("tag prefix %q of <%s:%s> is not registered", prefix, prefix, local)).
			WithSuggestion(fmt.Sprintf(`add <%%@ Register TagPrefix=%q ... %%>`, prefix)).
			Build())
	}
	return diags, nil
}
