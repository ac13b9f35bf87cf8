package check

import (
	"context"

	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/markup"
	"github.com/yaklabco/aspxgen/pkg/parser"
)

// Context is what a check sees of one document.
//
// Context carries a context.Context because it is a short-lived parameter
// object created per check invocation.
type Context struct {
	Ctx context.Context

	// Path is the physical path of the document.
	Path string

	// Text is the decoded document text. Fix edits address its bytes.
	Text string

	// Result is the parse result. Nil when ParseErr is set.
	Result *parser.Result

	// ParseErr is set when the parse session failed at a known position.
	ParseErr *parser.ParseError

	// Declarations and DeclErr are the outcome of codegen.Build.
	Declarations *codegen.Declarations
	DeclErr      error

	Config      *config.Config
	CheckConfig *config.CheckConfig
}

// Cancelled returns true if the context has been cancelled.
func (c *Context) Cancelled() bool {
	return c.Ctx != nil && c.Ctx.Err() != nil
}

// Document returns the parsed document, or nil.
func (c *Context) Document() *markup.Document {
	if c.Result == nil {
		return nil
	}
	return c.Result.Document
}

// Option returns a check option, or defaultValue if not set.
func (c *Context) Option(key string, defaultValue any) any {
	if c.CheckConfig == nil || c.CheckConfig.Options == nil {
		return defaultValue
	}
	if v, ok := c.CheckConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a boolean check option, or defaultValue.
func (c *Context) OptionBool(key string, defaultValue bool) bool {
	if b, ok := c.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a string list option, or defaultValue.
func (c *Context) OptionStringSlice(key string, defaultValue []string) []string {
	switch v := c.Option(key, defaultValue).(type) {
	case []string:
		return v
	case []any:
		// YAML decodes lists into []any.
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return defaultValue
	}
}

// At starts a diagnostic for check at the start of element e.
func (c *Context) At(check Check, e *markup.Element, message string) *DiagnosticBuilder {
	b := NewDiagnostic(check, c.Path, message)
	doc := c.Document()
	if doc == nil || e == nil || e.Span.IsZero() {
		return b
	}

	lines := doc.Lines()
	startLine, startCol := lines.LineAt(e.Span.Start())
	endLine, endCol := lines.LineAt(e.Span.End())
	return b.WithRange(startLine, startCol, endLine, endCol)
}
