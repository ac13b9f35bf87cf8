package check

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fix"
	"github.com/yaklabco/aspxgen/pkg/fsutil"
	"github.com/yaklabco/aspxgen/pkg/parser"
)

// FileResult contains the results of checking a single document.
type FileResult struct {
	// VirtualPath is the path the document was parsed under.
	VirtualPath string

	// Text is the decoded document text the checks saw.
	Text string

	// Result is the parse result; nil when parsing failed.
	Result *parser.Result

	// Declarations built from Result; nil when parsing failed.
	Declarations *codegen.Declarations

	Diagnostics []Diagnostic

	// Edits are validated, sorted content edits of auto-fixing checks.
	Edits []fix.TextEdit

	// SkippedEdits conflicted with earlier edits.
	SkippedEdits []fix.TextEdit

	// CheckErrors maps check IDs to internal failures.
	CheckErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// Line returns the 1-based line n of Text without its terminator, or ""
// when n is out of range.
func (fr *FileResult) Line(n int) string {
	if n < 1 {
		return ""
	}
	rest := fr.Text
	for ; n > 1; n-- {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			return ""
		}
		rest = rest[i+1:]
	}
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSuffix(rest, "\r")
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine parses documents and runs checks over them.
type Engine struct {
	// Parser configures the parse sessions. Each CheckFile call runs its
	// own session, so an Engine is safe for concurrent use.
	Parser parser.Options

	Registry *Registry
}

// NewEngine creates an Engine.
func NewEngine(opts parser.Options, registry *Registry) *Engine {
	return &Engine{Parser: opts, Registry: registry}
}

// VirtualPath maps a physical document path into the application. Paths
// outside the application root are parsed as if they sat at its top.
func (e *Engine) VirtualPath(path string) string {
	vp, err := e.Parser.App.VirtualPathOf(path)
	if err != nil {
		return "~/" + filepath.Base(path)
	}
	return vp
}

// Parse runs a parse session over content without running checks.
func (e *Engine) Parse(ctx context.Context, path string, content []byte) (*parser.Result, error) {
	text := fsutil.DecodeText(content).Text
	if text == "" {
		return nil, nil
	}
	return parser.ParseDocument(ctx, e.Parser, e.VirtualPath(path), text)
}

// CheckFile parses content and runs the checks resolved from cfg.
//
// A parse session failing at a known position is not an error: it is
// reported by the parse-failure check. Other parse failures are wrapped
// with ErrParseFailure.
func (e *Engine) CheckFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	decoded := fsutil.DecodeText(content)
	result := &FileResult{
		VirtualPath: e.VirtualPath(path),
		Text:        decoded.Text,
		CheckErrors: make(map[string]error),
	}

	cctx := &Context{Ctx: ctx, Path: path, Text: decoded.Text, Config: cfg}

	if decoded.Text != "" {
		parsed, err := parser.ParseDocument(ctx, e.Parser, result.VirtualPath, decoded.Text)
		var parseErr *parser.ParseError
		switch {
		case errors.As(err, &parseErr):
			cctx.ParseErr = parseErr
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		default:
			cctx.Result = parsed
			cctx.Declarations, cctx.DeclErr = codegen.Build(parsed)
		}
	}
	result.Result = cctx.Result
	result.Declarations = cctx.Declarations

	var edits []fix.TextEdit
	for _, rc := range ResolveChecks(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("checking cancelled: %w", err)
		}

		cctx.CheckConfig = rc.Config
		diags, err := rc.Check.Apply(cctx)
		if err != nil {
			result.CheckErrors[rc.Check.ID()] = err
			logging.ForDocument(ctx, result.VirtualPath).Debug("check failed",
				logging.FieldName, rc.Check.ID(),
				logging.FieldError, err)
			continue
		}

		for i := range diags {
			diags[i].Severity = rc.Severity
			if diags[i].CheckID == "" {
				diags[i].CheckID = rc.Check.ID()
				diags[i].CheckName = rc.Check.Name()
			}
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if rc.AutoFix {
				edits = append(edits, diags[i].FixEdits...)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	edits = contentEdits(edits, decoded.Encoding)
	if len(edits) > 0 {
		accepted, skipped, err := fix.PrepareEdits(edits, len(content))
		if err != nil {
			result.SkippedEdits = edits
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
		}
	}

	return result, nil
}

// contentEdits moves edits of decoded text onto the encoded content. A
// UTF-8 byte order mark shifts every offset; UTF-16 content is not fixed.
func contentEdits(edits []fix.TextEdit, enc fsutil.Encoding) []fix.TextEdit {
	switch enc {
	case fsutil.EncodingUTF8:
		return edits
	case fsutil.EncodingUTF8BOM:
		shift := enc.BOMLen()
		out := make([]fix.TextEdit, len(edits))
		for i, edit := range edits {
			edit.StartOffset += shift
			edit.EndOffset += shift
			out[i] = edit
		}
		return out
	default:
		return nil
	}
}
