// Package parser runs a parse session over one markup document: it reads
// the directives, resolves user control and strongly typed page references
// and walks the tree for declared controls.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/controls"
	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/framework"
	"github.com/yaklabco/aspxgen/pkg/langdetect"
	"github.com/yaklabco/aspxgen/pkg/markup"
	"github.com/yaklabco/aspxgen/pkg/typeinfo"
	"github.com/yaklabco/aspxgen/pkg/vpath"
)

// Options configures a Parser.
type Options struct {
	// Version is the target framework version. Defaults to framework.Default.
	Version string

	// App is the web application documents belong to.
	App vpath.App

	// Source reads referenced documents. Nil disables reading, so user
	// controls fall back to the default type.
	Source vpath.Source

	// Registrations are register entries from configuration, applied
	// before the document's own register directives.
	Registrations []*directive.Directive

	// Types resolves control types. Defaults to the built-in catalog.
	Types typeinfo.Resolver

	// Declare refines declare types of custom controls with builders.
	// Defaults to a CatalogDeclareResolver over Types.
	Declare controls.DeclareResolver

	// DefaultNamespace prefixes class names predicted for Visual Basic
	// pages whose code file has not been converted yet.
	DefaultNamespace string

	Logger *log.Logger
}

// Result is the outcome of one parse session.
type Result struct {
	// VirtualPath is the absolute virtual path of the document.
	VirtualPath string

	// ClassName is the code-behind class from the main directive.
	ClassName directive.ClassName

	// MainDirective is the last main directive in the document, if any.
	MainDirective *directive.Directive

	// MasterType and PreviousPageType name the types of the strongly
	// typed Master and PreviousPage properties. Empty when not declared.
	MasterType       string
	PreviousPageType string

	// UserControls maps lower-cased "prefix:tagname" to class names.
	UserControls map[string]string

	// Controls lists the declared controls in document order.
	Controls []*controls.Info

	// Fallbacks lists user control registrations whose class could not be
	// determined and use the default user control type.
	Fallbacks []Fallback

	// TypeErrors lists MasterType and PreviousPageType directives whose
	// referenced document could not be resolved. The matching type stays
	// empty and the rest of the document is still parsed.
	TypeErrors []*ParseError

	Document *markup.Document
	Registry *directive.Registry
}

// Fallback records a user control registration resolved to the default type.
type Fallback struct {
	Directive *directive.Directive
	Err       error
}

// Parser runs parse sessions. A Parser is not safe for concurrent use;
// create one per goroutine.
type Parser struct {
	opts Options

	virtualPath string
	text        string
	began       bool

	// resolving holds lower-cased virtual paths being resolved in this session.
	resolving map[string]bool
	result    *Result
}

// New creates a Parser.
func New(opts Options) *Parser {
	if opts.Version == "" {
		opts.Version = framework.Default
	}
	if opts.App.VirtualPath == "" {
		opts.App = vpath.NewApp("/", opts.App.Root)
	}
	if opts.Types == nil {
		opts.Types = typeinfo.Builtin()
	}
	if opts.Declare == nil {
		opts.Declare = &controls.CatalogDeclareResolver{Types: opts.Types, Version: opts.Version}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &Parser{opts: opts}
}

// BeginParse starts a session for the document at virtualPath. When text is
// empty the document is read from the source.
func (p *Parser) BeginParse(ctx context.Context, virtualPath, text string) error {
	p.EndParse()

	vp := p.opts.App.ToAbsolute(vpath.Combine(p.opts.App.VirtualPath, virtualPath))
	if text == "" {
		read, err := p.readDocument(ctx, vp)
		if err != nil {
			return &ParseError{Path: vp, Err: err}
		}
		text = read
	}

	p.virtualPath = vp
	p.text = text
	p.began = true
	return nil
}

// EndParse discards the state of the current session.
func (p *Parser) EndParse() {
	p.virtualPath = ""
	p.text = ""
	p.began = false
	p.resolving = nil
	p.result = nil
}

// Parse runs the session started by BeginParse.
func (p *Parser) Parse(ctx context.Context) (*Result, error) {
	if !p.began {
		return nil, errors.New("parse called before BeginParse")
	}

	p.resolving = map[string]bool{strings.ToLower(p.virtualPath): true}
	p.result = &Result{
		VirtualPath:  p.virtualPath,
		UserControls: make(map[string]string),
	}

	registry := directive.NewRegistry()
	p.result.Registry = registry
	for _, d := range p.opts.Registrations {
		registry.Add(d)
		p.registerUserControl(ctx, registry, d)
	}

	doc := markup.Parse(p.text, p.opts.Version)
	p.result.Document = doc

	for _, e := range doc.Directives() {
		p.processDirective(ctx, registry, doc, e)
	}

	resolver := controls.NewResolver(registry, p.opts.Types, p.opts.Version)
	walker := controls.NewWalker(resolver,
		controls.WithDeclareResolver(p.opts.Declare),
		controls.WithLogger(p.opts.Logger))
	p.result.Controls = walker.Walk(doc.Root)
	p.result.UserControls = registry.UserControls()

	p.opts.Logger.Debug("parsed document",
		logging.FieldPath, p.virtualPath,
		logging.FieldControls, len(p.result.Controls))

	return p.result, nil
}

func (p *Parser) processDirective(ctx context.Context, registry *directive.Registry, doc *markup.Document, e *markup.Element) {
	d := directive.FromElement(e)

	switch {
	case d.IsMain():
		p.result.MainDirective = d
		if inherits := d.Value(directive.AttrInherits); strings.TrimSpace(inherits) != "" {
			p.result.ClassName = directive.ParseClassName(inherits)
		}

	case d.Name == directive.NameRegister:
		registry.Add(d)
		p.registerUserControl(ctx, registry, d)

	case d.Name == directive.NameMasterType, d.Name == directive.NamePreviousPageType:
		typeName, err := p.typeNameFromDirective(ctx, d)
		if err != nil {
			line, col := doc.Position(e)
			p.result.TypeErrors = append(p.result.TypeErrors,
				&ParseError{Path: p.virtualPath, Line: line, Column: col, Err: err})
			p.opts.Logger.Debug("strongly typed property unavailable",
				logging.FieldPath, p.virtualPath,
				logging.FieldName, d.Name,
				logging.FieldError, err)
			return
		}
		if d.Name == directive.NameMasterType {
			p.result.MasterType = typeName
		} else {
			p.result.PreviousPageType = typeName
		}
	}
}

// registerUserControl records the class of a user control registration.
// Any failure falls back to the default user control type.
func (p *Parser) registerUserControl(ctx context.Context, registry *directive.Registry, d *directive.Directive) {
	src := d.Value(directive.AttrSrc)
	prefix := d.Value(directive.AttrTagPrefix)
	tagName := d.Value(directive.AttrTagName)
	if src == "" || prefix == "" || tagName == "" {
		return
	}

	typeName := directive.DefaultUserControlType
	resolved, err := p.typeNameFromVirtualPath(ctx, src)
	switch {
	case err != nil:
		p.result.Fallbacks = append(p.result.Fallbacks, Fallback{Directive: d, Err: err})
		p.opts.Logger.Debug("user control type unavailable, using default",
			logging.FieldTagPrefix, prefix,
			logging.FieldTagName, tagName,
			logging.FieldSrc, src,
			logging.FieldError, err)
	case resolved != "":
		typeName = resolved
	}

	registry.SetUserControlType(prefix, tagName, typeName)
}

func (p *Parser) typeNameFromDirective(ctx context.Context, d *directive.Directive) (string, error) {
	if vp := d.Value(directive.AttrVirtualPath); vp != "" {
		return p.typeNameFromVirtualPath(ctx, vp)
	}
	return d.Value(directive.AttrTypeName), nil
}

// typeNameFromVirtualPath returns the class a referenced page, control or
// master page inherits from. It reads only the directives of the target.
// An empty name without error means the target declares no class.
func (p *Parser) typeNameFromVirtualPath(ctx context.Context, virtualPath string) (string, error) {
	vp := p.opts.App.ToAbsolute(vpath.Combine(p.virtualPath, virtualPath))
	key := strings.ToLower(vp)
	if p.resolving[key] {
		return "", fmt.Errorf("%w: %s", ErrReferenceCycle, vp)
	}
	p.resolving[key] = true
	defer delete(p.resolving, key)

	text, err := p.readDocument(ctx, vp)
	if err != nil {
		return "", err
	}

	main, ok := directive.NewParser(text, p.opts.Version).Main()
	if !ok {
		return "", nil
	}

	className := directive.TypeNameFromInherits(main.Value(directive.AttrInherits))
	if className == "" {
		return "", nil
	}

	// Visual Basic pages whose code file is not converted yet compile into
	// the project's default namespace.
	codeFile := main.Value(directive.AttrCodeFile)
	if codeFile != "" && main.Value(directive.AttrCodeBehind) == "" &&
		langdetect.IsVisualBasicFile(codeFile) && p.opts.DefaultNamespace != "" {
		className = p.opts.DefaultNamespace + "." + className
	}
	return className, nil
}

func (p *Parser) readDocument(ctx context.Context, virtualPath string) (string, error) {
	if err := p.opts.App.EnsureInApp(virtualPath); err != nil {
		return "", err
	}
	if p.opts.Source == nil {
		return "", errNoSource
	}
	return p.opts.Source.ReadDocument(ctx, virtualPath)
}

// ParseDocument runs a complete session for one document.
func ParseDocument(ctx context.Context, opts Options, virtualPath, text string) (*Result, error) {
	p := New(opts)
	defer p.EndParse()

	if err := p.BeginParse(ctx, virtualPath, text); err != nil {
		return nil, err
	}
	return p.Parse(ctx)
}
