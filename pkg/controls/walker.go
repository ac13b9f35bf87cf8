package controls

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/markup"
	"github.com/yaklabco/aspxgen/pkg/typeinfo"
)

// Walker descends a document tree and collects the controls that
// declare an id, in document order.
//
// A tag is a control when it runs at server, when it is a title, link or
// meta tag inside a server head, or when the enclosing control parses its
// children as properties. Child tags of such a control are matched against
// its properties: collection contents and single-instance template
// contents are walked for controls, multi-instance templates are skipped,
// complex properties are matched against their own properties, and anything
// else is walked as ordinary markup.
type Walker struct {
	resolver *Resolver
	types    typeinfo.Resolver
	declare  DeclareResolver
	logger   *log.Logger

	infos []*Info
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithDeclareResolver sets the collaborator that refines declare types of
// custom controls with a control builder.
func WithDeclareResolver(d DeclareResolver) WalkerOption {
	return func(w *Walker) { w.declare = d }
}

// WithLogger sets the logger for recoverable failures.
func WithLogger(logger *log.Logger) WalkerOption {
	return func(w *Walker) { w.logger = logger }
}

// NewWalker creates a walker resolving tags with resolver.
func NewWalker(resolver *Resolver, opts ...WalkerOption) *Walker {
	w := &Walker{resolver: resolver, types: resolver.Types()}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.Default()
	}
	return w
}

// Walk collects the controls below root.
func (w *Walker) Walk(root *markup.Element) []*Info {
	w.infos = nil
	if root != nil {
		w.processControls(root, nil, false, false)
	}
	return w.infos
}

func (w *Walker) processControls(e *markup.Element, parent *Info, ignoreUnknown, isProperty bool) {
	ci := w.processControl(e, parent, ignoreUnknown, isProperty)
	if ci != nil && ci.ParseChildrenAsProperties {
		w.processControlProperties(e, ci)
		return
	}

	for _, child := range e.Children {
		w.processControls(child, parent, ignoreUnknown, false)
	}
}

func (w *Walker) processControl(e *markup.Element, parent *Info, ignoreUnknown, isProperty bool) *Info {
	if e.Kind != markup.KindTag || isProperty {
		return nil
	}
	parentAsProperties := parent != nil && parent.ParseChildrenAsProperties
	if !parentAsProperties && !e.RunAtServer && !isAutoServerTag(e) {
		return nil
	}

	ci := w.resolver.Resolve(e)
	ignoreContent := ignoreUnknown && ci.IsHTMLControl() && ci.TypeName == TypeHTMLGenericControl
	if ignoreContent {
		return ci
	}
	if parent != nil {
		ci.ParseChildrenAsProperties = parent.ParseChildrenAsProperties
	}
	if ci.TypeName == "" {
		return ci
	}

	if ci.ControlType == nil {
		ci.ControlType, _ = w.types.Lookup(ci.TypeName)
	}

	// Content controls are never declared but their children still are.
	if ci.ControlType != nil && typeinfo.AssignableTo(w.types, ci.ControlType, typeinfo.TypeContent) {
		return ci
	}

	if e.HasID && ci.ID != "" {
		w.infos = append(w.infos, ci)
	}

	if ci.ControlType != nil {
		if pc, ok := typeinfo.ParseChildrenOf(w.types, ci.ControlType); ok && pc.AsProperties {
			ci.ParseChildrenAsProperties = true
			ci.DefaultProperty = pc.DefaultProperty
		}
		if b, ok := typeinfo.BuilderOf(w.types, ci.ControlType); ok {
			ci.BuilderType = b.Type
		}
	}

	w.resolveDeclareType(ci)
	return ci
}

func (w *Walker) resolveDeclareType(ci *Info) {
	ci.DeclareTypeName = ci.TypeName
	ci.DeclareType = ci.ControlType

	if !ci.IsCustomControl() || ci.BuilderType == "" || ci.Directive == nil || w.declare == nil {
		return
	}

	typeName, err := w.declare.DeclareType(ci.Directive, ci.Element)
	if err != nil {
		w.logger.Debug("builder declare type failed, using control type",
			logging.FieldTypeName, ci.TypeName,
			logging.FieldError, err)
		return
	}

	if t, ok := w.types.Lookup(typeName); ok {
		ci.DeclareTypeName = t.Name
		ci.DeclareType = t
		return
	}
	ci.DeclareTypeName = typeName
	ci.DeclareType = nil
}

func (w *Walker) processControlProperties(e *markup.Element, ci *Info) {
	if ci.DefaultProperty != "" {
		w.processControlProperty(e, ci.DefaultProperty, true, ci.ControlType, ci)
		return
	}
	w.processPropertyTags(e, ci.ControlType, ci)
}

// processPropertyTags matches every child tag of e against the properties of owner.
func (w *Walker) processPropertyTags(e *markup.Element, owner *typeinfo.Type, ci *Info) {
	for _, child := range e.ChildTags() {
		if name := child.Name(); name != "" {
			w.processControlProperty(child, name, false, owner, ci)
		}
	}
}

func (w *Walker) processControlProperty(e *markup.Element, propertyName string, isDefault bool, owner *typeinfo.Type, ci *Info) {
	var (
		prop  *typeinfo.Property
		found bool
	)
	if e.Kind == markup.KindTag {
		prop, found = typeinfo.FindProperty(w.types, owner, propertyName)
	}
	if !found {
		w.processControls(e, nil, false, isDefault)
		return
	}

	kind, propType := typeinfo.Classify(w.types, prop)
	switch kind {
	case typeinfo.PropertyCollection:
		w.processControls(e, ci, prop.IgnoreUnknownContent, true)
	case typeinfo.PropertyTemplate:
		if prop.SingleInstance {
			w.processControls(e, nil, false, true)
		}
	case typeinfo.PropertyComplex:
		w.processPropertyTags(e, propType, ci)
	default:
		w.processControls(e, nil, false, isDefault)
	}
}
