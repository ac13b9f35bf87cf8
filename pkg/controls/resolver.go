package controls

import (
	"strings"

	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/markup"
	"github.com/yaklabco/aspxgen/pkg/typeinfo"
)

// Resolver maps tags to control types using the register table of one
// parse session and a type catalog.
type Resolver struct {
	registry *directive.Registry
	types    typeinfo.Resolver
	html     htmlTables
}

// NewResolver creates a resolver for documents targeting version.
func NewResolver(registry *directive.Registry, types typeinfo.Resolver, version string) *Resolver {
	return &Resolver{
		registry: registry,
		types:    types,
		html:     newHTMLTables(version),
	}
}

// Types returns the type catalog used for lookups.
func (r *Resolver) Types() typeinfo.Resolver {
	return r.types
}

// Resolve returns the control description of tag e. Parse children
// metadata and declare types are left to the Walker.
func (r *Resolver) Resolve(e *markup.Element) *Info {
	ci := &Info{Element: e}
	if e.HasID {
		ci.ID, _ = e.AttrValue("id")
	}

	prefix, local := e.SplitName()
	local = strings.TrimSpace(local)

	switch {
	case prefix != "":
		r.resolvePrefixed(ci, prefix, local)
	case local != "":
		if typeName, ok := r.html.lookup(e, local); ok {
			ci.Resolution = HTML
			ci.TypeName = typeName
			ci.ControlType, _ = r.types.Lookup(typeName)
		}
	}
	return ci
}

func (r *Resolver) resolvePrefixed(ci *Info, prefix, local string) {
	registers := r.registry.ForPrefix(prefix)

	// User controls win over namespace registrations wherever they appear.
	for _, d := range registers {
		if d.IsUserControlRegistration() && strings.EqualFold(d.Value(directive.AttrTagName), local) {
			ci.Resolution = UserControl
			ci.TypeName = r.userControlType(d)
			ci.Directive = d
			return
		}
	}

	for _, d := range registers {
		if d.IsUserControlRegistration() || !d.IsNamespaceRegistration() {
			continue
		}

		ci.Resolution = Custom
		ci.TypeName = d.Value(directive.AttrNamespace) + "." + local

		if t, ok := r.lookupQualified(ci.TypeName, d.Value(directive.AttrAssembly)); ok {
			ci.TypeName = t.Name
			ci.ControlType = t
			ci.Directive = d
			return
		}
	}
}

func (r *Resolver) userControlType(d *directive.Directive) string {
	typeName, ok := r.registry.UserControlType(d.Value(directive.AttrTagPrefix), d.Value(directive.AttrTagName))
	if !ok || typeName == "" {
		return directive.DefaultUserControlType
	}
	return typeName
}

// lookupQualified tries the strong-name qualified type first, then the
// simple assembly name. Without an assembly it tries the bare type name.
func (r *Resolver) lookupQualified(typeName, assembly string) (*typeinfo.Type, bool) {
	assembly = strings.TrimSpace(assembly)
	if assembly == "" {
		return r.types.Lookup(typeName)
	}

	asmName := assembly
	if idx := strings.IndexByte(assembly, ','); idx > 0 {
		asmName = strings.TrimSpace(assembly[:idx])
		if t, ok := r.types.Lookup(typeName + ", " + assembly); ok {
			return t, true
		}
	}
	return r.types.Lookup(typeName + ", " + asmName)
}
