package directive

import (
	"strings"
	"sync"
)

// DefaultUserControlType is used when a user control's class cannot be determined.
const DefaultUserControlType = "System.Web.UI.UserControl"

// Built-in tag prefixes registered for every page.
var builtinRegistrations = []*Directive{
	New(NameRegister, map[string]string{
		AttrTagPrefix: "asp",
		AttrNamespace: "System.Web.UI.WebControls",
		AttrAssembly:  "System.Web",
	}),
	New(NameRegister, map[string]string{
		AttrTagPrefix: "mobile",
		AttrNamespace: "System.Web.UI.MobileControls",
		AttrAssembly:  "System.Web.Mobile",
	}),
}

// Registry is the ordered register table of one parse session.
// Built-in prefixes come first, then configured registrations, then
// register directives in document order.
type Registry struct {
	mu           sync.RWMutex
	registers    []*Directive
	userControls map[string]string
}

// NewRegistry creates a registry seeded with the built-in prefixes followed by
// configured registrations.
func NewRegistry(configured ...*Directive) *Registry {
	r := &Registry{userControls: make(map[string]string)}
	for _, d := range builtinRegistrations {
		r.registers = append(r.registers, New(d.Name, d.Attrs))
	}
	for _, d := range configured {
		r.Add(d)
	}
	return r
}

// Add appends a register directive.
func (r *Registry) Add(d *Directive) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers = append(r.registers, d)
}

// Registers returns all register directives in lookup order.
func (r *Registry) Registers() []*Directive {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Directive, len(r.registers))
	copy(out, r.registers)
	return out
}

// ForPrefix returns the register directives whose tag prefix matches prefix,
// ignoring case, in lookup order.
func (r *Registry) ForPrefix(prefix string) []*Directive {
	if prefix == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Directive
	for _, d := range r.registers {
		if tp := d.Value(AttrTagPrefix); tp != "" && strings.EqualFold(tp, prefix) {
			out = append(out, d)
		}
	}
	return out
}

// HasPrefix reports whether any directive registers prefix.
func (r *Registry) HasPrefix(prefix string) bool {
	return len(r.ForPrefix(prefix)) > 0
}

// SetUserControlType records the class of the user control prefix:tagName.
func (r *Registry) SetUserControlType(prefix, tagName, typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userControls[userControlKey(prefix, tagName)] = typeName
}

// UserControlType returns the recorded class of prefix:tagName.
func (r *Registry) UserControlType(prefix, tagName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	typeName, ok := r.userControls[userControlKey(prefix, tagName)]
	return typeName, ok
}

// UserControls returns a copy of the user control table keyed by
// lower-cased "prefix:tagname".
func (r *Registry) UserControls() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.userControls))
	for k, v := range r.userControls {
		out[k] = v
	}
	return out
}

func userControlKey(prefix, tagName string) string {
	return strings.ToLower(prefix + ":" + tagName)
}
