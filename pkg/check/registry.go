package check

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/aspxgen/pkg/config"
)

// Registry holds checks by ID and by name.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Check
	byName map[string]Check
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Check),
		byName: make(map[string]Check),
	}
}

// Register adds a check, replacing one with the same ID.
func (r *Registry) Register(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[strings.ToUpper(c.ID())] = c
	r.byName[c.Name()] = c
}

// Get looks a check up by ID, ignoring case, then by name.
func (r *Registry) Get(key string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.byID[strings.ToUpper(key)]; ok {
		return c, true
	}
	c, ok := r.byName[key]
	return c, ok
}

// Checks returns all checks sorted by ID.
func (r *Registry) Checks() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Check, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Check) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

// IDs returns all check IDs in sorted order.
func (r *Registry) IDs() []string {
	checks := r.Checks()
	ids := make([]string, len(checks))
	for i, c := range checks {
		ids[i] = c.ID()
	}
	return ids
}

// Infos describes the registered checks for configuration templates.
func (r *Registry) Infos() []config.CheckInfo {
	checks := r.Checks()
	out := make([]config.CheckInfo, 0, len(checks))
	for _, c := range checks {
		out = append(out, config.CheckInfo{
			ID:          c.ID(),
			Name:        c.Name(),
			Description: c.Description(),
			Enabled:     c.DefaultEnabled(),
			Severity:    c.DefaultSeverity(),
			Tags:        c.Tags(),
			CanFix:      c.CanFix(),
		})
	}
	return out
}

// DefaultRegistry holds the built-in checks. They register during init.
//
//nolint:gochecknoglobals // Global registry is intentional for check registration
var DefaultRegistry = NewRegistry()
