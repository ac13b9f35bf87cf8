package typeinfo

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Resolver finds types by name. Names may be assembly qualified.
type Resolver interface {
	Lookup(name string) (*Type, bool)
}

//go:embed builtin.yaml
var builtinYAML []byte

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
	errBuiltin     error
)

// catalogFile is the on-disk catalog format.
type catalogFile struct {
	Types []Type `yaml:"types"`
}

// Catalog is an in-memory set of types keyed by case-insensitive name.
// A catalog is immutable once loading completes and safe for concurrent reads.
type Catalog struct {
	types map[string]*Type
}

var _ Resolver = (*Catalog)(nil)

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]*Type)}
}

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := NewCatalog()
	for i := range file.Types {
		if strings.TrimSpace(file.Types[i].Name) == "" {
			return nil, fmt.Errorf("catalog entry %d: missing name", i)
		}
		c.Add(file.Types[i])
	}
	return c, nil
}

// Builtin returns the embedded catalog of System.Web types.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		builtinCatalog, errBuiltin = ParseCatalog(builtinYAML)
	})
	if errBuiltin != nil {
		panic(fmt.Sprintf("typeinfo: invalid builtin catalog: %v", errBuiltin))
	}
	return builtinCatalog
}

// Load returns the built-in catalog merged with the catalog files at paths.
// Later files override earlier entries with the same name.
func Load(paths ...string) (*Catalog, error) {
	c := NewCatalog()
	c.Merge(Builtin())

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		extra, err := ParseCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		c.Merge(extra)
	}
	return c, nil
}

// Add inserts or replaces a type.
func (c *Catalog) Add(t Type) {
	t.Name = strings.TrimSpace(t.Name)
	c.types[strings.ToLower(t.Name)] = &t
}

// Merge copies every type of other into c.
func (c *Catalog) Merge(other *Catalog) {
	for k, t := range other.types {
		c.types[k] = t
	}
}

// Len returns the number of types.
func (c *Catalog) Len() int {
	return len(c.types)
}

// Lookup finds a type by name, ignoring case. For an assembly-qualified name
// the type's assembly must match when the catalog records one.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	typeName, asm := SplitQualified(name)
	t, ok := c.types[strings.ToLower(typeName)]
	if !ok {
		return nil, false
	}
	if asm != "" && t.Assembly != "" && !strings.EqualFold(asm, t.Assembly) {
		return nil, false
	}
	return t, true
}

// Types returns all types sorted by name.
func (c *Catalog) Types() []*Type {
	out := make([]*Type, 0, len(c.types))
	for _, t := range c.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
