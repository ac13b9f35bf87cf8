package typeinfo

import "strings"

// maxDepth bounds base-type walks so a cyclic catalog cannot hang.
const maxDepth = 64

// Ancestors returns t followed by its base types, nearest first.
// Unknown base names end the chain.
func Ancestors(r Resolver, t *Type) []*Type {
	var chain []*Type
	seen := make(map[*Type]bool)

	for cur := t; cur != nil && !seen[cur] && len(chain) < maxDepth; {
		seen[cur] = true
		chain = append(chain, cur)

		if cur.Base == "" {
			break
		}
		next, ok := r.Lookup(cur.Base)
		if !ok {
			break
		}
		cur = next
	}
	return chain
}

// AssignableTo reports whether t is target or derives from it.
func AssignableTo(r Resolver, t *Type, target string) bool {
	if t == nil {
		return false
	}
	chain := Ancestors(r, t)
	for _, a := range chain {
		if strings.EqualFold(a.Name, target) {
			return true
		}
	}
	// The last known ancestor may still name the target as its base.
	return strings.EqualFold(chain[len(chain)-1].Base, target)
}

// ParseChildrenOf returns the nearest ParseChildren metadata of t or its bases.
func ParseChildrenOf(r Resolver, t *Type) (*ParseChildren, bool) {
	for _, a := range Ancestors(r, t) {
		if a.ParseChildren != nil {
			return a.ParseChildren, true
		}
	}
	return nil, false
}

// BuilderOf returns the nearest control builder of t or its bases.
func BuilderOf(r Resolver, t *Type) (*Builder, bool) {
	for _, a := range Ancestors(r, t) {
		if a.Builder != nil {
			return a.Builder, true
		}
	}
	return nil, false
}

// FindProperty looks up a property of t or its bases, ignoring case.
func FindProperty(r Resolver, t *Type, name string) (*Property, bool) {
	if t == nil || name == "" {
		return nil, false
	}
	for _, a := range Ancestors(r, t) {
		for i := range a.Properties {
			if strings.EqualFold(a.Properties[i].Name, name) {
				return &a.Properties[i], true
			}
		}
	}
	return nil, false
}

// PropertyKind classifies a property for nested markup.
type PropertyKind int

// Property kinds in classification order.
const (
	PropertyScalar PropertyKind = iota
	PropertyCollection
	PropertyTemplate
	PropertyComplex
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyCollection:
		return "collection"
	case PropertyTemplate:
		return "template"
	case PropertyComplex:
		return "complex"
	default:
		return "scalar"
	}
}

// Classify returns the kind of p and, for complex properties, its type.
// Collection wins over template. Property types missing from the catalog
// are scalar.
func Classify(r Resolver, p *Property) (PropertyKind, *Type) {
	pt, found := r.Lookup(p.Type)

	switch {
	case p.Collection || (found && pt.Collection):
		return PropertyCollection, pt
	case p.Template || (found && pt.Template):
		return PropertyTemplate, pt
	case found && !pt.IsScalar():
		return PropertyComplex, pt
	default:
		return PropertyScalar, pt
	}
}
