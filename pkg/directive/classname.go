package directive

import "strings"

// ClassName is the code-behind class named by an inherits attribute.
type ClassName struct {
	Full      string
	Namespace string
	Name      string
}

// IsZero reports whether no class name was found.
func (c ClassName) IsZero() bool {
	return c.Full == ""
}

// ParseClassName reads an inherits value such as "My.Site.Default, MyAssembly".
// The assembly qualifier is dropped and the type splits on its last dot.
func ParseClassName(inherits string) ClassName {
	full := trimAssembly(inherits)
	if full == "" {
		return ClassName{}
	}

	c := ClassName{Full: full, Name: full}
	if idx := strings.LastIndexByte(full, '.'); idx >= 0 {
		c.Namespace = full[:idx]
		c.Name = full[idx+1:]
	}
	return c
}

// TypeNameFromInherits returns the type name of an inherits value as used for
// referenced pages and controls: assembly qualifier dropped, one leading dot
// removed.
func TypeNameFromInherits(inherits string) string {
	name := trimAssembly(inherits)
	if len(name) > 1 && name[0] == '.' {
		name = name[1:]
	}
	return name
}

func trimAssembly(s string) string {
	if idx := strings.IndexByte(s, ','); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
