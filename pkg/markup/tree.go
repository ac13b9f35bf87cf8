package markup

import "strings"

// TreeBuilder reconciles the scanner's flat element stream into a tree.
//
// Every element is appended to the document root. When an end tag arrives, the
// nearest unclosed tag with the same name (case-insensitive) is closed, the
// siblings that followed it move under it and the end tag becomes its End.
// The end tag is then appended to the root as well, matched or not, so it sits
// right after the tag it closed.
type TreeBuilder struct {
	root     *Element
	elements []*Element
}

var _ Sink = (*TreeBuilder)(nil)

// NewTreeBuilder returns an empty builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// OnBeginParse resets the builder with a fresh document root.
func (b *TreeBuilder) OnBeginParse() {
	b.root = newElement(KindDocument, Span{})
	b.elements = nil
}

// OnParsed adds e to the tree.
func (b *TreeBuilder) OnParsed(e *Element) {
	if b.root == nil {
		b.OnBeginParse()
	}
	root := b.root

	b.elements = append(b.elements, e)

	if e.Kind == KindEndTag {
		b.closeMatching(e)
	}

	e.Parent = root
	root.Children = append(root.Children, e)
}

func (b *TreeBuilder) closeMatching(end *Element) {
	root := b.root
	endName := end.LowerName()
	endPrefix := end.LowerPrefix()

	for i := len(root.Children) - 1; i >= 0; i-- {
		current := root.Children[i]
		if current.Kind != KindTag || current.Closed {
			continue
		}

		if current.LowerName() == endName {
			current.Closed = true
			current.End = end

			start := current.Span.Start()
			current.Outer = current.Span.tracker.CreateSpan(start, end.Span.End()-start+1)

			moved := root.Children[i+1:]
			for _, child := range moved {
				child.Parent = current
			}
			current.Children = append(current.Children, moved...)
			root.Children = root.Children[:i+1:i+1]
			return
		}

		// A plain end tag never closes past an unclosed prefixed server tag.
		if current.RunAtServer && current.LowerPrefix() != "" && endPrefix == "" {
			return
		}
	}
}

// Root returns the document root.
func (b *TreeBuilder) Root() *Element {
	return b.root
}

// Elements returns every element seen, in document order.
func (b *TreeBuilder) Elements() []*Element {
	return b.elements
}

// Document is a fully scanned and reconciled markup document.
type Document struct {
	Root     *Element
	Elements []*Element
	Tracker  *Tracker
	Version  string
}

// Parse scans text completely and returns its tree.
func Parse(text, version string) *Document {
	builder := NewTreeBuilder()
	scanner := NewScanner(text, version, builder)
	scanner.ScanAll()

	return &Document{
		Root:     builder.Root(),
		Elements: builder.Elements(),
		Tracker:  scanner.Tracker(),
		Version:  version,
	}
}

// Directives returns the document's directives in order.
func (d *Document) Directives() []*Element {
	var out []*Element
	for _, e := range d.Elements {
		if e.Kind == KindDirective {
			out = append(out, e)
		}
	}
	return out
}

// ServerHead reports whether e has an ancestor <head runat="server">.
func ServerHead(e *Element) bool {
	for p := e.Parent; p != nil; p = p.Parent {
		if p.Kind == KindTag && p.RunAtServer && strings.EqualFold(p.Name(), "head") {
			return true
		}
	}
	return false
}
