package markup

import (
	"html"
	"strings"
	"unicode"
)

// Element is one lexical unit of a document and, once reconciled, a node
// of the document tree.
type Element struct {
	Kind Kind

	// Span covers the element's own text. Zero for the document root.
	Span Span

	// Attrs holds the attributes of tags and directives, in source order.
	Attrs []*Attribute

	// Tag flags.
	RunAtServer bool
	HasID       bool
	SelfClosed  bool

	// Tree structure, filled by the TreeBuilder.
	Parent   *Element
	Children []*Element

	// Closed is true for self-closed tags and tags matched by an end tag.
	Closed bool

	// End is the matching end tag, if any.
	End *Element

	// Outer covers the tag through its end tag. It equals Span until closed.
	Outer Span

	name Span
}

func newElement(kind Kind, span Span) *Element {
	return &Element{Kind: kind, Span: span, Outer: span}
}

// Name returns the tag or directive name. Empty when the element has none.
func (e *Element) Name() string {
	return e.name.Text()
}

// NameSpan returns the span of the name.
func (e *Element) NameSpan() (Span, bool) {
	return e.name, !e.name.IsZero()
}

// LowerName returns the lower-cased name.
func (e *Element) LowerName() string {
	return strings.ToLower(e.Name())
}

// Prefix returns the part of the name before the first colon, trimmed.
// Names without a prefix, or starting with a colon, return "".
func (e *Element) Prefix() string {
	prefix, _ := e.SplitName()
	return prefix
}

// LowerPrefix returns Prefix lower-cased.
func (e *Element) LowerPrefix() string {
	return strings.ToLower(e.Prefix())
}

// SplitName splits the trimmed name into prefix and local name.
// The prefix is empty when the name has no colon past its first character.
func (e *Element) SplitName() (string, string) {
	name := strings.TrimSpace(e.Name())
	if idx := strings.IndexByte(name, ':'); idx > 0 {
		return strings.TrimSpace(name[:idx]), name[idx+1:]
	}
	return "", name
}

// Text returns the element's source text.
func (e *Element) Text() string {
	return e.Span.Text()
}

// OuterText returns the source text from the tag through its end tag.
func (e *Element) OuterText() string {
	return e.Outer.Text()
}

// Attr returns the first attribute whose lower-cased name is lname.
func (e *Element) Attr(lname string) (*Attribute, bool) {
	for _, attr := range e.Attrs {
		if attr.LowerName() == lname {
			return attr, true
		}
	}
	return nil, false
}

// AttrValue returns the unquoted, decoded value of the first attribute named lname.
func (e *Element) AttrValue(lname string) (string, bool) {
	attr, ok := e.Attr(lname)
	if !ok {
		return "", false
	}
	return attr.Value()
}

// ChildTags returns the children that are tags.
func (e *Element) ChildTags() []*Element {
	var tags []*Element
	for _, child := range e.Children {
		if child.Kind == KindTag {
			tags = append(tags, child)
		}
	}
	return tags
}

// AddAttribute appends name=value to a directive by inserting text before its
// closing "%>". It only applies to directives with a span. The value is HTML
// encoded when htmlEncode is set and wrapped in double quotes when quoted is set.
func (e *Element) AddAttribute(name, value string, htmlEncode, quoted bool) (*Attribute, bool) {
	if e.Kind != KindDirective || name == "" || e.Span.IsZero() {
		return nil, false
	}

	tracker := e.Span.tracker
	pos := e.Span.End() - 1

	if !unicode.IsSpace(tracker.text[pos-1]) {
		tracker.Insert(pos, " ")
		pos++
	}

	nameSpan, _ := tracker.Insert(pos, name)
	pos += len([]rune(name))

	tracker.Insert(pos, "=")
	pos++

	if htmlEncode && value != "" {
		value = html.EscapeString(value)
	}
	if quoted {
		value = `"` + value + `"`
	}

	valueSpan, ok := tracker.Insert(pos, value)
	pos += len([]rune(value))

	tracker.Insert(pos, " ")

	if !ok {
		return nil, false
	}

	attr := NewAttribute(nameSpan, valueSpan)
	e.Attrs = append(e.Attrs, attr)
	return attr, true
}
