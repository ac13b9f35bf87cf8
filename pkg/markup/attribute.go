package markup

import (
	"html"
	"strings"
)

// Attribute is a name/value pair on a tag or directive.
// Both parts are spans, so values stay correct after buffer edits.
type Attribute struct {
	name  Span
	value Span
}

// NewAttribute builds an attribute from a name span and an optional value span.
func NewAttribute(name, value Span) *Attribute {
	return &Attribute{name: name, value: value}
}

// NameSpan returns the span of the attribute name.
func (a *Attribute) NameSpan() Span {
	return a.name
}

// ValueSpan returns the span of the raw value, quotes included.
func (a *Attribute) ValueSpan() (Span, bool) {
	return a.value, !a.value.IsZero()
}

// Name returns the attribute name as written.
func (a *Attribute) Name() string {
	return a.name.Text()
}

// LowerName returns the lower-cased attribute name.
func (a *Attribute) LowerName() string {
	return strings.ToLower(a.Name())
}

// RawValue returns the value text exactly as it appears, quotes included.
func (a *Attribute) RawValue() (string, bool) {
	if a.value.IsZero() {
		return "", false
	}
	return a.value.Text(), true
}

// DecodedValue returns the raw value with HTML entities decoded.
func (a *Attribute) DecodedValue() (string, bool) {
	raw, ok := a.RawValue()
	if !ok {
		return "", false
	}
	return html.UnescapeString(raw), true
}

// Value returns the decoded value with one pair of matching quotes removed.
func (a *Attribute) Value() (string, bool) {
	val, ok := a.DecodedValue()
	if !ok {
		return "", false
	}
	return unquote(val), true
}

// LowerValue returns Value lower-cased.
func (a *Attribute) LowerValue() (string, bool) {
	val, ok := a.Value()
	return strings.ToLower(val), ok
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
