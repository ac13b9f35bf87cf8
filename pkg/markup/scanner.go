package markup

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/aspxgen/pkg/framework"
)

// Sink receives scanner events. A TreeBuilder is a Sink.
type Sink interface {
	// OnBeginParse is called once before the first element is scanned.
	OnBeginParse()

	// OnParsed is called for every element in document order.
	OnParsed(e *Element)
}

// Scanner produces elements one at a time from a document.
// It is not safe for concurrent use.
type Scanner struct {
	tracker *Tracker
	tagRE   *regexp2.Regexp
	sink    Sink

	pos            int
	inServerScript bool
	unrecognized   bool

	lastGT      int
	lastGTKnown bool
}

// NewScanner creates a scanner over text. version selects the tag grammar:
// target frameworks below 4.0 use the legacy grammar. sink may be nil.
func NewScanner(text, version string, sink Sink) *Scanner {
	return NewTrackerScanner(NewTracker(text), version, sink)
}

// NewTrackerScanner creates a scanner over an existing tracker.
func NewTrackerScanner(tracker *Tracker, version string, sink Sink) *Scanner {
	tagRE := patterns.tag
	if !framework.AtLeast(version, framework.V40) {
		tagRE = patterns.legacyTag
	}

	s := &Scanner{tracker: tracker, tagRE: tagRE, sink: sink}
	if sink != nil {
		sink.OnBeginParse()
	}
	return s
}

// Tracker returns the tracker backing the scanner.
func (s *Scanner) Tracker() *Tracker {
	return s.tracker
}

// Pos returns the current cursor offset.
func (s *Scanner) Pos() int {
	return s.pos
}

// InServerScript reports whether the cursor is inside a server script block.
func (s *Scanner) InServerScript() bool {
	return s.inServerScript
}

// Next scans the next element. It returns false at end of input.
func (s *Scanner) Next() (*Element, bool) {
	text := s.tracker.text

	var elem *Element
	for elem == nil && s.pos < len(text) {
		for _, try := range []func([]rune) *Element{
			s.scanText,
			s.scanDirective,
			s.scanInclude,
			s.scanComment,
			s.scanExpression,
			s.scanDataBinding,
			s.scanCode,
			s.scanTag,
			s.scanEndTag,
		} {
			if elem = try(text); elem != nil {
				break
			}
		}

		if elem == nil {
			// Unrecognized '<': the next text attempt takes it as text.
			s.unrecognized = true
		}
	}

	if elem == nil {
		return nil, false
	}

	if s.sink != nil {
		s.sink.OnParsed(elem)
	}
	return elem, true
}

// NextOfKind scans until an element of the given kind is found.
func (s *Scanner) NextOfKind(kind Kind) (*Element, bool) {
	for {
		elem, ok := s.Next()
		if !ok {
			return nil, false
		}
		if elem.Kind == kind {
			return elem, true
		}
	}
}

// ScanAll scans the remaining input.
func (s *Scanner) ScanAll() []*Element {
	var elems []*Element
	for {
		elem, ok := s.Next()
		if !ok {
			return elems
		}
		elems = append(elems, elem)
	}
}

func (s *Scanner) lastGTIndex(text []rune) int {
	if !s.lastGTKnown {
		s.lastGT = -1
		for i := len(text) - 1; i >= 0; i-- {
			if text[i] == '>' {
				s.lastGT = i
				break
			}
		}
		s.lastGTKnown = true
	}
	return s.lastGT
}

func (s *Scanner) advance(m *regexp2.Match) {
	s.pos = m.Index + m.Length
}

func (s *Scanner) scanText(text []rune) *Element {
	offset := 0
	if text[s.pos] == '<' {
		if !s.unrecognized {
			return nil
		}
		offset = 1
		s.unrecognized = false
	}

	if m := matchAt(patterns.text, text, s.pos+offset); m != nil {
		elem := newElement(KindText, s.tracker.CreateSpan(m.Index-offset, m.Length+offset))
		s.advance(m)
		return elem
	}

	if offset > 0 {
		elem := newElement(KindText, s.tracker.CreateSpan(s.pos, offset))
		s.pos += offset
		return elem
	}

	return nil
}

func (s *Scanner) scanDirective(text []rune) *Element {
	if s.inServerScript {
		return nil
	}
	m := matchAt(patterns.directive, text, s.pos)
	if m == nil {
		return nil
	}

	elem := newElement(KindDirective, s.tracker.CreateSpan(m.Index, m.Length))

	names := captures(m, "attrname")
	values := captures(m, "attrval")
	for i, capName := range names {
		nameSpan := s.tracker.CreateSpan(capName.Index, capName.Length)

		var valueSpan Span
		if i < len(values) {
			valueSpan = s.valueSpan(text, values[i])
		}

		// A leading valueless attribute names the directive.
		if i == 0 && valueSpan.IsZero() {
			elem.name = nameSpan
			continue
		}
		elem.Attrs = append(elem.Attrs, NewAttribute(nameSpan, valueSpan))
	}

	s.advance(m)
	return elem
}

func (s *Scanner) scanInclude(text []rune) *Element {
	return s.scanSimple(text, patterns.include, KindInclude)
}

func (s *Scanner) scanComment(text []rune) *Element {
	return s.scanSimple(text, patterns.comment, KindComment)
}

func (s *Scanner) scanExpression(text []rune) *Element {
	return s.scanSimple(text, patterns.expression, KindCodeExpression)
}

func (s *Scanner) scanDataBinding(text []rune) *Element {
	return s.scanSimple(text, patterns.dataBind, KindDataBinding)
}

func (s *Scanner) scanCode(text []rune) *Element {
	return s.scanSimple(text, patterns.code, KindCode)
}

func (s *Scanner) scanSimple(text []rune, re *regexp2.Regexp, kind Kind) *Element {
	if s.inServerScript {
		return nil
	}
	m := matchAt(re, text, s.pos)
	if m == nil {
		return nil
	}

	elem := newElement(kind, s.tracker.CreateSpan(m.Index, m.Length))
	s.advance(m)
	return elem
}

func (s *Scanner) scanTag(text []rune) *Element {
	if s.inServerScript || s.lastGTIndex(text) <= s.pos {
		return nil
	}
	m := matchAt(s.tagRE, text, s.pos)
	if m == nil {
		return nil
	}

	elem := newElement(KindTag, s.tracker.CreateSpan(m.Index, m.Length))
	tagName := m.GroupByName("tagname")
	elem.name = s.tracker.CreateSpan(tagName.Index, tagName.Length)
	elem.SelfClosed = len(captures(m, "empty")) > 0
	elem.Closed = elem.SelfClosed

	names := captures(m, "attrname")
	values := captures(m, "attrval")
	for i, capName := range names {
		var valueSpan Span
		if i < len(values) {
			valueSpan = s.valueSpan(text, values[i])
		}

		attr := NewAttribute(s.tracker.CreateSpan(capName.Index, capName.Length), valueSpan)
		elem.Attrs = append(elem.Attrs, attr)

		switch attr.LowerName() {
		case "runat":
			if val, _ := attr.LowerValue(); val == "server" {
				elem.RunAtServer = true
			}
		case "id":
			elem.HasID = true
		}
	}

	s.advance(m)

	if elem.RunAtServer && elem.LowerName() == "script" {
		s.inServerScript = true
	}
	return elem
}

func (s *Scanner) scanEndTag(text []rune) *Element {
	m := matchAt(patterns.endTag, text, s.pos)
	if m == nil {
		return nil
	}

	elem := newElement(KindEndTag, s.tracker.CreateSpan(m.Index, m.Length))
	tagName := m.GroupByName("tagname")
	elem.name = s.tracker.CreateSpan(tagName.Index, tagName.Length)
	s.advance(m)

	if s.inServerScript && strings.EqualFold(elem.Name(), "script") {
		s.inServerScript = false
	}
	return elem
}

// valueSpan widens a value capture over surrounding matching quotes.
// Empty unquoted captures have no value.
func (s *Scanner) valueSpan(text []rune, c regexp2.Capture) Span {
	before, after := c.Index-1, c.Index+c.Length
	if before >= 0 && after < len(text) {
		b, a := text[before], text[after]
		if (b == '"' && a == '"') || (b == '\'' && a == '\'') {
			return s.tracker.CreateSpan(before, c.Length+2)
		}
	}
	if c.Length > 0 {
		return s.tracker.CreateSpan(c.Index, c.Length)
	}
	return Span{}
}
