package markup

import "unicode/utf8"

// Position is a handle into a Tracker's position arena.
// The offset a handle refers to moves when text is inserted before it.
type Position int

// Tracker owns the document buffer and every offset registered against it.
// Offsets are rune indices into the buffer.
type Tracker struct {
	text      []rune
	positions []int
}

// NewTracker creates a tracker over text.
func NewTracker(text string) *Tracker {
	return &Tracker{text: []rune(text)}
}

// Text returns the current buffer contents.
func (t *Tracker) Text() string {
	return string(t.text)
}

// Runes returns the buffer. Callers must not modify it.
func (t *Tracker) Runes() []rune {
	return t.text
}

// Len returns the buffer length in runes.
func (t *Tracker) Len() int {
	return len(t.text)
}

// Offset returns the current rune offset of a registered position.
func (t *Tracker) Offset(p Position) int {
	return t.positions[p]
}

// ByteOffset converts a rune offset into a byte offset in Text().
func (t *Tracker) ByteOffset(runeOffset int) int {
	if runeOffset <= 0 {
		return 0
	}
	if runeOffset > len(t.text) {
		runeOffset = len(t.text)
	}

	n := 0
	for _, r := range t.text[:runeOffset] {
		n += utf8.RuneLen(r)
	}
	return n
}

// CreateSpan registers a span covering length runes starting at pos.
// The end position is inclusive.
func (t *Tracker) CreateSpan(pos, length int) Span {
	start := t.register(pos)
	end := t.register(pos + length - 1)
	return Span{tracker: t, start: start, end: end}
}

// Insert inserts text at pos and shifts every registered position at or after
// pos by the inserted length. It returns a span covering the new text.
// Nothing happens when the buffer or text is empty or pos lies outside
// [0, Len()].
func (t *Tracker) Insert(pos int, text string) (Span, bool) {
	if len(t.text) == 0 || text == "" || pos < 0 || pos > len(t.text) {
		return Span{}, false
	}

	inserted := []rune(text)
	buf := make([]rune, 0, len(t.text)+len(inserted))
	buf = append(buf, t.text[:pos]...)
	buf = append(buf, inserted...)
	buf = append(buf, t.text[pos:]...)
	t.text = buf

	for i, off := range t.positions {
		if off >= pos {
			t.positions[i] = off + len(inserted)
		}
	}

	return t.CreateSpan(pos, len(inserted)), true
}

// Substring returns the inclusive range [start, end] of the buffer.
func (t *Tracker) Substring(start, end int) string {
	if start < 0 || end >= len(t.text) || end < start {
		return ""
	}
	return string(t.text[start : end+1])
}

func (t *Tracker) register(offset int) Position {
	t.positions = append(t.positions, offset)
	return Position(len(t.positions) - 1)
}

// Span is an inclusive range of the tracker's buffer.
// The zero Span denotes "no span".
type Span struct {
	tracker *Tracker
	start   Position
	end     Position
}

// IsZero reports whether s is the absent span.
func (s Span) IsZero() bool {
	return s.tracker == nil
}

// Start returns the current offset of the first rune.
func (s Span) Start() int {
	if s.tracker == nil {
		return 0
	}
	return s.tracker.Offset(s.start)
}

// End returns the current offset of the last rune.
func (s Span) End() int {
	if s.tracker == nil {
		return -1
	}
	return s.tracker.Offset(s.end)
}

// Len returns the span length in runes.
func (s Span) Len() int {
	return s.End() - s.Start() + 1
}

// Text returns the spanned text.
func (s Span) Text() string {
	if s.tracker == nil {
		return ""
	}
	return s.tracker.Substring(s.Start(), s.End())
}

// ByteRange returns the half-open byte range of the span within Tracker.Text().
func (s Span) ByteRange() (int, int) {
	if s.tracker == nil {
		return 0, 0
	}
	return s.tracker.ByteOffset(s.Start()), s.tracker.ByteOffset(s.End() + 1)
}
