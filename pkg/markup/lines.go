package markup

import "sort"

// LineIndex maps rune offsets to 1-based line and column numbers.
type LineIndex struct {
	starts []int
	length int
}

// NewLineIndex indexes the line starts of text. CRLF counts as one line break.
func NewLineIndex(text []rune) *LineIndex {
	starts := []int{0}
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, length: len(text)}
}

// LineCount returns the number of lines.
func (l *LineIndex) LineCount() int {
	return len(l.starts)
}

// LineAt converts a rune offset to 1-based line and column numbers.
// Column counts runes. Returns (0, 0) if the offset is negative.
func (l *LineIndex) LineAt(offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > l.length {
		offset = l.length
	}

	idx := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	}) - 1

	return idx + 1, offset - l.starts[idx] + 1
}

// Lines returns a line index over the document's current text.
func (d *Document) Lines() *LineIndex {
	return NewLineIndex(d.Tracker.Runes())
}

// Position returns the 1-based line and column where e starts.
func (d *Document) Position(e *Element) (int, int) {
	if e == nil || e.Span.IsZero() {
		return 0, 0
	}
	return d.Lines().LineAt(e.Span.Start())
}
