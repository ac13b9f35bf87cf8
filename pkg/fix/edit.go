// Package fix turns check fixes into document changes. Checks describe
// fixes as byte-range edits of the decoded document text; the pipeline
// validates and applies them, and dry runs render them as unified diffs.
package fix

import "github.com/yaklabco/aspxgen/pkg/markup"

// TextEdit replaces the bytes [StartOffset, EndOffset) of a document.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// IsInsert reports whether the edit replaces nothing.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// EditBuilder collects the edits of one fix.
type EditBuilder struct {
	Edits []TextEdit
}

func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// ReplaceSpan adds an edit that replaces the bytes covered by span.
// The span must belong to a tracker over the file's unedited text.
func (b *EditBuilder) ReplaceSpan(span markup.Span, newText string) {
	start, end := span.ByteRange()
	b.ReplaceRange(start, end, newText)
}

// Insert adds text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete removes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
