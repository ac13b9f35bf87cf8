package fix

// ApplyEdits returns content with edits applied. The edits must come from
// PrepareEdits: in range, sorted and free of overlaps.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	out := make([]byte, 0, size)
	last := 0
	for _, e := range edits {
		out = append(out, content[last:e.StartOffset]...)
		out = append(out, e.NewText...)
		last = e.EndOffset
	}
	return append(out, content[last:]...)
}
