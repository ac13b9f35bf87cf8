package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks that all edits have valid ranges for the given content length.
// Returns the first validation error encountered.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// overlaps reports whether next cannot be applied after prev. Two inserts at
// the same offset overlap because their order would be ambiguous.
func overlaps(prev, next TextEdit) bool {
	if next.StartOffset < prev.EndOffset {
		return true
	}
	return prev.IsInsert() && next.IsInsert() && prev.StartOffset == next.StartOffset
}

// FilterConflicts splits sorted edits into accepted and skipped ones.
// Earlier edits (by start position) take precedence.
func FilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted := make([]TextEdit, 0, len(edits))
	var skipped []TextEdit

	accepted = append(accepted, edits[0])
	for _, edit := range edits[1:] {
		if overlaps(accepted[len(accepted)-1], edit) {
			skipped = append(skipped, edit)
			continue
		}
		accepted = append(accepted, edit)
	}

	return accepted, skipped
}

// PrepareEdits validates, sorts and filters conflicting edits. Duplicate
// edits collapse into one. It returns the edits to apply and the skipped
// ones; the error reports invalid ranges only.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	sorted = slices.Compact(sorted)

	accepted, skipped := FilterConflicts(sorted)
	return accepted, skipped, nil
}
