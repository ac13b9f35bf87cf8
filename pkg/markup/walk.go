package markup

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(e *Element) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(root *Element, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.Children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all elements in the tree matching the predicate, in pre-order.
func FindAll(root *Element, pred func(*Element) bool) []*Element {
	var result []*Element

	_ = Walk(root, func(e *Element) error {
		if pred(e) {
			result = append(result, e)
		}
		return nil
	})

	return result
}

// FindFirst returns the first element in pre-order matching the predicate.
func FindFirst(root *Element, pred func(*Element) bool) (*Element, bool) {
	var found *Element

	_ = Walk(root, func(e *Element) error {
		if found == nil && pred(e) {
			found = e
		}
		return nil
	})

	return found, found != nil
}

// ServerTags returns every tag marked runat="server".
func ServerTags(root *Element) []*Element {
	return FindAll(root, func(e *Element) bool {
		return e.Kind == KindTag && e.RunAtServer
	})
}
