package layout

// Structural operators. All of them are pure: they locate the target node
// by id, return a new tree and leave the input untouched. Unchanged
// subtrees are shared between the old and new tree, which is safe because
// no code path ever mutates a node after construction.

const (
	// DefaultRatio is the first child's share in a fresh split.
	DefaultRatio = 0.5

	// MinRatio bounds Branch ratios away from degenerate zero-width panes.
	MinRatio = 0.05

	// DefaultMaxPanes is the split ceiling used when the config does not
	// override it.
	DefaultMaxPanes = 12
)

// ClampRatio clamps a ratio into [MinRatio, 1-MinRatio]. User-drag input is
// inherently noisy, so out-of-range values clamp instead of failing.
func ClampRatio(r float64) float64 {
	if r < MinRatio {
		return MinRatio
	}
	if r > 1-MinRatio {
		return 1 - MinRatio
	}
	return r
}

// Split replaces the leaf at paneID with a Branch along the given axis.
// The original leaf keeps its session and becomes the first child; the
// second child is a fresh empty leaf whose id is returned so the caller can
// assign a session to it immediately. Exceeding maxPanes is rejected with
// ErrMaxPanes; maxPanes <= 0 means unlimited.
func Split(root Node, paneID string, axis Axis, maxPanes int) (Node, string, error) {
	if FindLeaf(root, paneID) == nil {
		return root, "", ErrPaneNotFound
	}
	if maxPanes > 0 && PaneCount(root)+1 > maxPanes {
		return root, "", ErrMaxPanes
	}
	fresh := NewLeaf()
	newRoot := replaceLeaf(root, paneID, func(l *Leaf) Node {
		return &Branch{
			Axis:   axis,
			Ratio:  DefaultRatio,
			First:  l.Clone(),
			Second: fresh,
		}
	})
	return newRoot, fresh.PaneID, nil
}

// Assign sets the session shown in exactly the named leaf. Showing the same
// session in several leaves (mirroring) is intentional and not an error.
func Assign(root Node, paneID, sessionID string) (Node, error) {
	if FindLeaf(root, paneID) == nil {
		return root, ErrPaneNotFound
	}
	newRoot := replaceLeaf(root, paneID, func(l *Leaf) Node {
		return &Leaf{PaneID: l.PaneID, SessionID: sessionID}
	})
	return newRoot, nil
}

// ClosePane removes the leaf at paneID. A Branch parent disappears and its
// sibling subtree inherits the whole region; a Grid parent drops the child
// and rescales the remaining sizes proportionally back to 100. Closing the
// tree's sole leaf yields a fresh empty placeholder leaf (split view
// inactive).
func ClosePane(root Node, paneID string) (Node, error) {
	if FindLeaf(root, paneID) == nil {
		return root, ErrPaneNotFound
	}
	if l, ok := root.(*Leaf); ok && l.PaneID == paneID {
		return NewLeaf(), nil
	}
	newRoot, _ := removePane(root, paneID)
	return newRoot, nil
}

// removePane removes the leaf from the subtree, promoting siblings as
// needed. Returns the replacement subtree and whether the leaf was found.
func removePane(n Node, paneID string) (Node, bool) {
	switch t := n.(type) {
	case *Leaf:
		return t, false
	case *Branch:
		if l, ok := t.First.(*Leaf); ok && l.PaneID == paneID {
			return t.Second, true
		}
		if l, ok := t.Second.(*Leaf); ok && l.PaneID == paneID {
			return t.First, true
		}
		if first, found := removePane(t.First, paneID); found {
			return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: first, Second: t.Second}, true
		}
		if second, found := removePane(t.Second, paneID); found {
			return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: t.First, Second: second}, true
		}
		return t, false
	case *Grid:
		for i, c := range t.Children {
			if l, ok := c.(*Leaf); ok && l.PaneID == paneID {
				return gridWithoutChild(t, i), true
			}
		}
		for i, c := range t.Children {
			if replaced, found := removePane(c, paneID); found {
				children := make([]Node, len(t.Children))
				copy(children, t.Children)
				children[i] = replaced
				sizes := make([]float64, len(t.Sizes))
				copy(sizes, t.Sizes)
				return &Grid{ID: t.ID, Axis: t.Axis, Children: children, Sizes: sizes}, true
			}
		}
		return t, false
	}
	return n, false
}

// SetRatio adjusts the nearest ancestor Branch of the reference pane. The
// ratio is clamped into [MinRatio, 1-MinRatio]. When the pane exists but
// has no Branch ancestor (sole leaf, or a pane directly inside grids only)
// there is nothing to resize and the tree is returned unchanged.
func SetRatio(root Node, refPaneID string, ratio float64) (Node, error) {
	if FindLeaf(root, refPaneID) == nil {
		return root, ErrPaneNotFound
	}
	newRoot, _, _ := setRatioNearest(root, refPaneID, ClampRatio(ratio))
	return newRoot, nil
}

// NearestRatio returns the ratio of the deepest Branch containing the
// pane, the one SetRatio would adjust. The second result is false when
// the pane has no Branch ancestor.
func NearestRatio(root Node, paneID string) (float64, bool) {
	ratio, found := 0.0, false
	var walk func(n Node) bool
	walk = func(n Node) bool {
		switch t := n.(type) {
		case *Leaf:
			return t.PaneID == paneID
		case *Branch:
			if walk(t.First) || walk(t.Second) {
				if !found {
					ratio, found = t.Ratio, true
				}
				return true
			}
		case *Grid:
			for _, c := range t.Children {
				if walk(c) {
					return true
				}
			}
		}
		return false
	}
	walk(root)
	return ratio, found
}

// setRatioNearest returns (replacement, subtree contains pane, a Branch was
// adjusted). The deepest Branch containing the pane wins.
func setRatioNearest(n Node, paneID string, ratio float64) (Node, bool, bool) {
	switch t := n.(type) {
	case *Leaf:
		return t, t.PaneID == paneID, false
	case *Branch:
		if first, contains, applied := setRatioNearest(t.First, paneID, ratio); contains {
			if applied {
				return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: first, Second: t.Second}, true, true
			}
			return &Branch{Axis: t.Axis, Ratio: ratio, First: t.First, Second: t.Second}, true, true
		}
		if second, contains, applied := setRatioNearest(t.Second, paneID, ratio); contains {
			if applied {
				return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: t.First, Second: second}, true, true
			}
			return &Branch{Axis: t.Axis, Ratio: ratio, First: t.First, Second: t.Second}, true, true
		}
		return t, false, false
	case *Grid:
		for i, c := range t.Children {
			if replaced, contains, applied := setRatioNearest(c, paneID, ratio); contains {
				if !applied {
					// Pane lives under this grid with no Branch between;
					// a grid has sizes, not a ratio, so nothing changes.
					return t, true, false
				}
				children := make([]Node, len(t.Children))
				copy(children, t.Children)
				children[i] = replaced
				sizes := make([]float64, len(t.Sizes))
				copy(sizes, t.Sizes)
				return &Grid{ID: t.ID, Axis: t.Axis, Children: children, Sizes: sizes}, true, true
			}
		}
		return t, false, false
	}
	return n, false, false
}

// Collapse discards every pane except the one named, returning the
// degenerate single-leaf tree that marks split view inactive.
func Collapse(root Node, keepPaneID string) (Node, error) {
	l := FindLeaf(root, keepPaneID)
	if l == nil {
		return root, ErrPaneNotFound
	}
	return l.Clone(), nil
}

// replaceLeaf rebuilds the path from the root to the named leaf, swapping
// the leaf for whatever the replacement function returns.
func replaceLeaf(n Node, paneID string, replace func(*Leaf) Node) Node {
	switch t := n.(type) {
	case *Leaf:
		if t.PaneID == paneID {
			return replace(t)
		}
		return t
	case *Branch:
		if FindLeaf(t.First, paneID) != nil {
			return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: replaceLeaf(t.First, paneID, replace), Second: t.Second}
		}
		if FindLeaf(t.Second, paneID) != nil {
			return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: t.First, Second: replaceLeaf(t.Second, paneID, replace)}
		}
		return t
	case *Grid:
		for i, c := range t.Children {
			if FindLeaf(c, paneID) == nil {
				continue
			}
			children := make([]Node, len(t.Children))
			copy(children, t.Children)
			children[i] = replaceLeaf(c, paneID, replace)
			sizes := make([]float64, len(t.Sizes))
			copy(sizes, t.Sizes)
			return &Grid{ID: t.ID, Axis: t.Axis, Children: children, Sizes: sizes}
		}
		return t
	}
	return n
}
