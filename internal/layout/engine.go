package layout

import "sync"

// Engine owns the current split-view state and exposes the operation set to
// the presentation layer. Every operation reads the current state, runs a
// pure operator and atomically replaces the state with the result, so
// observers never see a partially-updated tree. All mutations are serialized
// behind one mutex; listeners fire outside it.
type Engine struct {
	mu       sync.RWMutex
	state    State
	maxPanes int

	// onFocusSession is told which session should become globally active
	// whenever focus lands on a leaf showing it (tree -> registry).
	onFocusSession func(sessionID string)

	// onMutate observes every state replacement (inspector, persistence).
	onMutate func(prev, next State)
}

// NewEngine returns an engine holding the degenerate single-leaf tree.
// maxPanes <= 0 means the default ceiling.
func NewEngine(maxPanes int) *Engine {
	if maxPanes <= 0 {
		maxPanes = DefaultMaxPanes
	}
	l := NewLeaf()
	return &Engine{
		state:    State{Root: l, Focused: l.PaneID},
		maxPanes: maxPanes,
	}
}

// SetFocusListener registers the registry-notification callback.
func (e *Engine) SetFocusListener(fn func(sessionID string)) {
	e.mu.Lock()
	e.onFocusSession = fn
	e.mu.Unlock()
}

// SetMutationListener registers an observer for state replacements.
func (e *Engine) SetMutationListener(fn func(prev, next State)) {
	e.mu.Lock()
	e.onMutate = fn
	e.mu.Unlock()
}

// State returns the current split-view state. The returned tree is never
// mutated in place, so callers may hold it across renders.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Restore replaces the whole state, e.g. from a persisted snapshot. A nil
// root or a missing focused pane is repaired rather than rejected.
func (e *Engine) Restore(s State) {
	if s.Root == nil {
		s.Root = NewLeaf()
	}
	if FindLeaf(s.Root, s.Focused) == nil {
		if first := FirstLeaf(s.Root); first != nil {
			s.Focused = first.PaneID
		}
	}
	e.replace(s)
}

// Split splits the pane along the axis and returns the new pane's id.
func (e *Engine) Split(paneID string, axis Axis) (string, error) {
	e.mu.Lock()
	root, newPane, err := Split(e.state.Root, paneID, axis, e.maxPanes)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	e.replaceLocked(State{Root: root, Focused: e.state.Focused})
	return newPane, nil
}

// SplitFocused splits the currently focused pane and moves focus to the new
// pane.
func (e *Engine) SplitFocused(axis Axis) (string, error) {
	e.mu.Lock()
	root, newPane, err := Split(e.state.Root, e.state.Focused, axis, e.maxPanes)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	e.replaceLocked(State{Root: root, Focused: newPane})
	return newPane, nil
}

// ClosePane removes the pane. When the focused pane is closed, focus
// transfers to the promoted sibling's first leaf, or failing that to the
// first remaining leaf in pre-order.
func (e *Engine) ClosePane(paneID string) error {
	e.mu.Lock()
	root, err := ClosePane(e.state.Root, paneID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	focused := e.state.Focused
	if FindLeaf(root, focused) == nil {
		if sibling := siblingLeaf(e.state.Root, paneID); sibling != "" && FindLeaf(root, sibling) != nil {
			focused = sibling
		} else if first := FirstLeaf(root); first != nil {
			focused = first.PaneID
		}
	}
	e.replaceLocked(State{Root: root, Focused: focused})
	return nil
}

// CloseFocused removes the currently focused pane.
func (e *Engine) CloseFocused() error {
	return e.ClosePane(e.FocusedPane())
}

// Assign shows the session in the named pane.
func (e *Engine) Assign(paneID, sessionID string) error {
	e.mu.Lock()
	root, err := Assign(e.state.Root, paneID, sessionID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.replaceLocked(State{Root: root, Focused: e.state.Focused})
	return nil
}

// AssignFocused shows the session in the focused pane.
func (e *Engine) AssignFocused(sessionID string) error {
	return e.Assign(e.FocusedPane(), sessionID)
}

// SetRatio adjusts the nearest ancestor branch of the reference pane.
func (e *Engine) SetRatio(refPaneID string, ratio float64) error {
	e.mu.Lock()
	root, err := SetRatio(e.state.Root, refPaneID, ratio)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.replaceLocked(State{Root: root, Focused: e.state.Focused})
	return nil
}

// SetGridSizes replaces the named grid's sizes, renormalizing noisy input.
func (e *Engine) SetGridSizes(gridID string, sizes []float64) error {
	e.mu.Lock()
	root, err := SetGridSizes(e.state.Root, gridID, sizes)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.replaceLocked(State{Root: root, Focused: e.state.Focused})
	return nil
}

// Collapse exits split view, keeping only the focused pane.
func (e *Engine) Collapse() error {
	e.mu.Lock()
	root, err := Collapse(e.state.Root, e.state.Focused)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.replaceLocked(State{Root: root, Focused: e.state.Focused})
	return nil
}

// ApplyTemplate replaces the tree wholesale with an instantiated preset,
// filling panes with the given sessions in list order.
func (e *Engine) ApplyTemplate(tpl Template, sessions []string) {
	root := tpl.Instantiate(sessions)
	focused := ""
	if first := FirstLeaf(root); first != nil {
		focused = first.PaneID
	}
	e.replace(State{Root: root, Focused: focused})
}

// ApplyGrid replaces the tree wholesale with a rows x cols grid of empty
// panes.
func (e *Engine) ApplyGrid(rows, cols int) {
	root := NewGrid(rows, cols)
	focused := ""
	if first := FirstLeaf(root); first != nil {
		focused = first.PaneID
	}
	e.replace(State{Root: root, Focused: focused})
}

// NavigateFocus moves focus in the given direction. Reports whether focus
// actually changed; no eligible neighbor leaves it unchanged.
func (e *Engine) NavigateFocus(d Direction) bool {
	e.mu.Lock()
	target := Navigate(e.state.Root, e.state.Focused, d)
	if target == e.state.Focused {
		e.mu.Unlock()
		return false
	}
	e.replaceLocked(State{Root: e.state.Root, Focused: target})
	return true
}

// SetFocus focuses the named pane directly.
func (e *Engine) SetFocus(paneID string) error {
	e.mu.Lock()
	if FindLeaf(e.state.Root, paneID) == nil {
		e.mu.Unlock()
		return ErrPaneNotFound
	}
	if e.state.Focused == paneID {
		e.mu.Unlock()
		return nil
	}
	e.replaceLocked(State{Root: e.state.Root, Focused: paneID})
	return nil
}

// FocusedPane returns the id of the focused leaf.
func (e *Engine) FocusedPane() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Focused
}

// FocusedSession returns the session shown in the focused leaf, or "".
func (e *Engine) FocusedSession() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if l := FindLeaf(e.state.Root, e.state.Focused); l != nil {
		return l.SessionID
	}
	return ""
}

// PaneCount returns the number of visible panes.
func (e *Engine) PaneCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return PaneCount(e.state.Root)
}

// VisibleSessionIDs returns the sessions on display, duplicates included
// when mirrored.
func (e *Engine) VisibleSessionIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return VisibleSessionIDs(e.state.Root)
}

// IsSplitActive reports whether the workspace is split at all.
func (e *Engine) IsSplitActive() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return IsSplitActive(e.state.Root)
}

// MaxPanes returns the configured split ceiling.
func (e *Engine) MaxPanes() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.maxPanes
}

// replace swaps the state under the lock and fires listeners outside it.
func (e *Engine) replace(next State) {
	e.mu.Lock()
	e.replaceLocked(next)
}

// replaceLocked swaps the state, releases the engine lock and fires
// listeners. The caller must hold e.mu; it is released here so listeners
// can re-enter read methods.
func (e *Engine) replaceLocked(next State) {
	prev := e.state
	e.state = next
	onMutate := e.onMutate
	onFocus := e.onFocusSession
	e.mu.Unlock()

	if onMutate != nil {
		onMutate(prev, next)
	}
	if onFocus != nil && next.Focused != prev.Focused {
		if l := FindLeaf(next.Root, next.Focused); l != nil && l.SessionID != "" {
			onFocus(l.SessionID)
		}
	}
}

// siblingLeaf returns the first leaf of the sibling subtree of the pane's
// Branch parent, or the neighboring child in a Grid parent. Used for focus
// transfer when the focused pane closes.
func siblingLeaf(root Node, paneID string) string {
	var sibling string
	Walk(root, func(n Node) bool {
		switch t := n.(type) {
		case *Branch:
			if l, ok := t.First.(*Leaf); ok && l.PaneID == paneID {
				if s := FirstLeaf(t.Second); s != nil {
					sibling = s.PaneID
				}
				return false
			}
			if l, ok := t.Second.(*Leaf); ok && l.PaneID == paneID {
				if s := FirstLeaf(t.First); s != nil {
					sibling = s.PaneID
				}
				return false
			}
		case *Grid:
			for i, c := range t.Children {
				l, ok := c.(*Leaf)
				if !ok || l.PaneID != paneID {
					continue
				}
				j := i + 1
				if j >= len(t.Children) {
					j = i - 1
				}
				if j >= 0 && j < len(t.Children) {
					if s := FirstLeaf(t.Children[j]); s != nil {
						sibling = s.PaneID
					}
				}
				return false
			}
		}
		return true
	})
	return sibling
}
