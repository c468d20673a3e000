package layout

// SessionSource is the synchronizer's view of the session registry: just
// enough to answer "which sessions exist" and "which one is active".
type SessionSource interface {
	// SessionIDs returns the ids of all live sessions in creation order.
	SessionIDs() []string
	// ActiveSession returns the id of the globally active session, or "".
	ActiveSession() string
}

// Synchronizer keeps the layout tree consistent with the live session set.
// It reacts to the registry's three event kinds with corrective mutations
// that are idempotent with respect to their triggering condition, so a
// single event never causes more than one pass of tree changes and the
// tree/registry pair cannot enter a correction loop. It never surfaces
// errors: when no corrective action applies, it takes none.
type Synchronizer struct {
	engine *Engine
	source SessionSource
}

// NewSynchronizer wires a synchronizer to the engine and the registry.
func NewSynchronizer(engine *Engine, source SessionSource) *Synchronizer {
	return &Synchronizer{engine: engine, source: source}
}

// SessionCreated assigns the new session to the first empty pane found in
// pre-order. With no empty pane the session stays unassigned; it remains
// selectable manually. A session already on display needs no correction,
// so replaying the event cannot mirror it into a second pane.
func (s *Synchronizer) SessionCreated(sessionID string) {
	st := s.engine.State()
	if DisplaysSession(st.Root, sessionID) {
		return
	}
	empty := FirstEmptyLeaf(st.Root)
	if empty == nil {
		return
	}
	// Assigning to an already-filled pane would not be idempotent; an
	// empty pane makes this a single, terminal correction.
	_ = s.engine.Assign(empty.PaneID, sessionID)
}

// SessionRemoved handles every orphan pane that displayed the removed
// session: if some live session is not currently displayed anywhere, the
// first such session takes the orphan's place; otherwise the orphan pane
// closes.
func (s *Synchronizer) SessionRemoved(sessionID string) {
	st := s.engine.State()
	for _, l := range Leaves(st.Root) {
		if l.SessionID != sessionID {
			continue
		}
		if replacement := s.firstUndisplayed(); replacement != "" {
			_ = s.engine.Assign(l.PaneID, replacement)
		} else {
			_ = s.engine.ClosePane(l.PaneID)
		}
		// Re-read: each correction changes which sessions are displayed
		// and which panes remain.
		st = s.engine.State()
	}
}

// ActiveChanged adopts an externally-driven active-session change: focus
// moves to a pane already displaying the session, without touching
// assignments. No displaying pane means no action.
func (s *Synchronizer) ActiveChanged(sessionID string) {
	st := s.engine.State()
	if l := FindLeaf(st.Root, st.Focused); l != nil && l.SessionID == sessionID {
		return // focus already shows it; nothing to correct
	}
	if l := FirstLeafWithSession(st.Root, sessionID); l != nil {
		_ = s.engine.SetFocus(l.PaneID)
	}
}

// firstUndisplayed returns the first live session shown in no pane, or "".
func (s *Synchronizer) firstUndisplayed() string {
	st := s.engine.State()
	shown := make(map[string]bool)
	for _, id := range VisibleSessionIDs(st.Root) {
		shown[id] = true
	}
	for _, id := range s.source.SessionIDs() {
		if !shown[id] {
			return id
		}
	}
	return ""
}
