package layout

import (
	"errors"
	"testing"
)

func TestEngine_StartsInactive(t *testing.T) {
	e := NewEngine(0)
	if e.IsSplitActive() {
		t.Error("fresh engine must hold the degenerate single-leaf tree")
	}
	if e.PaneCount() != 1 {
		t.Errorf("expected 1 pane, got %d", e.PaneCount())
	}
	if e.FocusedPane() == "" {
		t.Error("focus must always name a leaf")
	}
}

// TestEngine_SplitAssignClose runs the canonical workspace scenario:
// split a populated pane, fill the new one, then close the original.
func TestEngine_SplitAssignClose(t *testing.T) {
	e := NewEngine(0)
	paneA := e.FocusedPane()
	if err := e.Assign(paneA, "s1"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	paneB, err := e.Split(paneA, Horizontal)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !e.IsSplitActive() {
		t.Error("split view must be active after the first split")
	}
	if err := e.Assign(paneB, "s2"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	ids := e.VisibleSessionIDs()
	if len(ids) != 2 || ids[0] != "s1" || ids[1] != "s2" {
		t.Errorf("expected both panes populated, got %v", ids)
	}

	if err := e.SetFocus(paneA); err != nil {
		t.Fatalf("setFocus: %v", err)
	}
	if err := e.CloseFocused(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st := e.State()
	l, ok := st.Root.(*Leaf)
	if !ok {
		t.Fatalf("expected single leaf after close, got %T", st.Root)
	}
	if l.PaneID != paneB || l.SessionID != "s2" {
		t.Errorf("expected surviving pane %s/s2, got %s/%s", paneB, l.PaneID, l.SessionID)
	}
	if st.Focused != paneB {
		t.Errorf("focus must transfer to the sibling, got %s", st.Focused)
	}
	if e.IsSplitActive() {
		t.Error("split view must be inactive again")
	}
}

func TestEngine_SplitFocusedMovesFocus(t *testing.T) {
	e := NewEngine(0)
	newPane, err := e.SplitFocused(Vertical)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if e.FocusedPane() != newPane {
		t.Errorf("focus should land on the new pane, got %s", e.FocusedPane())
	}
}

func TestEngine_MaxPanesRejected(t *testing.T) {
	e := NewEngine(2)
	if _, err := e.SplitFocused(Horizontal); err != nil {
		t.Fatalf("first split: %v", err)
	}
	before := e.State()
	if _, err := e.SplitFocused(Horizontal); !errors.Is(err, ErrMaxPanes) {
		t.Fatalf("expected ErrMaxPanes, got %v", err)
	}
	if !Equal(before.Root, e.State().Root) {
		t.Error("rejected split must leave the tree in its last valid state")
	}
}

func TestEngine_FocusListener(t *testing.T) {
	e := NewEngine(0)
	paneA := e.FocusedPane()
	if err := e.Assign(paneA, "s1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	paneB, err := e.Split(paneA, Horizontal)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if err := e.Assign(paneB, "s2"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	var notified []string
	e.SetFocusListener(func(sessionID string) {
		notified = append(notified, sessionID)
	})

	if err := e.SetFocus(paneB); err != nil {
		t.Fatalf("setFocus: %v", err)
	}
	if len(notified) != 1 || notified[0] != "s2" {
		t.Errorf("expected registry notification for s2, got %v", notified)
	}

	// Refocusing the same pane is not a focus change.
	if err := e.SetFocus(paneB); err != nil {
		t.Fatalf("setFocus: %v", err)
	}
	if len(notified) != 1 {
		t.Errorf("no duplicate notification expected, got %v", notified)
	}
}

func TestEngine_NavigateFocus(t *testing.T) {
	e := NewEngine(0)
	e.ApplyGrid(2, 2)

	st := e.State()
	leaves := Leaves(st.Root)
	if st.Focused != leaves[0].PaneID {
		t.Fatalf("grid focus should start at the first pane")
	}

	if !e.NavigateFocus(Right) {
		t.Fatal("expected focus to move right")
	}
	if e.FocusedPane() != leaves[1].PaneID {
		t.Errorf("expected top-right pane, got %s", e.FocusedPane())
	}
	if e.NavigateFocus(Up) {
		t.Error("no pane above the top row; focus must be unchanged")
	}
	if !e.NavigateFocus(Down) {
		t.Fatal("expected focus to move down")
	}
	if e.FocusedPane() != leaves[3].PaneID {
		t.Errorf("expected bottom-right pane, got %s", e.FocusedPane())
	}
}

func TestEngine_ApplyTemplate(t *testing.T) {
	e := NewEngine(0)
	tpl := Template{
		Name:  "pair",
		Shape: &Branch{Axis: Horizontal, Ratio: 0.5, First: &Leaf{}, Second: &Leaf{}},
	}
	e.ApplyTemplate(tpl, []string{"s1"})

	st := e.State()
	leaves := Leaves(st.Root)
	if len(leaves) != 2 {
		t.Fatalf("expected 2 panes, got %d", len(leaves))
	}
	if leaves[0].SessionID != "s1" || leaves[1].SessionID != "" {
		t.Errorf("template fill order wrong: %s/%s", leaves[0].SessionID, leaves[1].SessionID)
	}
	if st.Focused != leaves[0].PaneID {
		t.Errorf("focus should land on the first pane")
	}
}

func TestEngine_RestoreRepairsFocus(t *testing.T) {
	e := NewEngine(0)
	root := &Branch{Axis: Horizontal, Ratio: 0.5, First: leaf("A", "s1"), Second: leaf("B", "")}
	e.Restore(State{Root: root, Focused: "gone"})

	if e.FocusedPane() != "A" {
		t.Errorf("restore must repair a dangling focus to the first leaf, got %s", e.FocusedPane())
	}

	e.Restore(State{})
	if e.State().Root == nil || e.FocusedPane() == "" {
		t.Error("restore of an empty snapshot must produce a valid placeholder state")
	}
}

func TestEngine_MutationListenerSeesAtomicSwap(t *testing.T) {
	e := NewEngine(0)
	var prevRoots, nextRoots []Node
	e.SetMutationListener(func(prev, next State) {
		prevRoots = append(prevRoots, prev.Root)
		nextRoots = append(nextRoots, next.Root)
	})

	if _, err := e.SplitFocused(Horizontal); err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(prevRoots) != 1 {
		t.Fatalf("expected one mutation, got %d", len(prevRoots))
	}
	if _, ok := prevRoots[0].(*Leaf); !ok {
		t.Error("previous state must be the pre-split tree")
	}
	if _, ok := nextRoots[0].(*Branch); !ok {
		t.Error("next state must be the post-split tree")
	}
}
