package layout

import "testing"

func TestInstantiate_FillsLeavesInOrder(t *testing.T) {
	tpl := Template{
		ID:   "side-by-side",
		Name: "Side by side",
		Shape: &Branch{
			Axis:   Horizontal,
			Ratio:  0.5,
			First:  &Leaf{},
			Second: &Leaf{},
		},
	}

	root := tpl.Instantiate([]string{"s1", "s2", "s3"})
	leaves := Leaves(root)
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if leaves[0].SessionID != "s1" || leaves[1].SessionID != "s2" {
		t.Errorf("sessions must fill front to back, got %s/%s", leaves[0].SessionID, leaves[1].SessionID)
	}
	// s3 is surplus: it still exists, just not shown.
	if DisplaysSession(root, "s3") {
		t.Error("surplus session must not be displayed")
	}
}

func TestInstantiate_SurplusLeavesStayEmpty(t *testing.T) {
	tpl := Template{
		Name: "quad",
		Shape: &Grid{
			Axis:     Vertical,
			Children: []Node{&Leaf{}, &Leaf{}, &Leaf{}, &Leaf{}},
			Sizes:    []float64{25, 25, 25, 25},
		},
	}

	root := tpl.Instantiate([]string{"only"})
	leaves := Leaves(root)
	if leaves[0].SessionID != "only" {
		t.Errorf("first leaf should hold the session, got %q", leaves[0].SessionID)
	}
	for i, l := range leaves[1:] {
		if l.SessionID != "" {
			t.Errorf("surplus leaf %d must stay empty, got %q", i+1, l.SessionID)
		}
	}
}

func TestInstantiate_FreshIdentity(t *testing.T) {
	tpl := Template{
		Name:  "pair",
		Shape: &Branch{Axis: Vertical, Ratio: 0.5, First: leaf("stale", "old"), Second: &Leaf{}},
	}

	root := tpl.Instantiate(nil)
	assertInvariants(t, root)
	for _, l := range Leaves(root) {
		if l.PaneID == "stale" {
			t.Error("instantiation must generate fresh pane ids")
		}
		if l.SessionID == "old" {
			t.Error("template session placeholders must not leak")
		}
	}

	// Two instantiations never share pane ids.
	other := tpl.Instantiate(nil)
	seen := map[string]bool{}
	for _, l := range Leaves(root) {
		seen[l.PaneID] = true
	}
	for _, l := range Leaves(other) {
		if seen[l.PaneID] {
			t.Error("pane ids must be unique across instantiations")
		}
	}
}

func TestInstantiate_RepairsTemplateGeometry(t *testing.T) {
	tpl := Template{
		Name: "sloppy",
		Shape: &Grid{
			Axis:     Horizontal,
			Children: []Node{&Leaf{}, &Leaf{}},
			Sizes:    []float64{1, 3}, // not summing to 100
		},
	}

	root := tpl.Instantiate(nil)
	g := root.(*Grid)
	if !SizesValid(g.Sizes, 2) {
		t.Errorf("instantiated sizes must sum to 100, got %v", g.Sizes)
	}
	if g.Sizes[0] != 25 || g.Sizes[1] != 75 {
		t.Errorf("proportions must be preserved, got %v", g.Sizes)
	}
}

func TestInstantiate_FlattensSingleChildGrid(t *testing.T) {
	tpl := Template{
		Name: "degenerate",
		Shape: &Grid{
			Axis:     Vertical,
			Children: []Node{&Leaf{}},
			Sizes:    []float64{100},
		},
	}

	root := tpl.Instantiate([]string{"s1"})
	l, ok := root.(*Leaf)
	if !ok {
		t.Fatalf("expected a leaf, got %T", root)
	}
	if l.SessionID != "s1" {
		t.Errorf("SessionID = %q, want s1", l.SessionID)
	}
}
