package layout

import (
	"math"
	"testing"
)

// grid2x2 builds a 2x2 grid with known pane ids:
//
//	[ TL ][ TR ]
//	[ BL ][ BR ]
func grid2x2() Node {
	return &Grid{
		ID:   "outer",
		Axis: Vertical,
		Children: []Node{
			&Grid{ID: "top", Axis: Horizontal, Children: []Node{leaf("TL", ""), leaf("TR", "")}, Sizes: []float64{50, 50}},
			&Grid{ID: "bottom", Axis: Horizontal, Children: []Node{leaf("BL", ""), leaf("BR", "")}, Sizes: []float64{50, 50}},
		},
		Sizes: []float64{50, 50},
	}
}

func TestBounds_BranchRatio(t *testing.T) {
	root := &Branch{Axis: Horizontal, Ratio: 0.25, First: leaf("A", ""), Second: leaf("B", "")}
	boxes := Bounds(root)

	a := boxes["A"]
	if a.X0 != 0 || a.X1 != 0.25 || a.Y0 != 0 || a.Y1 != 1 {
		t.Errorf("unexpected box for A: %+v", a)
	}
	b := boxes["B"]
	if b.X0 != 0.25 || b.X1 != 1 {
		t.Errorf("unexpected box for B: %+v", b)
	}
}

func TestBounds_GridCumulativeSizes(t *testing.T) {
	root := &Grid{
		ID:       "g",
		Axis:     Vertical,
		Children: []Node{leaf("A", ""), leaf("B", ""), leaf("C", "")},
		Sizes:    []float64{20, 30, 50},
	}
	boxes := Bounds(root)

	if b := boxes["B"]; math.Abs(b.Y0-0.2) > 1e-12 || math.Abs(b.Y1-0.5) > 1e-12 {
		t.Errorf("unexpected box for B: %+v", b)
	}
	if c := boxes["C"]; math.Abs(c.Y0-0.5) > 1e-12 || math.Abs(c.Y1-1.0) > 1e-12 {
		t.Errorf("unexpected box for C: %+v", c)
	}
}

func TestNavigate_Grid2x2(t *testing.T) {
	root := grid2x2()

	cases := []struct {
		from string
		dir  Direction
		want string
	}{
		{"TL", Right, "TR"},
		{"TL", Down, "BL"},
		{"TL", Up, "TL"},   // no eligible candidate above the top row
		{"TL", Left, "TL"}, // nothing to the left either
		{"TR", Left, "TL"},
		{"TR", Down, "BR"},
		{"BR", Up, "TR"},
		{"BL", Right, "BR"},
	}
	for _, c := range cases {
		if got := Navigate(root, c.from, c.dir); got != c.want {
			t.Errorf("navigate(%s, %s) = %s, want %s", c.from, c.dir, got, c.want)
		}
	}
}

func TestNavigate_PrefersAlignedNeighbor(t *testing.T) {
	// Left half is one tall pane; right half is split into a short top pane
	// and a tall bottom pane. Moving right from the left pane must pick the
	// neighbor whose center is closest on the perpendicular (y) axis.
	root := &Branch{
		Axis:  Horizontal,
		Ratio: 0.5,
		First: leaf("L", ""),
		Second: &Branch{
			Axis:   Vertical,
			Ratio:  0.2,
			First:  leaf("RT", ""),
			Second: leaf("RB", ""),
		},
	}

	// L's center is y=0.5; RT's center is y=0.1, RB's is y=0.6.
	if got := Navigate(root, "L", Right); got != "RB" {
		t.Errorf("expected RB (row-aligned), got %s", got)
	}
}

func TestNavigate_MixedBranchGrid(t *testing.T) {
	// A branch whose second child is a grid: arbitrary nesting must still
	// navigate without any adjacency bookkeeping.
	root := &Branch{
		Axis:  Horizontal,
		Ratio: 0.4,
		First: leaf("A", ""),
		Second: &Grid{
			ID:       "g",
			Axis:     Vertical,
			Children: []Node{leaf("B", ""), leaf("C", ""), leaf("D", "")},
			Sizes:    []float64{33.33, 33.33, 33.34},
		},
	}

	if got := Navigate(root, "A", Right); got != "C" {
		t.Errorf("expected middle cell C, got %s", got)
	}
	if got := Navigate(root, "C", Left); got != "A" {
		t.Errorf("expected A, got %s", got)
	}
	if got := Navigate(root, "B", Down); got != "C" {
		t.Errorf("expected C, got %s", got)
	}
	if got := Navigate(root, "D", Down); got != "D" {
		t.Errorf("expected unchanged focus at bottom, got %s", got)
	}
}

func TestNavigate_Deterministic(t *testing.T) {
	root := grid2x2()
	first := Navigate(root, "TL", Right)
	for i := 0; i < 50; i++ {
		if got := Navigate(root, "TL", Right); got != first {
			t.Fatalf("navigate must be deterministic: run %d gave %s, first gave %s", i, got, first)
		}
	}
}

func TestNavigate_UnknownPaneUnchanged(t *testing.T) {
	root := grid2x2()
	if got := Navigate(root, "nope", Right); got != "nope" {
		t.Errorf("unknown focus must be returned unchanged, got %s", got)
	}
}
