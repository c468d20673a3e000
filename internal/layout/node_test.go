package layout

import "testing"

func TestEqual_GridSizesLengthMismatch(t *testing.T) {
	a := &Grid{
		ID:       "g1",
		Axis:     Horizontal,
		Children: []Node{leaf("A", ""), leaf("B", "")},
		Sizes:    []float64{50, 50},
	}
	b := &Grid{
		ID:       "g2",
		Axis:     Horizontal,
		Children: []Node{leaf("A", ""), leaf("B", "")},
		Sizes:    nil, // malformed, e.g. hand-built input
	}

	if Equal(a, b) {
		t.Error("grids with different sizes lengths must not be equal")
	}
	if Equal(b, a) {
		t.Error("comparison must hold in both directions")
	}
	if !Equal(a, a.Clone()) {
		t.Error("a grid must equal its clone")
	}
}
