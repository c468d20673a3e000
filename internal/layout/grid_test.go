package layout

import (
	"math"
	"testing"
)

func TestNewGrid_TwoByTwo(t *testing.T) {
	root := NewGrid(2, 2)

	outer, ok := root.(*Grid)
	if !ok {
		t.Fatalf("expected outer grid, got %T", root)
	}
	if outer.Axis != Vertical {
		t.Errorf("outer grid must split vertically, got %s", outer.Axis)
	}
	if len(outer.Children) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(outer.Children))
	}
	if outer.Sizes[0] != 50 || outer.Sizes[1] != 50 {
		t.Errorf("expected row sizes [50 50], got %v", outer.Sizes)
	}

	for i, row := range outer.Children {
		g, ok := row.(*Grid)
		if !ok {
			t.Fatalf("row %d: expected grid, got %T", i, row)
		}
		if g.Axis != Horizontal {
			t.Errorf("row %d must split horizontally, got %s", i, g.Axis)
		}
		if len(g.Children) != 2 {
			t.Errorf("row %d: expected 2 cells, got %d", i, len(g.Children))
		}
		if g.Sizes[0] != 50 || g.Sizes[1] != 50 {
			t.Errorf("row %d: expected cell sizes [50 50], got %v", i, g.Sizes)
		}
		for j, cell := range g.Children {
			l, ok := cell.(*Leaf)
			if !ok {
				t.Fatalf("cell %d/%d: expected leaf, got %T", i, j, cell)
			}
			if l.SessionID != "" {
				t.Errorf("cell %d/%d must start empty", i, j)
			}
		}
	}

	if PaneCount(root) != 4 {
		t.Errorf("expected 4 panes, got %d", PaneCount(root))
	}
}

func TestNewGrid_SingleRowOrColumn(t *testing.T) {
	if _, ok := NewGrid(1, 1).(*Leaf); !ok {
		t.Error("1x1 grid should be a single leaf")
	}

	row, ok := NewGrid(1, 3).(*Grid)
	if !ok || row.Axis != Horizontal || len(row.Children) != 3 {
		t.Errorf("1x3 grid should be one horizontal grid of 3, got %+v", row)
	}

	col, ok := NewGrid(3, 1).(*Grid)
	if !ok || col.Axis != Vertical || len(col.Children) != 3 {
		t.Errorf("3x1 grid should be one vertical grid of 3, got %+v", col)
	}
}

func TestEvenSizes_SumExactly100(t *testing.T) {
	for n := 1; n <= 9; n++ {
		sizes := EvenSizes(n)
		if len(sizes) != n {
			t.Fatalf("n=%d: expected %d sizes, got %d", n, n, len(sizes))
		}
		total := 0.0
		for _, s := range sizes {
			total += s
		}
		if total != 100 {
			t.Errorf("n=%d: sizes must sum to exactly 100, got %v (%v)", n, total, sizes)
		}
	}

	three := EvenSizes(3)
	if three[0] != 33.33 || three[1] != 33.33 || three[2] != 33.34 {
		t.Errorf("rounding residual must land on the last cell, got %v", three)
	}
}

func TestRenormalizeSizes_PreservesProportions(t *testing.T) {
	out := RenormalizeSizes([]float64{30, 10})
	if math.Abs(out[0]-75) > sizeTolerance || math.Abs(out[1]-25) > sizeTolerance {
		t.Errorf("expected [75 25], got %v", out)
	}

	// Degenerate input falls back to even shares.
	out = RenormalizeSizes([]float64{0, 0, 0})
	if out[0] != EvenSizes(3)[0] {
		t.Errorf("zero sizes should fall back to even splits, got %v", out)
	}
}

func TestSetGridSizes(t *testing.T) {
	root := Node(&Grid{
		ID:       "g1",
		Axis:     Horizontal,
		Children: []Node{leaf("A", ""), leaf("B", "")},
		Sizes:    []float64{50, 50},
	})

	// Noisy input renormalizes instead of failing.
	newRoot, err := SetGridSizes(root, "g1", []float64{3, 1})
	if err != nil {
		t.Fatalf("setGridSizes failed: %v", err)
	}
	g := newRoot.(*Grid)
	if math.Abs(g.Sizes[0]-75) > sizeTolerance || math.Abs(g.Sizes[1]-25) > sizeTolerance {
		t.Errorf("expected renormalized [75 25], got %v", g.Sizes)
	}

	// Length mismatch keeps the current sizes.
	kept, err := SetGridSizes(root, "g1", []float64{100})
	if err != nil {
		t.Fatalf("setGridSizes failed: %v", err)
	}
	if !Equal(root, kept) {
		t.Error("length mismatch must leave sizes unchanged")
	}

	// Unknown grid id reports ErrPaneNotFound and leaves the tree alone.
	if _, err := SetGridSizes(root, "nope", []float64{50, 50}); err != ErrPaneNotFound {
		t.Errorf("expected ErrPaneNotFound, got %v", err)
	}
}
