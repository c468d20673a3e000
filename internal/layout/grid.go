package layout

import "math"

// sizeTolerance is the floating-point slack allowed on the sum of grid
// sizes.
const sizeTolerance = 1e-6

// NewGrid builds a rows x cols arrangement of fresh empty leaves: an outer
// vertical Grid of row Grids, each splitting horizontally into cols cells.
// All sizes are even splits, rounded so each level sums to exactly 100 with
// the residual on the last entry. rows and cols below 1 are treated as 1.
func NewGrid(rows, cols int) Node {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows == 1 && cols == 1 {
		return NewLeaf()
	}

	rowNodes := make([]Node, rows)
	for r := range rowNodes {
		if cols == 1 {
			rowNodes[r] = NewLeaf()
			continue
		}
		cells := make([]Node, cols)
		for c := range cells {
			cells[c] = NewLeaf()
		}
		rowNodes[r] = &Grid{
			ID:       NewGridID(),
			Axis:     Horizontal,
			Children: cells,
			Sizes:    EvenSizes(cols),
		}
	}
	if rows == 1 {
		return rowNodes[0]
	}
	return &Grid{
		ID:       NewGridID(),
		Axis:     Vertical,
		Children: rowNodes,
		Sizes:    EvenSizes(rows),
	}
}

// EvenSizes returns n equal percentage shares rounded to two decimals, with
// the rounding residual added to the last entry so the sum is exactly 100.
func EvenSizes(n int) []float64 {
	if n < 1 {
		return nil
	}
	share := math.Round(100.0/float64(n)*100) / 100
	sizes := make([]float64, n)
	total := 0.0
	for i := 0; i < n-1; i++ {
		sizes[i] = share
		total += share
	}
	sizes[n-1] = 100 - total
	return sizes
}

// RenormalizeSizes rescales sizes proportionally so they sum to 100 again.
// User-adjusted proportions survive unrelated edits this way, instead of
// being reset to equal shares. Non-positive or degenerate input falls back
// to even splits.
func RenormalizeSizes(sizes []float64) []float64 {
	out := make([]float64, len(sizes))
	total := 0.0
	for _, s := range sizes {
		if s > 0 {
			total += s
		}
	}
	if total <= 0 {
		return EvenSizes(len(sizes))
	}
	sum := 0.0
	for i, s := range sizes {
		if s < 0 {
			s = 0
		}
		out[i] = s / total * 100
		sum += out[i]
	}
	// Push any floating-point residue onto the last entry.
	if len(out) > 0 {
		out[len(out)-1] += 100 - sum
	}
	return out
}

// SizesValid reports whether sizes matches the child count and sums to 100
// within tolerance.
func SizesValid(sizes []float64, children int) bool {
	if len(sizes) != children {
		return false
	}
	total := 0.0
	for _, s := range sizes {
		if s < 0 {
			return false
		}
		total += s
	}
	return math.Abs(total-100) <= sizeTolerance
}

// SetGridSizes replaces the named grid's sizes. Noisy input (wrong sum,
// negative entries) is renormalized rather than rejected; a length mismatch
// keeps the current sizes. The grid is located by its id anywhere in the
// tree.
func SetGridSizes(root Node, gridID string, sizes []float64) (Node, error) {
	found := false
	newRoot := replaceGrid(root, gridID, func(g *Grid) *Grid {
		found = true
		if len(sizes) != len(g.Children) {
			return g
		}
		next := g.Clone().(*Grid)
		next.Sizes = RenormalizeSizes(sizes)
		return next
	})
	if !found {
		return root, ErrPaneNotFound
	}
	return newRoot, nil
}

// gridWithoutChild removes child i, rescaling the remaining sizes so they
// again sum to 100 while preserving their relative proportions. A grid left
// with a single child collapses to that child, matching Branch sibling
// promotion. Removing the only child of a one-child grid leaves a fresh
// empty placeholder leaf so the tree never drops below one leaf.
func gridWithoutChild(g *Grid, i int) Node {
	if len(g.Children) <= 1 {
		return NewLeaf()
	}
	if len(g.Children) == 2 {
		return g.Children[1-i]
	}
	children := make([]Node, 0, len(g.Children)-1)
	sizes := make([]float64, 0, len(g.Sizes)-1)
	for j, c := range g.Children {
		if j == i {
			continue
		}
		children = append(children, c)
		sizes = append(sizes, g.Sizes[j])
	}
	return &Grid{
		ID:       g.ID,
		Axis:     g.Axis,
		Children: children,
		Sizes:    RenormalizeSizes(sizes),
	}
}

// replaceGrid rebuilds the path to the grid with the given id, swapping it
// for the replacement's result.
func replaceGrid(n Node, gridID string, replace func(*Grid) *Grid) Node {
	switch t := n.(type) {
	case *Grid:
		if t.ID == gridID {
			return replace(t)
		}
		for i, c := range t.Children {
			if r := replaceGrid(c, gridID, replace); r != c {
				children := make([]Node, len(t.Children))
				copy(children, t.Children)
				children[i] = r
				sizes := make([]float64, len(t.Sizes))
				copy(sizes, t.Sizes)
				return &Grid{ID: t.ID, Axis: t.Axis, Children: children, Sizes: sizes}
			}
		}
		return t
	case *Branch:
		if first := replaceGrid(t.First, gridID, replace); first != t.First {
			return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: first, Second: t.Second}
		}
		if second := replaceGrid(t.Second, gridID, replace); second != t.Second {
			return &Branch{Axis: t.Axis, Ratio: t.Ratio, First: t.First, Second: second}
		}
		return t
	}
	return n
}
