package pane

import (
	"github.com/abdullathedruid/splitmux/internal/layout"
)

// StatusBarHeight is the height reserved for the status bar at the bottom.
const StatusBarHeight = 2

// Rect is the position and size of a pane in screen coordinates,
// inclusive on both corners as gocui expects.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Width returns the interior width (excluding borders).
func (r Rect) Width() int {
	w := r.X1 - r.X0 - 1
	if w < 1 {
		return 1
	}
	return w
}

// Height returns the interior height (excluding borders).
func (r Rect) Height() int {
	h := r.Y1 - r.Y0 - 1
	if h < 1 {
		return 1
	}
	return h
}

// CellRects projects the normalized pane boxes of a layout tree onto a
// character grid of the given size. Fractional edges round to the same
// cell on both sides of a divider, so adjacent panes share borders and
// the full area is covered without gaps.
func CellRects(root layout.Node, maxX, maxY int) map[string]Rect {
	rects := make(map[string]Rect)
	if root == nil || maxX < 2 || maxY < 2 {
		return rects
	}

	for paneID, box := range layout.Bounds(root) {
		x0 := edge(box.X0, maxX)
		x1 := edge(box.X1, maxX) - 1
		y0 := edge(box.Y0, maxY)
		y1 := edge(box.Y1, maxY) - 1

		if x1 > maxX-1 {
			x1 = maxX - 1
		}
		if y1 > maxY-1 {
			y1 = maxY - 1
		}
		x0, x1 = spread(x0, x1, maxX)
		y0, y1 = spread(y0, y1, maxY)
		rects[paneID] = Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
	}
	return rects
}

// spread widens a collapsed interval to at least one cell, staying
// inside [0, size-1].
func spread(lo, hi, size int) (int, int) {
	if hi > lo {
		return lo, hi
	}
	if lo > 0 {
		return hi - 1, hi
	}
	return 0, 1
}

// edge maps a normalized coordinate to a cell column/row boundary.
func edge(v float64, size int) int {
	e := int(v*float64(size) + 0.5)
	if e < 0 {
		return 0
	}
	if e > size {
		return size
	}
	return e
}
