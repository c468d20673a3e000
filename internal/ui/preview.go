package ui

import (
	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/pane"
)

// LayoutPreview draws a small ASCII sketch of a layout shape, used by
// the preset picker so the user can see what they are about to apply.
func LayoutPreview(root layout.Node, width, height int) []string {
	if width < 4 || height < 3 || root == nil {
		return nil
	}

	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = make([]rune, width)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}

	rects := pane.CellRects(root, width, height)
	for i, leaf := range layout.Leaves(root) {
		r, ok := rects[leaf.PaneID]
		if !ok {
			continue
		}
		drawRect(canvas, r)

		// Number the pane at its center in pre-order.
		if i < 9 {
			cx := (r.X0 + r.X1) / 2
			cy := (r.Y0 + r.Y1) / 2
			canvas[cy][cx] = rune('1' + i)
		}
	}

	lines := make([]string, height)
	for y, row := range canvas {
		lines[y] = string(row)
	}
	return lines
}

func drawRect(canvas [][]rune, r pane.Rect) {
	maxY := len(canvas) - 1
	maxX := len(canvas[0]) - 1
	x0, y0, x1, y1 := clampInt(r.X0, 0, maxX), clampInt(r.Y0, 0, maxY), clampInt(r.X1, 0, maxX), clampInt(r.Y1, 0, maxY)

	for x := x0; x <= x1; x++ {
		canvas[y0][x] = '─'
		canvas[y1][x] = '─'
	}
	for y := y0; y <= y1; y++ {
		canvas[y][x0] = '│'
		canvas[y][x1] = '│'
	}
	canvas[y0][x0] = '┌'
	canvas[y0][x1] = '┐'
	canvas[y1][x0] = '└'
	canvas[y1][x1] = '┘'
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
