package layout

import "math"

// Direction is a spatial focus-movement direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Box is a normalized bounding box within the unit square [0,1]^2.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Y0 + b.Y1) / 2 }

// navEpsilon rejects candidates whose center sits on the focused center's
// axis line within floating-point noise.
const navEpsilon = 1e-9

// Bounds computes each leaf's normalized bounding box by walking the tree:
// a Branch divides its box along its axis at the ratio boundary, a Grid
// divides its box along its axis using cumulative sizes.
func Bounds(root Node) map[string]Box {
	boxes := make(map[string]Box)
	assignBounds(root, Box{0, 0, 1, 1}, boxes)
	return boxes
}

func assignBounds(n Node, box Box, out map[string]Box) {
	switch t := n.(type) {
	case *Leaf:
		out[t.PaneID] = box
	case *Branch:
		if t.Axis == Horizontal {
			mid := box.X0 + (box.X1-box.X0)*t.Ratio
			assignBounds(t.First, Box{box.X0, box.Y0, mid, box.Y1}, out)
			assignBounds(t.Second, Box{mid, box.Y0, box.X1, box.Y1}, out)
		} else {
			mid := box.Y0 + (box.Y1-box.Y0)*t.Ratio
			assignBounds(t.First, Box{box.X0, box.Y0, box.X1, mid}, out)
			assignBounds(t.Second, Box{box.X0, mid, box.X1, box.Y1}, out)
		}
	case *Grid:
		offset := 0.0
		for i, c := range t.Children {
			share := 0.0
			if i < len(t.Sizes) {
				share = t.Sizes[i] / 100
			}
			if t.Axis == Horizontal {
				width := box.X1 - box.X0
				x0 := box.X0 + width*offset
				x1 := box.X0 + width*(offset+share)
				assignBounds(c, Box{x0, box.Y0, x1, box.Y1}, out)
			} else {
				height := box.Y1 - box.Y0
				y0 := box.Y0 + height*offset
				y1 := box.Y0 + height*(offset+share)
				assignBounds(c, Box{box.X0, y0, box.X1, y1}, out)
			}
			offset += share
		}
	}
}

// Navigate resolves a "move focus in direction d" query. A candidate leaf
// is eligible when its box center lies strictly on the requested side of
// the focused center along the requested axis. Among eligible candidates
// the winner minimizes, in order, the offset along the perpendicular axis
// (row/column-aligned neighbors first), then the distance along the primary
// axis. Returns the focused pane unchanged when nothing is eligible or the
// focused pane is unknown. Navigate is a pure function of its inputs.
func Navigate(root Node, focusedPaneID string, d Direction) string {
	boxes := Bounds(root)
	from, ok := boxes[focusedPaneID]
	if !ok {
		return focusedPaneID
	}
	cx, cy := from.CenterX(), from.CenterY()

	best := focusedPaneID
	bestPerp := math.Inf(1)
	bestPrimary := math.Inf(1)

	// Iterate leaves in pre-order so ties resolve deterministically.
	for _, l := range Leaves(root) {
		if l.PaneID == focusedPaneID {
			continue
		}
		b := boxes[l.PaneID]
		bx, by := b.CenterX(), b.CenterY()

		var primary, perp float64
		switch d {
		case Right:
			primary, perp = bx-cx, math.Abs(by-cy)
		case Left:
			primary, perp = cx-bx, math.Abs(by-cy)
		case Down:
			primary, perp = by-cy, math.Abs(bx-cx)
		case Up:
			primary, perp = cy-by, math.Abs(bx-cx)
		}
		if primary <= navEpsilon {
			continue
		}
		if perp < bestPerp-navEpsilon ||
			(math.Abs(perp-bestPerp) <= navEpsilon && primary < bestPrimary-navEpsilon) {
			best = l.PaneID
			bestPerp = perp
			bestPrimary = primary
		}
	}
	return best
}
