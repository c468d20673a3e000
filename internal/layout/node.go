// Package layout implements the split-view pane layout tree and its operators.
package layout

import (
	"github.com/google/uuid"
)

// Axis is the direction along which a Branch or Grid divides its space.
type Axis string

const (
	// Horizontal places children side by side (divides along x).
	Horizontal Axis = "horizontal"
	// Vertical stacks children top to bottom (divides along y).
	Vertical Axis = "vertical"
)

// Node is one node of the layout tree. Exactly three kinds exist:
// Leaf (a visible pane), Branch (a binary split) and Grid (an n-ary split).
// Trees are treated as immutable: operators return new trees and never
// mutate their input.
type Node interface {
	isNode()
	// Clone returns a deep copy of the subtree.
	Clone() Node
}

// Leaf is a single visible pane. SessionID is empty while the pane is
// awaiting assignment.
type Leaf struct {
	PaneID    string
	SessionID string
}

// Branch is a binary split. Ratio is the first child's share of the split
// axis and always lies within [MinRatio, 1-MinRatio].
type Branch struct {
	Axis   Axis
	Ratio  float64
	First  Node
	Second Node
}

// Grid is an n-ary split. Sizes[i] is child i's percentage share along the
// axis; the sizes always sum to 100.
type Grid struct {
	ID       string
	Axis     Axis
	Children []Node
	Sizes    []float64
}

func (*Leaf) isNode()   {}
func (*Branch) isNode() {}
func (*Grid) isNode()   {}

// Clone returns a copy of the leaf.
func (l *Leaf) Clone() Node {
	c := *l
	return &c
}

// Clone returns a deep copy of the branch.
func (b *Branch) Clone() Node {
	return &Branch{
		Axis:   b.Axis,
		Ratio:  b.Ratio,
		First:  b.First.Clone(),
		Second: b.Second.Clone(),
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() Node {
	children := make([]Node, len(g.Children))
	for i, c := range g.Children {
		children[i] = c.Clone()
	}
	sizes := make([]float64, len(g.Sizes))
	copy(sizes, g.Sizes)
	return &Grid{ID: g.ID, Axis: g.Axis, Children: children, Sizes: sizes}
}

// State is the complete split-view state: the root of the layout tree plus
// the pane that currently has input focus.
type State struct {
	Root    Node
	Focused string
}

// NewPaneID returns a fresh unique pane identifier.
func NewPaneID() string {
	return uuid.NewString()
}

// NewGridID returns a fresh unique grid identifier.
func NewGridID() string {
	return uuid.NewString()
}

// NewLeaf returns an empty leaf with a fresh pane id.
func NewLeaf() *Leaf {
	return &Leaf{PaneID: NewPaneID()}
}

// Walk visits every node of the tree in pre-order. The visitor returns
// false to stop the walk early.
func Walk(n Node, visit func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	switch t := n.(type) {
	case *Branch:
		if !Walk(t.First, visit) {
			return false
		}
		return Walk(t.Second, visit)
	case *Grid:
		for _, c := range t.Children {
			if !Walk(c, visit) {
				return false
			}
		}
	}
	return true
}

// Leaves returns all leaves of the tree in pre-order.
func Leaves(n Node) []*Leaf {
	var leaves []*Leaf
	Walk(n, func(node Node) bool {
		if l, ok := node.(*Leaf); ok {
			leaves = append(leaves, l)
		}
		return true
	})
	return leaves
}

// FindLeaf returns the leaf with the given pane id, or nil.
func FindLeaf(n Node, paneID string) *Leaf {
	var found *Leaf
	Walk(n, func(node Node) bool {
		if l, ok := node.(*Leaf); ok && l.PaneID == paneID {
			found = l
			return false
		}
		return true
	})
	return found
}

// FirstLeaf returns the first leaf in pre-order. A well-formed tree always
// has at least one.
func FirstLeaf(n Node) *Leaf {
	leaves := Leaves(n)
	if len(leaves) == 0 {
		return nil
	}
	return leaves[0]
}

// PaneCount returns the number of leaves in the tree.
func PaneCount(n Node) int {
	return len(Leaves(n))
}

// VisibleSessionIDs returns every non-empty session id shown in the tree,
// in pre-order, with duplicates when a session is mirrored.
func VisibleSessionIDs(n Node) []string {
	var ids []string
	for _, l := range Leaves(n) {
		if l.SessionID != "" {
			ids = append(ids, l.SessionID)
		}
	}
	return ids
}

// DisplaysSession reports whether any leaf currently shows the session.
func DisplaysSession(n Node, sessionID string) bool {
	for _, l := range Leaves(n) {
		if l.SessionID == sessionID {
			return true
		}
	}
	return false
}

// FirstLeafWithSession returns the first pre-order leaf displaying the
// session, or nil.
func FirstLeafWithSession(n Node, sessionID string) *Leaf {
	for _, l := range Leaves(n) {
		if l.SessionID == sessionID {
			return l
		}
	}
	return nil
}

// FirstEmptyLeaf returns the first pre-order leaf with no session, or nil.
func FirstEmptyLeaf(n Node) *Leaf {
	for _, l := range Leaves(n) {
		if l.SessionID == "" {
			return l
		}
	}
	return nil
}

// IsSplitActive reports whether the tree is anything more than the
// degenerate single leaf.
func IsSplitActive(n Node) bool {
	_, isLeaf := n.(*Leaf)
	return !isLeaf
}

// Equal reports whether two trees are structurally identical: same shape,
// same pane and session ids, same ratios and sizes.
func Equal(a, b Node) bool {
	switch ta := a.(type) {
	case *Leaf:
		tb, ok := b.(*Leaf)
		return ok && ta.PaneID == tb.PaneID && ta.SessionID == tb.SessionID
	case *Branch:
		tb, ok := b.(*Branch)
		return ok && ta.Axis == tb.Axis && ta.Ratio == tb.Ratio &&
			Equal(ta.First, tb.First) && Equal(ta.Second, tb.Second)
	case *Grid:
		tb, ok := b.(*Grid)
		if !ok || ta.Axis != tb.Axis || len(ta.Children) != len(tb.Children) ||
			len(ta.Sizes) != len(tb.Sizes) {
			return false
		}
		for i := range ta.Sizes {
			if ta.Sizes[i] != tb.Sizes[i] {
				return false
			}
		}
		for i := range ta.Children {
			if !Equal(ta.Children[i], tb.Children[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
