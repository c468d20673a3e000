package layout

// Template is a named, fixed layout-tree shape used as a one-shot template.
// Leaf pane ids and session assignments in the shape are placeholders;
// Instantiate generates fresh ids and fills sessions in list order.
type Template struct {
	ID    string
	Name  string
	Shape Node
}

// Instantiate builds a concrete tree from the template: every leaf gets a
// fresh pane id, and leaves are filled with the given sessions front to
// back in pre-order. Surplus template leaves stay empty; surplus sessions
// are simply not shown.
func (t Template) Instantiate(sessions []string) Node {
	next := 0
	return instantiateNode(t.Shape, sessions, &next)
}

func instantiateNode(n Node, sessions []string, next *int) Node {
	switch t := n.(type) {
	case *Leaf:
		l := NewLeaf()
		if *next < len(sessions) {
			l.SessionID = sessions[*next]
			*next++
		}
		return l
	case *Branch:
		return &Branch{
			Axis:   t.Axis,
			Ratio:  ClampRatio(t.Ratio),
			First:  instantiateNode(t.First, sessions, next),
			Second: instantiateNode(t.Second, sessions, next),
		}
	case *Grid:
		children := make([]Node, len(t.Children))
		for i, c := range t.Children {
			children[i] = instantiateNode(c, sessions, next)
		}
		// A one-child grid is just its child.
		if len(children) == 1 {
			return children[0]
		}
		sizes := t.Sizes
		if len(sizes) != len(children) {
			sizes = EvenSizes(len(children))
		} else {
			sizes = RenormalizeSizes(sizes)
		}
		return &Grid{
			ID:       NewGridID(),
			Axis:     t.Axis,
			Children: children,
			Sizes:    sizes,
		}
	}
	return NewLeaf()
}
