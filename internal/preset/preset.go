// Package preset manages named layout templates, both builtin and
// user-defined in a presets.yaml file.
package preset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abdullathedruid/splitmux/internal/layout"
)

// File is the on-disk shape of presets.yaml.
type File struct {
	Presets []Spec `yaml:"presets"`
}

// Spec is one named layout template as written by the user.
type Spec struct {
	Name   string   `yaml:"name"`
	Layout NodeSpec `yaml:"layout"`
}

// NodeSpec is the yaml form of a layout node. The populated fields
// decide the kind: first/second make a branch, children make a grid,
// anything else is a single pane.
type NodeSpec struct {
	Split    string     `yaml:"split,omitempty"` // branch axis: horizontal or vertical
	Ratio    float64    `yaml:"ratio,omitempty"`
	First    *NodeSpec  `yaml:"first,omitempty"`
	Second   *NodeSpec  `yaml:"second,omitempty"`
	Grid     string     `yaml:"grid,omitempty"` // grid axis: horizontal or vertical
	Sizes    []float64  `yaml:"sizes,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty"`
}

// Parse decodes a presets.yaml document into templates.
func Parse(data []byte) ([]layout.Template, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	templates := make([]layout.Template, 0, len(f.Presets))
	for i, spec := range f.Presets {
		tpl, err := spec.Template()
		if err != nil {
			return nil, fmt.Errorf("preset %d (%q): %w", i, spec.Name, err)
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// Template converts a Spec into a layout template. The shape gets
// placeholder pane IDs; instantiation mints fresh ones.
func (s Spec) Template() (layout.Template, error) {
	if s.Name == "" {
		return layout.Template{}, fmt.Errorf("preset has no name")
	}
	shape, err := s.Layout.node()
	if err != nil {
		return layout.Template{}, err
	}
	return layout.Template{
		ID:    "user:" + s.Name,
		Name:  s.Name,
		Shape: shape,
	}, nil
}

func (n NodeSpec) node() (layout.Node, error) {
	switch {
	case n.First != nil || n.Second != nil:
		if n.First == nil || n.Second == nil {
			return nil, fmt.Errorf("branch needs both first and second")
		}
		axis, err := parseAxis(n.Split)
		if err != nil {
			return nil, err
		}
		first, err := n.First.node()
		if err != nil {
			return nil, err
		}
		second, err := n.Second.node()
		if err != nil {
			return nil, err
		}
		ratio := n.Ratio
		if ratio == 0 {
			ratio = layout.DefaultRatio
		}
		return &layout.Branch{
			Axis:   axis,
			Ratio:  layout.ClampRatio(ratio),
			First:  first,
			Second: second,
		}, nil

	case len(n.Children) > 0:
		axis, err := parseAxis(n.Grid)
		if err != nil {
			return nil, err
		}
		children := make([]layout.Node, 0, len(n.Children))
		for _, c := range n.Children {
			child, err := c.node()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		// A one-element children list is not a real grid; use the child
		// directly so close-pane never meets a single-child grid.
		if len(children) == 1 {
			return children[0], nil
		}
		sizes := n.Sizes
		if len(sizes) != len(children) {
			sizes = layout.EvenSizes(len(children))
		} else {
			sizes = layout.RenormalizeSizes(sizes)
		}
		return &layout.Grid{
			ID:       layout.NewGridID(),
			Axis:     axis,
			Children: children,
			Sizes:    sizes,
		}, nil

	default:
		return &layout.Leaf{PaneID: layout.NewPaneID()}, nil
	}
}

// SpecOf converts a layout tree back to its yaml form, used by the
// inspector overlay and when persisting layouts by shape.
func SpecOf(node layout.Node) NodeSpec {
	switch n := node.(type) {
	case *layout.Branch:
		first := SpecOf(n.First)
		second := SpecOf(n.Second)
		return NodeSpec{
			Split:  string(n.Axis),
			Ratio:  n.Ratio,
			First:  &first,
			Second: &second,
		}
	case *layout.Grid:
		children := make([]NodeSpec, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, SpecOf(c))
		}
		return NodeSpec{
			Grid:     string(n.Axis),
			Sizes:    n.Sizes,
			Children: children,
		}
	default:
		return NodeSpec{}
	}
}

// Encode renders templates to yaml, the inverse of Parse.
func Encode(templates []layout.Template) ([]byte, error) {
	f := File{Presets: make([]Spec, 0, len(templates))}
	for _, tpl := range templates {
		f.Presets = append(f.Presets, Spec{
			Name:   tpl.Name,
			Layout: SpecOf(tpl.Shape),
		})
	}
	return yaml.Marshal(&f)
}

func parseAxis(s string) (layout.Axis, error) {
	switch s {
	case string(layout.Horizontal):
		return layout.Horizontal, nil
	case string(layout.Vertical):
		return layout.Vertical, nil
	case "":
		return layout.Horizontal, nil
	default:
		return "", fmt.Errorf("unknown axis %q", s)
	}
}
