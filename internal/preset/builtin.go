package preset

import (
	"github.com/abdullathedruid/splitmux/internal/layout"
)

// Builtins returns the templates that ship with the application.
// Shapes are rebuilt on every call so instantiation never shares nodes.
func Builtins() []layout.Template {
	return []layout.Template{
		{
			ID:    "builtin:single",
			Name:  "single",
			Shape: &layout.Leaf{PaneID: layout.NewPaneID()},
		},
		{
			ID:   "builtin:columns",
			Name: "columns",
			Shape: &layout.Branch{
				Axis:   layout.Horizontal,
				Ratio:  0.5,
				First:  &layout.Leaf{PaneID: layout.NewPaneID()},
				Second: &layout.Leaf{PaneID: layout.NewPaneID()},
			},
		},
		{
			ID:   "builtin:rows",
			Name: "rows",
			Shape: &layout.Branch{
				Axis:   layout.Vertical,
				Ratio:  0.5,
				First:  &layout.Leaf{PaneID: layout.NewPaneID()},
				Second: &layout.Leaf{PaneID: layout.NewPaneID()},
			},
		},
		{
			ID:   "builtin:main-left",
			Name: "main-left",
			Shape: &layout.Branch{
				Axis:  layout.Horizontal,
				Ratio: 0.6,
				First: &layout.Leaf{PaneID: layout.NewPaneID()},
				Second: &layout.Branch{
					Axis:   layout.Vertical,
					Ratio:  0.5,
					First:  &layout.Leaf{PaneID: layout.NewPaneID()},
					Second: &layout.Leaf{PaneID: layout.NewPaneID()},
				},
			},
		},
		{
			ID:   "builtin:main-top",
			Name: "main-top",
			Shape: &layout.Branch{
				Axis:  layout.Vertical,
				Ratio: 0.7,
				First: &layout.Leaf{PaneID: layout.NewPaneID()},
				Second: &layout.Branch{
					Axis:   layout.Horizontal,
					Ratio:  0.5,
					First:  &layout.Leaf{PaneID: layout.NewPaneID()},
					Second: &layout.Leaf{PaneID: layout.NewPaneID()},
				},
			},
		},
		{
			ID:    "builtin:thirds",
			Name:  "thirds",
			Shape: layout.NewGrid(1, 3),
		},
		{
			ID:    "builtin:quad",
			Name:  "quad",
			Shape: layout.NewGrid(2, 2),
		},
	}
}
