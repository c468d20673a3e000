package controller

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/ui"
)

const pickerViewName = "preset-picker"

const pickerMaxResults = 8

// PickerController manages the preset picker overlay. Typing filters
// templates by name; the selected one shows a shape preview.
type PickerController struct {
	ctx      *Context
	visible  bool
	query    string
	results  []layout.Template
	selected int
	gui      *gocui.Gui
}

// NewPickerController creates a new preset picker controller.
func NewPickerController(ctx *Context) *PickerController {
	return &PickerController{ctx: ctx}
}

// Name returns the view name.
func (c *PickerController) Name() string {
	return pickerViewName
}

// IsVisible returns whether the picker is visible.
func (c *PickerController) IsVisible() bool {
	return c.visible
}

// Show opens the picker with a cleared query.
func (c *PickerController) Show(g *gocui.Gui) error {
	c.visible = true
	c.query = ""
	c.selected = 0
	c.gui = g
	c.updateResults()
	c.ctx.Input.EnterInputMode("preset> ")
	return c.Layout(g)
}

// Hide closes the picker.
func (c *PickerController) Hide(g *gocui.Gui) error {
	c.visible = false
	c.query = ""
	c.ctx.Input.ExitInputMode()
	return g.DeleteView(pickerViewName)
}

// Edit handles key input for the picker.
func (c *PickerController) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	switch {
	case key == gocui.KeyEsc:
		c.Hide(c.gui)
		return true
	case key == gocui.KeyEnter:
		c.apply()
		return true
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		if len(c.query) > 0 {
			c.query = c.query[:len(c.query)-1]
			c.ctx.Input.Backspace()
			c.selected = 0
			c.updateResults()
		}
		c.Render(c.gui)
		return true
	case key == gocui.KeyArrowDown || key == gocui.KeyCtrlN:
		if c.selected < len(c.results)-1 {
			c.selected++
		}
		c.Render(c.gui)
		return true
	case key == gocui.KeyArrowUp || key == gocui.KeyCtrlP:
		if c.selected > 0 {
			c.selected--
		}
		c.Render(c.gui)
		return true
	case ch != 0 && mod == gocui.ModNone:
		c.query += string(ch)
		c.ctx.Input.Append(ch)
		c.selected = 0
		c.updateResults()
		c.Render(c.gui)
		return true
	}
	return false
}

// Layout sets up the picker view.
func (c *PickerController) Layout(g *gocui.Gui) error {
	if !c.visible {
		return nil
	}

	maxX, maxY := g.Size()
	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, 52, 20)

	v, err := g.SetView(pickerViewName, x0, y0, x1, y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	ui.ConfigureOverlay(v, "Apply Preset")
	v.Editable = true
	v.Editor = gocui.EditorFunc(c.Edit)

	if _, err := g.SetCurrentView(pickerViewName); err != nil {
		return err
	}

	return c.Render(g)
}

// Keybindings registers the picker's special keys. View-scoped
// bindings match before globals, so Enter and friends reach the picker
// instead of any global handler; runes go through the Editor.
func (c *PickerController) Keybindings(g *gocui.Gui) error {
	specials := []gocui.Key{
		gocui.KeyEsc, gocui.KeyEnter,
		gocui.KeyArrowUp, gocui.KeyArrowDown,
		gocui.KeyCtrlN, gocui.KeyCtrlP,
		gocui.KeyBackspace, gocui.KeyBackspace2,
	}
	for _, key := range specials {
		k := key
		if err := g.SetKeybinding(pickerViewName, k, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
			c.Edit(v, k, 0, gocui.ModNone)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// Render renders the picker content.
func (c *PickerController) Render(g *gocui.Gui) error {
	v, err := g.View(pickerViewName)
	if err != nil {
		return err
	}

	v.Clear()

	fmt.Fprintf(v, " > %s_\n", c.query)
	fmt.Fprintln(v, " ──────────────────────────────────────────────")

	if len(c.results) == 0 {
		fmt.Fprintln(v, " No matching presets")
	}

	shown := len(c.results)
	if shown > pickerMaxResults {
		shown = pickerMaxResults
	}
	for i := 0; i < shown; i++ {
		tpl := c.results[i]
		prefix := "  "
		if i == c.selected {
			prefix = "> "
		}
		fmt.Fprintf(v, "%s%s (%d panes)\n", prefix, tpl.Name, layout.PaneCount(tpl.Shape))
	}
	if len(c.results) > shown {
		fmt.Fprintf(v, " ... and %d more\n", len(c.results)-shown)
	}

	if c.selected < len(c.results) {
		fmt.Fprintln(v, "")
		for _, line := range ui.LayoutPreview(c.results[c.selected].Shape, 44, 6) {
			fmt.Fprintf(v, " %s\n", line)
		}
	}

	fmt.Fprintln(v, "")
	fmt.Fprintln(v, " Enter: Apply  Esc: Cancel")

	return nil
}

func (c *PickerController) updateResults() {
	c.results = c.ctx.Catalog.Search(c.query)
}

func (c *PickerController) apply() {
	if c.selected >= len(c.results) {
		return
	}
	tpl := c.results[c.selected]

	if err := c.Hide(c.gui); err != nil {
		return
	}
	if c.ctx.OnApplyTemplate == nil {
		return
	}
	if err := c.ctx.OnApplyTemplate(tpl); err != nil && c.ctx.Log != nil {
		c.ctx.Log.Error("apply preset", "preset", tpl.Name, "error", err)
	}
}
