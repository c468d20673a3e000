package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/ui"
)

const gridViewName = "grid-builder"

// GridController manages the grid builder overlay: the user types
// dimensions like "2x3" and gets a live preview before applying. The
// typed text lives in the input handler's buffer, which the status bar
// echoes.
type GridController struct {
	ctx     *Context
	visible bool
	gui     *gocui.Gui
}

// NewGridController creates a new grid builder controller.
func NewGridController(ctx *Context) *GridController {
	return &GridController{ctx: ctx}
}

// Name returns the view name.
func (c *GridController) Name() string {
	return gridViewName
}

// IsVisible returns whether the builder is visible.
func (c *GridController) IsVisible() bool {
	return c.visible
}

// Show opens the grid builder.
func (c *GridController) Show(g *gocui.Gui) error {
	c.visible = true
	c.gui = g
	c.ctx.Input.EnterInputMode("grid> ")
	return c.Layout(g)
}

// Hide closes the grid builder.
func (c *GridController) Hide(g *gocui.Gui) error {
	c.visible = false
	c.ctx.Input.ExitInputMode()
	return g.DeleteView(gridViewName)
}

// Edit handles key input for the builder.
func (c *GridController) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	switch {
	case key == gocui.KeyEsc:
		c.Hide(c.gui)
		return true
	case key == gocui.KeyEnter:
		c.apply()
		return true
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		c.ctx.Input.Backspace()
		c.Render(c.gui)
		return true
	case ch != 0 && mod == gocui.ModNone:
		if (ch >= '0' && ch <= '9') || ch == 'x' || ch == 'X' {
			c.ctx.Input.Append(ch)
			c.Render(c.gui)
		}
		return true
	}
	return false
}

// Layout sets up the builder view.
func (c *GridController) Layout(g *gocui.Gui) error {
	if !c.visible {
		return nil
	}

	maxX, maxY := g.Size()
	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, 40, 13)

	v, err := g.SetView(gridViewName, x0, y0, x1, y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	ui.ConfigureOverlay(v, "Grid Builder")
	v.Editable = true
	v.Editor = gocui.EditorFunc(c.Edit)

	if _, err := g.SetCurrentView(gridViewName); err != nil {
		return err
	}

	return c.Render(g)
}

// Keybindings registers the builder's special keys. View-scoped
// bindings match before globals; runes go through the Editor.
func (c *GridController) Keybindings(g *gocui.Gui) error {
	specials := []gocui.Key{
		gocui.KeyEsc, gocui.KeyEnter,
		gocui.KeyBackspace, gocui.KeyBackspace2,
	}
	for _, key := range specials {
		k := key
		if err := g.SetKeybinding(gridViewName, k, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
			c.Edit(v, k, 0, gocui.ModNone)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// Render renders the builder content.
func (c *GridController) Render(g *gocui.Gui) error {
	v, err := g.View(gridViewName)
	if err != nil {
		return err
	}

	v.Clear()

	buffer := c.ctx.Input.Buffer()
	fmt.Fprintf(v, " rows x cols: %s_\n", buffer)

	rows, cols, perr := ParseGridDims(buffer)
	if perr != nil {
		fmt.Fprintln(v, " e.g. 2x3 for two rows of three")
	} else {
		fmt.Fprintln(v, "")
		for _, line := range ui.LayoutPreview(layout.NewGrid(rows, cols), 34, 7) {
			fmt.Fprintf(v, " %s\n", line)
		}
	}

	fmt.Fprintln(v, "")
	fmt.Fprintln(v, " Enter: Apply  Esc: Cancel")

	return nil
}

func (c *GridController) apply() {
	rows, cols, err := ParseGridDims(c.ctx.Input.Buffer())
	if err != nil {
		return
	}

	c.ctx.Input.Consume()
	if err := c.Hide(c.gui); err != nil {
		return
	}
	if c.ctx.OnApplyGrid == nil {
		return
	}
	if err := c.ctx.OnApplyGrid(rows, cols); err != nil && c.ctx.Log != nil {
		c.ctx.Log.Error("apply grid", "rows", rows, "cols", cols, "error", err)
	}
}

// ParseGridDims parses "RxC" dimension input, e.g. "2x3".
func ParseGridDims(s string) (rows, cols int, err error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want RxC, got %q", s)
	}
	rows, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad row count %q", parts[0])
	}
	cols, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad column count %q", parts[1])
	}
	if rows < 1 || cols < 1 {
		return 0, 0, fmt.Errorf("grid must be at least 1x1")
	}
	return rows, cols, nil
}
