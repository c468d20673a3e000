package controller

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/ui"
	"github.com/abdullathedruid/splitmux/internal/version"
)

const statusBarViewName = "statusbar"

// StatusBarController manages the status bar at the bottom.
type StatusBarController struct {
	ctx *Context

	// FocusedTitle is refreshed by the app each frame.
	FocusedTitle string
}

// NewStatusBarController creates a new status bar controller.
func NewStatusBarController(ctx *Context) *StatusBarController {
	return &StatusBarController{ctx: ctx}
}

// Name returns the view name.
func (c *StatusBarController) Name() string {
	return statusBarViewName
}

// Layout sets up the status bar view.
func (c *StatusBarController) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	v, err := g.SetView(statusBarViewName, 0, maxY-2, maxX-1, maxY, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	v.Frame = false
	v.Wrap = false
	v.BgColor = ui.ColorAttr(c.ctx.Config.Theme.Colors.StatusBarBg)
	v.FgColor = ui.ColorAttr(c.ctx.Config.Theme.Colors.StatusBarFg) | gocui.AttrBold

	return nil
}

// Keybindings sets up status bar keybindings (none needed).
func (c *StatusBarController) Keybindings(g *gocui.Gui) error {
	return nil
}

// Render renders the status bar content.
func (c *StatusBarController) Render(g *gocui.Gui) error {
	v, err := g.View(statusBarViewName)
	if err != nil {
		return err
	}

	v.Clear()

	width, _ := v.Size()
	content := ui.RenderStatusBar(
		c.ctx.Input.Mode(),
		c.ctx.Engine.PaneCount(),
		c.ctx.Registry.Count(),
		c.FocusedTitle,
		c.ctx.Input.Prompt(),
		c.ctx.Input.Buffer(),
		version.Short(),
		width-2,
	)
	fmt.Fprint(v, " "+content)

	return nil
}
