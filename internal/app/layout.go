package app

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/input"
	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/pane"
	"github.com/abdullathedruid/splitmux/internal/session"
	"github.com/abdullathedruid/splitmux/internal/ui"
)

// layoutViews is the gocui manager function. It projects the layout
// tree onto the screen each frame: one view per leaf, overlays on top,
// status bar at the bottom.
func (a *App) layoutViews(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	st := a.engine.State()
	mode := a.input.Mode()

	rects := pane.CellRects(st.Root, maxX, maxY-pane.StatusBarHeight)
	leaves := layout.Leaves(st.Root)

	seen := make(map[string]bool, len(leaves))
	nextRects := make(map[string]pane.Rect, len(leaves))

	var focusedLeaf *layout.Leaf
	for _, l := range leaves {
		r, ok := rects[l.PaneID]
		if !ok {
			continue
		}
		nextRects[l.PaneID] = r
		if l.PaneID == st.Focused {
			focusedLeaf = l
		}

		name := pane.ViewName(l.PaneID)
		seen[name] = true

		v, err := g.SetView(name, r.X0, r.Y0, r.X1, r.Y1, 0)
		if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}

		if prev, had := a.lastRects[l.PaneID]; (!had || prev != r) && l.SessionID != "" {
			var src pane.Source
			if s := a.registry.Get(l.SessionID); s != nil {
				src = s.Runner()
			}
			a.displays.Resize(l.SessionID, src, r.Width(), r.Height())
		}

		scroll := a.displays.Scroll(l.SessionID)
		ui.ConfigurePaneView(v, ui.PaneViewOpts{
			Title:      a.paneTitle(l),
			Focused:    l.PaneID == st.Focused,
			Mode:       mode,
			Scrolled:   scroll != nil && scroll.IsScrolled(),
			FocusColor: ui.ColorAttr(a.config.Theme.Colors.FocusBorder),
		})
		v.Editor = gocui.EditorFunc(a.terminalEditor)

		v.Clear()
		a.renderPane(v, l, r.Width(), r.Height())
	}

	for name := range a.knownViews {
		if !seen[name] {
			g.DeleteView(name)
		}
	}
	a.knownViews = seen
	a.lastRects = nextRects

	for _, c := range a.controllers() {
		if c == a.statusBar {
			continue
		}
		if err := c.Layout(g); err != nil {
			return err
		}
	}

	if focusedLeaf != nil {
		a.statusBar.FocusedTitle = a.paneTitle(focusedLeaf)
	} else {
		a.statusBar.FocusedTitle = ""
	}
	if err := a.statusBar.Layout(g); err != nil {
		return err
	}
	if err := a.statusBar.Render(g); err != nil {
		return err
	}

	return a.applyFocus(g, focusedLeaf, mode)
}

// applyFocus routes gocui's current view and cursor to the focused
// pane, unless an overlay owns the screen.
func (a *App) applyFocus(g *gocui.Gui, focusedLeaf *layout.Leaf, mode input.Mode) error {
	if a.overlayVisible() {
		g.Cursor = mode.IsInput()
		return nil
	}

	if focusedLeaf == nil {
		g.Cursor = false
		return nil
	}

	name := pane.ViewName(focusedLeaf.PaneID)
	if _, err := g.SetCurrentView(name); err != nil {
		if a.firstCall {
			return err
		}
		return nil
	}
	a.firstCall = false

	if mode.IsTerminal() && focusedLeaf.SessionID != "" {
		if term := a.displays.Terminal(focusedLeaf.SessionID); term != nil {
			x, y := term.Cursor()
			if v, err := g.View(name); err == nil {
				v.SetCursor(x, y)
			}
			g.Cursor = term.CursorVisible()
			return nil
		}
	}
	g.Cursor = false
	return nil
}

// renderPane draws the pane's content: scrollback history when
// scrolled, the live emulator screen otherwise, a hint when empty.
func (a *App) renderPane(v *gocui.View, l *layout.Leaf, width, height int) {
	if l.SessionID == "" {
		hint := fmt.Sprintf("%s new shell  %s assign active",
			a.config.Keys.NewSession, a.config.Keys.AssignActive)
		fmt.Fprintf(v, "\n%s\n\n", ui.Center("no session", width))
		for _, line := range ui.WrapText(hint, width-4) {
			fmt.Fprintln(v, ui.Center(line, width))
		}
		return
	}

	if scroll := a.displays.Scroll(l.SessionID); scroll != nil {
		if lines, ok := scroll.View(height); ok {
			ui.RenderScrollback(v, lines)
			return
		}
	}
	if term := a.displays.Terminal(l.SessionID); term != nil {
		ui.RenderTerminal(v, term)
	}
}

// paneTitle builds the frame title: status icon, session name and the
// foreground command when one is running.
func (a *App) paneTitle(l *layout.Leaf) string {
	if l.SessionID == "" {
		return ui.EmptyIcon(a.config.Theme) + " empty"
	}
	sess := a.registry.Get(l.SessionID)
	if sess == nil {
		return "shell"
	}
	title := ui.StatusIcon(a.config.Theme, sess.Status) + " " + sess.Name
	if sess.Status != session.StatusRunning {
		// The pane can show a dead session until the synchronizer's
		// correction lands on the gui loop.
		return title + " [" + ui.StatusLabel(a.config.Theme, sess.Status) + "]"
	}
	if fg := a.titler.Title(a.pids[l.SessionID]); fg != "" {
		title += ": " + fg
	}
	return title
}

// overlayVisible reports whether any modal overlay is on screen.
func (a *App) overlayVisible() bool {
	return a.help.IsVisible() || a.picker.IsVisible() || a.grid.IsVisible() || a.inspector.IsVisible()
}
