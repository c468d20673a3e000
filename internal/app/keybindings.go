package app

import (
	"fmt"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/config"
	"github.com/abdullathedruid/splitmux/internal/layout"
	"github.com/abdullathedruid/splitmux/internal/session"
)

const ratioStep = 0.05

// setupKeybindings registers the global, config-driven key handlers.
// Rune bindings never fire while an editable view (a pane in terminal
// mode, or an overlay's query field) is current; special keys do, so
// their handlers dispatch on mode and forward to the shell when typing.
func (a *App) setupKeybindings() error {
	g := a.gui

	// ctrl+q always drops back to normal mode.
	if err := g.SetKeybinding("", gocui.KeyCtrlQ, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
		a.input.EnterNormalMode()
		return nil
	}); err != nil {
		return err
	}

	keys := a.config.Keys
	bindings := []struct {
		key    string
		action func() error
	}{
		{keys.Quit, a.ctx.OnQuit},
		{keys.Help, func() error { return a.help.Toggle(g) }},
		{keys.SplitRight, func() error { return a.splitFocused(layout.Horizontal) }},
		{keys.SplitDown, func() error { return a.splitFocused(layout.Vertical) }},
		{keys.ClosePane, a.closeFocused},
		{keys.Collapse, a.collapse},
		{keys.NavUp, a.navigate(layout.Up)},
		{keys.NavDown, a.navigate(layout.Down)},
		{keys.NavLeft, a.navigate(layout.Left)},
		{keys.NavRight, a.navigate(layout.Right)},
		{keys.NewSession, a.newSession},
		{keys.AssignActive, a.assignActive},
		{keys.PresetPicker, func() error { return a.picker.Show(g) }},
		{keys.GridBuilder, func() error { return a.grid.Show(g) }},
		{keys.Inspector, func() error { return a.inspector.Toggle(g) }},
		{keys.GrowRatio, func() error { return a.adjustRatio(ratioStep) }},
		{keys.ShrinkRatio, func() error { return a.adjustRatio(-ratioStep) }},
		{keys.ScrollUp, func() error { return a.scrollFocused(a.config.ScrollLines) }},
		{keys.ScrollDown, func() error { return a.scrollFocused(-a.config.ScrollLines) }},
		{keys.SaveLayout, a.ctx.OnSaveLayout},
		{keys.EnterPane, a.enterTerminalMode},
	}

	for _, b := range bindings {
		parsed, err := config.ParseKey(b.key)
		if err != nil {
			return fmt.Errorf("binding %q: %w", b.key, err)
		}
		if err := g.SetKeybinding("", parsed.Value, parsed.Mod, a.normalHandler(parsed, b.action)); err != nil {
			return fmt.Errorf("binding %q: %w", b.key, err)
		}
	}

	// G jumps scrollback to live output.
	if err := g.SetKeybinding("", 'G', gocui.ModNone, a.normalHandler(config.Key{Value: 'G'}, func() error {
		if scroll := a.displays.Scroll(a.engine.FocusedSession()); scroll != nil {
			scroll.ScrollToBottom()
		}
		return nil
	})); err != nil {
		return err
	}

	return nil
}

// normalHandler wraps a normal-mode action with mode dispatch. In
// terminal mode the keypress belongs to the shell; in input mode the
// overlay's own bindings already consumed anything relevant.
func (a *App) normalHandler(key config.Key, action func() error) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		mode := a.input.Mode()
		if mode.IsTerminal() {
			a.forwardKey(key)
			return nil
		}
		if mode.IsInput() || a.overlayVisible() {
			return nil
		}
		return action()
	}
}

// forwardKey sends a globally-bound key to the focused shell. Unbound
// keys reach the pane editor directly and never come through here.
func (a *App) forwardKey(key config.Key) {
	r := a.focusedRunner()
	if r == nil {
		return
	}
	if key.IsRune() {
		r.Write([]byte(string(key.Rune())))
		return
	}
	if b := keyBytes(key.GocuiKey()); b != nil {
		r.Write(b)
	}
}

// terminalEditor forwards keystrokes on pane views to the focused
// session's pty while in terminal mode.
func (a *App) terminalEditor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	if !a.input.Mode().IsTerminal() {
		return false
	}
	r := a.focusedRunner()
	if r == nil {
		return false
	}

	if ch != 0 {
		if mod == gocui.ModAlt {
			r.Write(append([]byte{0x1b}, []byte(string(ch))...))
		} else {
			r.Write([]byte(string(ch)))
		}
		return true
	}
	if b := keyBytes(key); b != nil {
		r.Write(b)
		return true
	}
	return false
}

func (a *App) focusedRunner() session.Runner {
	sess := a.registry.Get(a.engine.FocusedSession())
	if sess == nil {
		return nil
	}
	return sess.Runner()
}

func (a *App) splitFocused(axis layout.Axis) error {
	newPane, err := a.engine.SplitFocused(axis)
	if err != nil {
		a.log.Warn("split rejected", "error", err)
		return nil
	}
	sess, err := a.spawnSession()
	if err != nil {
		return err
	}
	return a.engine.Assign(newPane, sess.ID)
}

// closeFocused removes the focused pane. A session no pane shows
// anymore is shut down with it.
func (a *App) closeFocused() error {
	sessionID := a.engine.FocusedSession()
	if err := a.engine.CloseFocused(); err != nil {
		a.log.Warn("close rejected", "error", err)
		return nil
	}
	if sessionID != "" && !layout.DisplaysSession(a.engine.State().Root, sessionID) {
		a.registry.Remove(sessionID)
	}
	return nil
}

// collapse keeps only the focused pane. Sessions that lose their pane
// stay alive in the registry and can be reassigned later.
func (a *App) collapse() error {
	if err := a.engine.Collapse(); err != nil {
		a.log.Warn("collapse rejected", "error", err)
	}
	return nil
}

func (a *App) navigate(d layout.Direction) func() error {
	return func() error {
		a.engine.NavigateFocus(d)
		return nil
	}
}

func (a *App) newSession() error {
	_, err := a.spawnSession()
	return err
}

// assignActive mirrors the globally active session into the focused
// pane.
func (a *App) assignActive() error {
	active := a.registry.ActiveSession()
	if active == "" {
		return nil
	}
	return a.engine.AssignFocused(active)
}

func (a *App) adjustRatio(delta float64) error {
	st := a.engine.State()
	current, ok := layout.NearestRatio(st.Root, st.Focused)
	if !ok {
		return nil
	}
	return a.engine.SetRatio(st.Focused, current+delta)
}

// scrollFocused moves the focused pane's scrollback; positive is up
// into history.
func (a *App) scrollFocused(lines int) error {
	scroll := a.displays.Scroll(a.engine.FocusedSession())
	if scroll == nil {
		return nil
	}
	if lines >= 0 {
		scroll.ScrollUp(lines)
	} else {
		scroll.ScrollDown(-lines)
	}
	return nil
}

func (a *App) enterTerminalMode() error {
	if a.engine.FocusedSession() == "" {
		return nil
	}
	if scroll := a.displays.Scroll(a.engine.FocusedSession()); scroll != nil {
		scroll.ScrollToBottom()
	}
	a.input.EnterTerminalMode()
	return nil
}

// keyBytes translates a gocui special key into the byte sequence a pty
// expects. Control characters map straight through; navigation keys use
// the usual xterm sequences.
func keyBytes(key gocui.Key) []byte {
	switch key {
	case gocui.KeyEnter:
		return []byte{'\r'}
	case gocui.KeyTab:
		return []byte{'\t'}
	case gocui.KeyEsc:
		return []byte{0x1b}
	case gocui.KeySpace:
		return []byte{' '}
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		return []byte{0x7f}
	case gocui.KeyArrowUp:
		return []byte("\x1b[A")
	case gocui.KeyArrowDown:
		return []byte("\x1b[B")
	case gocui.KeyArrowRight:
		return []byte("\x1b[C")
	case gocui.KeyArrowLeft:
		return []byte("\x1b[D")
	case gocui.KeyHome:
		return []byte("\x1b[H")
	case gocui.KeyEnd:
		return []byte("\x1b[F")
	case gocui.KeyDelete:
		return []byte("\x1b[3~")
	case gocui.KeyInsert:
		return []byte("\x1b[2~")
	case gocui.KeyPgup:
		return []byte("\x1b[5~")
	case gocui.KeyPgdn:
		return []byte("\x1b[6~")
	}
	// Control keys are their own single-byte codes.
	if key > 0 && key < 0x20 {
		return []byte{byte(key)}
	}
	return nil
}
