// Package ui provides gocui view management and rendering utilities.
package ui

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/splitmux/internal/input"
	"github.com/abdullathedruid/splitmux/internal/pane"
)

// RenderTerminal renders a SafeTerminal's content to a gocui view.
// Recovers from panics that can occur during resize race conditions.
func RenderTerminal(v *gocui.View, term *pane.SafeTerminal) {
	defer func() {
		if r := recover(); r != nil {
			// Silently ignore - will redraw on next update
		}
	}()

	var sb strings.Builder
	if err := term.Render(&sb); err != nil {
		return
	}
	fmt.Fprint(v, sb.String())
}

// RenderScrollback renders scrolled history lines instead of the live
// screen.
func RenderScrollback(v *gocui.View, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(v, line)
	}
}

// PaneViewOpts describes how a pane view should look this frame.
type PaneViewOpts struct {
	Title      string
	Focused    bool
	Mode       input.Mode
	Scrolled   bool
	FocusColor gocui.Attribute
}

// ConfigurePaneView sets up a gocui view for a pane with proper styling.
func ConfigurePaneView(v *gocui.View, opts PaneViewOpts) {
	title := " " + opts.Title + " "
	if opts.Focused {
		title = fmt.Sprintf(" [%s] %s ", opts.Mode.String(), opts.Title)
	}
	if opts.Scrolled {
		title += "(scroll) "
	}
	v.Title = title

	if opts.Focused {
		// Heavy box-drawing frame marks the focused pane
		v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
		if opts.Mode.IsTerminal() {
			v.FrameColor = gocui.ColorGreen
		} else {
			v.FrameColor = opts.FocusColor
		}
	} else {
		v.FrameRunes = []rune{'─', '│', '┌', '┐', '└', '┘'}
		v.FrameColor = gocui.ColorDefault
	}
	v.Frame = true
	v.Wrap = false
	v.Editable = opts.Mode.IsTerminal() && opts.Focused
}

// ConfigureOverlay sets up a modal overlay view.
func ConfigureOverlay(v *gocui.View, title string) {
	v.Title = " " + title + " "
	v.Frame = true
	v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
	v.FrameColor = gocui.ColorYellow
	v.Wrap = false
	v.Clear()
}

// ModalDimensions calculates centered modal dimensions.
func ModalDimensions(maxX, maxY, width, height int) (x0, y0, x1, y1 int) {
	if width > maxX-2 {
		width = maxX - 2
	}
	if height > maxY-2 {
		height = maxY - 2
	}
	x0 = (maxX - width) / 2
	y0 = (maxY - height) / 2
	x1 = x0 + width
	y1 = y0 + height
	return
}

// ColorAttr maps a config color name to a gocui attribute.
func ColorAttr(name string) gocui.Attribute {
	switch strings.ToLower(name) {
	case "black":
		return gocui.ColorBlack
	case "red":
		return gocui.ColorRed
	case "green":
		return gocui.ColorGreen
	case "yellow":
		return gocui.ColorYellow
	case "blue":
		return gocui.ColorBlue
	case "magenta":
		return gocui.ColorMagenta
	case "cyan":
		return gocui.ColorCyan
	case "white":
		return gocui.ColorWhite
	default:
		return gocui.ColorDefault
	}
}
