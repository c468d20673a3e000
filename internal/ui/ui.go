package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/splitmux/internal/config"
	"github.com/abdullathedruid/splitmux/internal/input"
	"github.com/abdullathedruid/splitmux/internal/session"
)

// Colors and styles for the TUI
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"
)

// StatusIcon returns the themed icon for a session status.
func StatusIcon(theme config.Theme, status session.Status) string {
	if style, ok := theme.Status[status.String()]; ok && style.Icon != "" {
		return style.Icon
	}
	return "○"
}

// EmptyIcon returns the themed icon for a pane with no session.
func EmptyIcon(theme config.Theme) string {
	if style, ok := theme.Status["empty"]; ok && style.Icon != "" {
		return style.Icon
	}
	return "○"
}

// StatusLabel returns the themed label for a session status.
func StatusLabel(theme config.Theme, status session.Status) string {
	if style, ok := theme.Status[status.String()]; ok && style.Label != "" {
		return style.Label
	}
	return strings.ToUpper(status.String())
}

// RenderStatusBar creates the bottom status bar content, filling the
// given width with the version right-aligned. In input mode the prompt
// and buffer replace the key hints.
func RenderStatusBar(mode input.Mode, paneCount, sessionCount int, title, prompt, buffer, version string, width int) string {
	left := fmt.Sprintf("[%s] %d panes │ %d sessions", mode.String(), paneCount, sessionCount)
	if title != "" {
		left += " │ " + title
	}

	var middle string
	switch {
	case mode.IsInput():
		middle = prompt + buffer + "_"
	case mode.IsTerminal():
		middle = "ctrl+q:normal"
	default:
		middle = "v/s:split x:close hjkl:nav p:presets g:grid ?:help"
	}

	line := left + "        " + middle
	if pad := width - runewidth.StringWidth(line); pad > len(version) {
		return line + PadLeft(version, pad)
	}
	return line + "        " + version
}

// Truncate shortens a string to fit in the given width.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string to the right.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// PadLeft pads a string to the left.
func PadLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return strings.Repeat(" ", width-sw) + s
}

// Center centers a string in the given width.
func Center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	padding := (width - sw) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-sw-padding)
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= width {
			lines = append(lines, line)
			continue
		}

		for runewidth.StringWidth(line) > width {
			breakIdx := 0
			currentWidth := 0
			lastSpace := -1
			for i, r := range line {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					break
				}
				currentWidth += rw
				breakIdx = i + len(string(r))
				if r == ' ' {
					lastSpace = breakIdx
				}
			}
			if lastSpace > 0 {
				breakIdx = lastSpace
			}
			lines = append(lines, line[:breakIdx])
			line = strings.TrimSpace(line[breakIdx:])
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// HelpText returns the help screen content.
func HelpText(keys config.KeyBindings) string {
	return fmt.Sprintf(`splitmux - split-screen terminal workspace

Panes
  %s / %s             Split focused pane right / down
  %s                  Close focused pane
  %s                  Collapse to the focused pane only
  %s%s%s%s or arrows     Move focus between panes
  %s / %s             Grow / shrink the focused split
  %s                  Enter terminal mode (ctrl+q to leave)

Sessions
  %s                  New shell session in focused pane
  %s                  Assign the active session to focused pane

Layouts
  %s                  Preset picker (type to filter)
  %s                  Grid builder (rows x cols, e.g. 2x3)
  %s                  Save current layout
  %s                  Layout inspector

Scrollback
  %s / %s         Scroll focused pane up / down
  G                  Jump back to live output

Other
  %s                  Show this help
  %s                  Quit splitmux

Press any key to close this help...`,
		keys.SplitRight, keys.SplitDown,
		keys.ClosePane,
		keys.Collapse,
		keys.NavLeft, keys.NavDown, keys.NavUp, keys.NavRight,
		keys.GrowRatio, keys.ShrinkRatio,
		keys.EnterPane,
		keys.NewSession,
		keys.AssignActive,
		keys.PresetPicker,
		keys.GridBuilder,
		keys.SaveLayout,
		keys.Inspector,
		keys.ScrollUp, keys.ScrollDown,
		keys.Help,
		keys.Quit,
	)
}
