// Package pane maintains the terminal emulator state behind each
// session and maps layout leaves onto renderable views.
package pane

import (
	"strings"
	"sync"

	"github.com/vito/midterm"
)

// SafeTerminal guards a midterm emulator with a mutex. The session's
// output pump writes from its own goroutine while the UI loop renders;
// every pane mirroring the session renders from the same instance.
type SafeTerminal struct {
	mu   sync.Mutex
	term *midterm.Terminal
}

// NewSafeTerminal creates an emulator with the given dimensions.
func NewSafeTerminal(rows, cols int) *SafeTerminal {
	return &SafeTerminal{term: midterm.NewTerminal(rows, cols)}
}

// Write feeds raw session output into the emulator.
func (t *SafeTerminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.Write(data)
}

// Resize changes the emulated screen size. Content reflows inside
// midterm; callers resize the pty separately.
func (t *SafeTerminal) Resize(rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.term.Resize(rows, cols)
}

// Render writes the current screen contents, with attributes, into the
// builder. A zero-sized terminal renders nothing.
func (t *SafeTerminal) Render(w *strings.Builder) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.term.Height <= 0 || t.term.Width <= 0 {
		return nil
	}
	return t.term.Render(w)
}

// Cursor returns the emulator's cursor position.
func (t *SafeTerminal) Cursor() (x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.Cursor.X, t.term.Cursor.Y
}

// Dimensions returns the emulated screen size as (rows, cols).
func (t *SafeTerminal) Dimensions() (rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.Height, t.term.Width
}

// CursorVisible reports whether the cursor should be drawn. Full-screen
// programs often hide it while repainting.
func (t *SafeTerminal) CursorVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.CursorVisible
}
