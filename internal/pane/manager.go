package pane

import (
	"sync"
)

// Source provides terminal output and accepts resize requests for one
// session. *session.Shell and the session registry's runners satisfy it.
type Source interface {
	OutputChan() <-chan []byte
	Resize(width, height int) error
}

// display is the emulator state kept per session. Mirrored panes that
// show the same session render from the same display.
type display struct {
	term   *SafeTerminal
	scroll *Scrollback
	done   chan struct{}
}

// Manager owns one terminal emulator per session and pumps session
// output into it. Keyed by session ID, not by pane: closing a mirrored
// pane must not tear down the terminal the surviving pane renders.
type Manager struct {
	mu       sync.RWMutex
	displays map[string]*display
	history  int
	notify   func()
}

// NewManager creates an empty display manager.
func NewManager() *Manager {
	return &Manager{
		displays: make(map[string]*display),
		history:  DefaultHistoryLines,
	}
}

// SetNotify registers a callback invoked after each chunk of session
// output lands in an emulator. The UI uses it to schedule redraws. Must
// be set before the first Attach.
func (m *Manager) SetNotify(fn func()) {
	m.mu.Lock()
	m.notify = fn
	m.mu.Unlock()
}

// Attach creates the terminal for a session and starts pumping its
// output. Attaching an already attached session is a no-op.
func (m *Manager) Attach(sessionID string, src Source, width, height int) {
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}

	m.mu.Lock()
	if _, ok := m.displays[sessionID]; ok {
		m.mu.Unlock()
		return
	}
	d := &display{
		term:   NewSafeTerminal(height, width),
		scroll: NewScrollback(m.history),
		done:   make(chan struct{}),
	}
	m.displays[sessionID] = d
	notify := m.notify
	m.mu.Unlock()

	go pump(d, src.OutputChan(), notify)
}

// pump copies session output into the emulator and the scrollback
// history until the source closes its channel or the display detaches.
func pump(d *display, ch <-chan []byte, notify func()) {
	for {
		select {
		case data, ok := <-ch:
			if !ok {
				return
			}
			d.term.Write(data)
			d.scroll.Feed(data)
			if notify != nil {
				notify()
			}
		case <-d.done:
			return
		}
	}
}

// Terminal returns the emulator for a session, or nil if not attached.
func (m *Manager) Terminal(sessionID string) *SafeTerminal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.displays[sessionID]; ok {
		return d.term
	}
	return nil
}

// Scroll returns the scrollback state for a session, or nil if not attached.
func (m *Manager) Scroll(sessionID string) *Scrollback {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.displays[sessionID]; ok {
		return d.scroll
	}
	return nil
}

// Resize resizes both the emulator and the underlying pty. midterm
// takes (rows, cols); the pty side takes (width, height).
func (m *Manager) Resize(sessionID string, src Source, width, height int) {
	if width < 1 || height < 1 {
		return
	}

	m.mu.RLock()
	d, ok := m.displays[sessionID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	d.term.Resize(height, width)
	if src != nil {
		src.Resize(width, height)
	}
}

// Detach stops the output pump and drops the session's display.
func (m *Manager) Detach(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.displays[sessionID]; ok {
		close(d.done)
		delete(m.displays, sessionID)
	}
}

// Attached reports whether a display exists for the session.
func (m *Manager) Attached(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.displays[sessionID]
	return ok
}

// Count returns the number of attached sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.displays)
}

// CloseAll detaches every display.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, d := range m.displays {
		close(d.done)
		delete(m.displays, id)
	}
}
