package input

import (
	"sync"
)

// Handler manages mode state and the text buffer for input mode.
type Handler struct {
	mu     sync.RWMutex
	mode   Mode
	prompt string
	buffer []rune
}

// NewHandler creates a new input handler in normal mode.
func NewHandler() *Handler {
	return &Handler{
		mode: ModeNormal,
	}
}

// Mode returns the current input mode.
func (h *Handler) Mode() Mode {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode
}

// EnterTerminalMode switches to terminal mode.
func (h *Handler) EnterTerminalMode() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = ModeTerminal
}

// EnterNormalMode switches to normal mode.
func (h *Handler) EnterNormalMode() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = ModeNormal
}

// EnterInputMode switches to input mode with the given prompt label
// and a cleared buffer.
func (h *Handler) EnterInputMode(prompt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = ModeInput
	h.prompt = prompt
	h.buffer = nil
}

// ExitInputMode returns to normal mode and clears the buffer.
func (h *Handler) ExitInputMode() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = ModeNormal
	h.prompt = ""
	h.buffer = nil
}

// Prompt returns the label shown before the input buffer.
func (h *Handler) Prompt() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.prompt
}

// Buffer returns the current input buffer contents.
func (h *Handler) Buffer() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return string(h.buffer)
}

// Append adds a character to the input buffer.
func (h *Handler) Append(ch rune) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer = append(h.buffer, ch)
}

// Backspace removes the last character from the buffer.
func (h *Handler) Backspace() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buffer) > 0 {
		h.buffer = h.buffer[:len(h.buffer)-1]
	}
}

// Consume returns the buffer contents and resets to normal mode.
func (h *Handler) Consume() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := string(h.buffer)
	h.buffer = nil
	h.prompt = ""
	h.mode = ModeNormal
	return result
}
