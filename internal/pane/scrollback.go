package pane

import (
	"strings"
	"sync"
)

// DefaultHistoryLines is the scrollback retention per session.
const DefaultHistoryLines = 2000

// Scrollback keeps a bounded history of plain-text output lines for one
// session and tracks the viewport offset into it.
type Scrollback struct {
	mu        sync.Mutex
	lines     []string
	maxLines  int
	scrollPos int // 0 = live view, >0 = lines scrolled up from bottom
	partial   strings.Builder
	esc       escState
}

// escState tracks position inside an ANSI escape sequence across chunks.
type escState int

const (
	escNone escState = iota
	escStarted
	escCSI
	escOSC
)

// NewScrollback creates a scrollback buffer retaining up to maxLines lines.
func NewScrollback(maxLines int) *Scrollback {
	if maxLines < 1 {
		maxLines = DefaultHistoryLines
	}
	return &Scrollback{maxLines: maxLines}
}

// ScrollPos returns the current scroll position (0 = live, >0 = scrolled up).
func (s *Scrollback) ScrollPos() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollPos
}

// IsScrolled returns true if the view is scrolled (not showing live output).
func (s *Scrollback) IsScrolled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollPos > 0
}

// ScrollUp moves the viewport up by the given number of lines.
// Returns the new scroll position, clamped to the retained history.
func (s *Scrollback) ScrollUp(lines int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollPos += lines
	if s.scrollPos > len(s.lines) {
		s.scrollPos = len(s.lines)
	}
	return s.scrollPos
}

// ScrollDown moves the viewport down by the given number of lines.
// Returns the new scroll position (minimum 0).
func (s *Scrollback) ScrollDown(lines int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollPos -= lines
	if s.scrollPos < 0 {
		s.scrollPos = 0
	}
	return s.scrollPos
}

// ScrollToBottom resets scroll position to show live output.
func (s *Scrollback) ScrollToBottom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollPos = 0
}

// Len returns the number of retained history lines.
func (s *Scrollback) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Feed consumes a raw output chunk, stripping escape sequences and
// appending completed lines to the history. Partial lines carry over
// to the next chunk.
func (s *Scrollback) Feed(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range data {
		switch s.esc {
		case escStarted:
			switch b {
			case '[':
				s.esc = escCSI
			case ']':
				s.esc = escOSC
			default:
				s.esc = escNone
			}
			continue
		case escCSI:
			// CSI sequences end on a byte in 0x40..0x7e
			if b >= 0x40 && b <= 0x7e {
				s.esc = escNone
			}
			continue
		case escOSC:
			// OSC sequences end on BEL (ST handling falls out of escStarted)
			if b == 0x07 {
				s.esc = escNone
			} else if b == 0x1b {
				s.esc = escStarted
			}
			continue
		}

		switch {
		case b == 0x1b:
			s.esc = escStarted
		case b == '\n':
			s.appendLine(s.partial.String())
			s.partial.Reset()
		case b == '\r':
			// carriage returns restart the pending line
			s.partial.Reset()
		case b >= 0x20 || b == '\t':
			s.partial.WriteByte(b)
		}
	}
}

// View returns the history window for a viewport of the given height.
// The second return value is false when the view is live and the caller
// should render the terminal screen instead.
func (s *Scrollback) View(height int) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scrollPos == 0 || height < 1 {
		return nil, false
	}

	// scrollPos=10, height=24 shows the 24 history lines ending 10
	// lines above the live bottom.
	end := len(s.lines) - s.scrollPos
	if end < height {
		end = height
	}
	if end > len(s.lines) {
		end = len(s.lines)
	}
	start := end - height
	if start < 0 {
		start = 0
	}
	if end <= start {
		return nil, false
	}

	out := make([]string, end-start)
	copy(out, s.lines[start:end])
	return out, true
}

func (s *Scrollback) appendLine(line string) {
	s.lines = append(s.lines, line)
	if len(s.lines) > s.maxLines {
		drop := len(s.lines) - s.maxLines
		s.lines = s.lines[drop:]
		if s.scrollPos > len(s.lines) {
			s.scrollPos = len(s.lines)
		}
	}
}
