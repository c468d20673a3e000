package pane

import (
	"fmt"
	"testing"
)

func feedLines(s *Scrollback, n int) {
	for i := 0; i < n; i++ {
		s.Feed([]byte(fmt.Sprintf("line %d\n", i)))
	}
}

func TestScrollbackFeedSplitsLines(t *testing.T) {
	s := NewScrollback(100)

	s.Feed([]byte("hello "))
	s.Feed([]byte("world\npartial"))

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	s.Feed([]byte(" done\n"))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestScrollbackStripsEscapes(t *testing.T) {
	s := NewScrollback(100)
	s.ScrollUp(1)

	// SGR color, cursor movement and an OSC title sequence around text
	s.Feed([]byte("\x1b[31mred\x1b[0m \x1b[2Jtext\x1b]0;title\x07end\n"))

	lines, ok := s.View(1)
	if !ok || len(lines) != 1 {
		t.Fatalf("View() = %v, %v", lines, ok)
	}
	if lines[0] != "red textend" {
		t.Errorf("line = %q, want %q", lines[0], "red textend")
	}
}

func TestScrollbackCarriageReturnRestartsLine(t *testing.T) {
	s := NewScrollback(100)
	s.ScrollUp(1)

	s.Feed([]byte("discarded\rkept\n"))

	lines, ok := s.View(1)
	if !ok || len(lines) != 1 || lines[0] != "kept" {
		t.Errorf("View() = %v, %v, want [kept]", lines, ok)
	}
}

func TestScrollbackViewWindow(t *testing.T) {
	s := NewScrollback(100)
	feedLines(s, 50)

	if _, ok := s.View(10); ok {
		t.Error("unscrolled view should report live")
	}

	s.ScrollUp(5)
	lines, ok := s.View(10)
	if !ok {
		t.Fatal("scrolled view should return history")
	}
	if len(lines) != 10 {
		t.Fatalf("len(lines) = %d, want 10", len(lines))
	}
	if lines[9] != "line 44" {
		t.Errorf("bottom line = %q, want %q", lines[9], "line 44")
	}
	if lines[0] != "line 35" {
		t.Errorf("top line = %q, want %q", lines[0], "line 35")
	}
}

func TestScrollbackClampsToHistory(t *testing.T) {
	s := NewScrollback(100)
	feedLines(s, 5)

	if got := s.ScrollUp(1000); got != 5 {
		t.Errorf("ScrollUp clamped to %d, want 5", got)
	}

	lines, ok := s.View(10)
	if !ok {
		t.Fatal("expected history view")
	}
	if len(lines) != 5 || lines[0] != "line 0" {
		t.Errorf("View() = %v", lines)
	}

	if got := s.ScrollDown(1000); got != 0 {
		t.Errorf("ScrollDown floored at %d, want 0", got)
	}
	if s.IsScrolled() {
		t.Error("IsScrolled() after ScrollDown to 0")
	}
}

func TestScrollbackEviction(t *testing.T) {
	s := NewScrollback(10)
	feedLines(s, 25)

	if s.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", s.Len())
	}

	s.ScrollUp(10)
	lines, ok := s.View(10)
	if !ok || lines[0] != "line 15" {
		t.Errorf("oldest retained = %q, want %q", lines[0], "line 15")
	}
}
