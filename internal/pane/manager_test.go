package pane

import (
	"strings"
	"testing"
	"time"
)

type fakeSource struct {
	ch       chan []byte
	resizedW int
	resizedH int
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan []byte, 8)}
}

func (f *fakeSource) OutputChan() <-chan []byte { return f.ch }

func (f *fakeSource) Resize(width, height int) error {
	f.resizedW, f.resizedH = width, height
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestManagerAttachPumpsOutput(t *testing.T) {
	m := NewManager()
	src := newFakeSource()
	m.Attach("s1", src, 80, 24)
	defer m.CloseAll()

	src.ch <- []byte("hello\n")

	term := m.Terminal("s1")
	if term == nil {
		t.Fatal("Terminal(s1) = nil")
	}
	waitFor(t, func() bool {
		var sb strings.Builder
		term.Render(&sb)
		return strings.Contains(sb.String(), "hello")
	})
	waitFor(t, func() bool { return m.Scroll("s1").Len() == 1 })
}

func TestManagerAttachIdempotent(t *testing.T) {
	m := NewManager()
	src := newFakeSource()
	m.Attach("s1", src, 80, 24)
	defer m.CloseAll()

	term := m.Terminal("s1")
	m.Attach("s1", newFakeSource(), 10, 5)

	if m.Terminal("s1") != term {
		t.Error("re-attach replaced the terminal")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestManagerResize(t *testing.T) {
	m := NewManager()
	src := newFakeSource()
	m.Attach("s1", src, 80, 24)
	defer m.CloseAll()

	m.Resize("s1", src, 100, 40)

	rows, cols := m.Terminal("s1").Dimensions()
	if rows != 40 || cols != 100 {
		t.Errorf("Dimensions() = (%d, %d), want (40, 100)", rows, cols)
	}
	if src.resizedW != 100 || src.resizedH != 40 {
		t.Errorf("source resized to (%d, %d), want (100, 40)", src.resizedW, src.resizedH)
	}
}

func TestManagerDetach(t *testing.T) {
	m := NewManager()
	m.Attach("s1", newFakeSource(), 80, 24)
	m.Attach("s2", newFakeSource(), 80, 24)

	m.Detach("s1")
	m.Detach("s1") // second detach is a no-op

	if m.Attached("s1") {
		t.Error("s1 still attached after Detach")
	}
	if !m.Attached("s2") {
		t.Error("s2 detached unexpectedly")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
	m.CloseAll()
	if m.Count() != 0 {
		t.Errorf("Count() after CloseAll = %d, want 0", m.Count())
	}
}
