package process

import (
	"os"
	"testing"
	"time"
)

func TestCommandName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/usr/local/bin/node", "node"},
		{"/bin/zsh", "zsh"},
		{"node", "node"},
		{"node /path/to/script.js", "node"},
		{"/usr/bin/python3 -m http.server", "python3"},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		got := commandName(tt.input)
		if got != tt.want {
			t.Errorf("commandName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSnapshotIncludesSelf(t *testing.T) {
	rows, err := snapshot()
	if err != nil {
		t.Fatalf("snapshot() error: %v", err)
	}
	self := os.Getpid()
	for _, r := range rows {
		if r.pid == self {
			if r.args == "" {
				t.Error("snapshot row has empty command line")
			}
			return
		}
	}
	t.Errorf("snapshot missing own pid %d", self)
}

func TestForegroundUnknownPID(t *testing.T) {
	if _, _, err := Foreground(-1); err == nil {
		t.Error("expected error for unknown PID")
	}
}

func TestForeground(t *testing.T) {
	pid := os.Getpid()
	name, cmdLine, err := Foreground(pid)
	if err != nil {
		t.Fatalf("Foreground(%d) error: %v", pid, err)
	}
	if name == "" {
		t.Errorf("Foreground(%d) returned empty name", pid)
	}
	if cmdLine == "" {
		t.Errorf("Foreground(%d) returned empty cmdLine", pid)
	}
}

func TestTitlerCaches(t *testing.T) {
	tl := NewTitler(time.Minute)
	now := time.Unix(1000, 0)
	tl.now = func() time.Time { return now }
	tl.cache[42] = titleEntry{name: "vim", fetched: now}

	if got := tl.Title(42); got != "vim" {
		t.Errorf("Title(42) = %q, want cached %q", got, "vim")
	}

	// Expired entries refetch; PID 42 here is unlikely to be ours, so
	// just verify the cache entry was replaced.
	now = now.Add(2 * time.Minute)
	tl.Title(42)
	if tl.cache[42].fetched != now {
		t.Error("expired entry was not refreshed")
	}
}

func TestTitlerInvalidPID(t *testing.T) {
	tl := NewTitler(0)
	if got := tl.Title(0); got != "" {
		t.Errorf("Title(0) = %q, want empty", got)
	}
}
