// Package session manages the live shell sessions that panes display.
package session

import (
	"time"
)

// Status represents the lifecycle state of a session.
type Status int

const (
	StatusRunning Status = iota
	StatusExited
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Session is one live shell managed by the registry. The zero SessionID
// never occurs; ids are generated at creation and never reused.
type Session struct {
	ID      string
	Name    string // display name, e.g. "shell 3"
	Command string // the shell command this session runs
	Status  Status
	Created time.Time

	runner Runner
}

// Runner is the process backend of a session: a shell on a pty. The
// registry owns the runner's lifecycle; panes consume its output stream.
type Runner interface {
	// Start launches the process with the given terminal dimensions.
	Start(width, height int) error
	// Resize updates the pty window size.
	Resize(width, height int) error
	// Write sends input bytes to the process.
	Write(data []byte) error
	// OutputChan streams the process's raw terminal output. The channel
	// closes when the process exits.
	OutputChan() <-chan []byte
	// PID returns the process id, or 0 before Start.
	PID() int
	// Close terminates the process and releases the pty.
	Close() error
}

// RunnerFactory builds the runner for a new session. Swappable so tests
// can run without spawning real shells.
type RunnerFactory func(command string) Runner

// Runner exposes the session's process backend.
func (s *Session) Runner() Runner {
	return s.runner
}

// Output returns the session's terminal output stream.
func (s *Session) Output() <-chan []byte {
	return s.runner.OutputChan()
}
