package session

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Shell runs a shell process on a pty and streams its raw terminal output.
type Shell struct {
	command  string
	cmd      *exec.Cmd
	pty      *os.File
	outputCh chan []byte
	doneCh   chan struct{}
	onExit   func()
	mu       sync.Mutex
}

// NewShell creates a runner for the given shell command. The process is
// not started until Start.
func NewShell(command string) *Shell {
	return &Shell{
		command:  command,
		outputCh: make(chan []byte, 100),
		doneCh:   make(chan struct{}),
	}
}

// NewShellRunner is the RunnerFactory for real pty-backed shells.
func NewShellRunner(command string) Runner {
	return NewShell(command)
}

// OnExit registers a callback invoked once when the process exits for any
// reason. Must be set before Start.
func (s *Shell) OnExit(fn func()) {
	s.mu.Lock()
	s.onExit = fn
	s.mu.Unlock()
}

// Start launches the shell on a pty with the given dimensions.
func (s *Shell) Start(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}

	s.cmd = exec.Command(s.command)
	s.cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	var err error
	s.pty, err = pty.Start(s.cmd)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}

	pty.Setsize(s.pty, &pty.Winsize{
		Rows: uint16(height),
		Cols: uint16(width),
	})

	go s.readOutput()
	go func() {
		s.cmd.Wait()
		s.mu.Lock()
		exit := s.onExit
		s.mu.Unlock()
		if exit != nil {
			exit()
		}
	}()

	return nil
}

// Resize updates the pty window size; the shell sees SIGWINCH.
func (s *Shell) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pty == nil {
		return nil
	}
	return pty.Setsize(s.pty, &pty.Winsize{
		Rows: uint16(height),
		Cols: uint16(width),
	})
}

// Write sends input bytes to the shell.
func (s *Shell) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pty == nil {
		return fmt.Errorf("shell not started")
	}
	_, err := s.pty.Write(data)
	return err
}

// OutputChan streams raw terminal output. Closed on process exit.
func (s *Shell) OutputChan() <-chan []byte {
	return s.outputCh
}

// PID returns the shell's process id, or 0 before Start.
func (s *Shell) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Close terminates the shell and releases the pty. Safe to call more than
// once.
func (s *Shell) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.doneCh:
		return nil
	default:
		close(s.doneCh)
	}

	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	if s.pty != nil {
		return s.pty.Close()
	}
	return nil
}

// readOutput pumps pty output into the channel until the process exits.
func (s *Shell) readOutput() {
	defer close(s.outputCh)

	buf := make([]byte, 32*1024)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case s.outputCh <- data:
			case <-s.doneCh:
				return
			}
		}
		if err != nil {
			return
		}
	}
}
