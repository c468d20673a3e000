// Package process inspects shell processes to derive pane titles.
package process

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// procRow is one line of a ps snapshot.
type procRow struct {
	pid  int
	ppid int
	args string
}

// snapshot lists every process with its parent. One ps fork covers the
// whole lookup, children and shell alike. POSIX flags, so it works on
// macOS and Linux.
func snapshot() ([]procRow, error) {
	cmd := exec.Command("ps", "-eo", "pid=,ppid=,args=")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ps failed: %w: %s", err, stderr.String())
	}

	var rows []procRow
	for _, line := range strings.Split(stdout.String(), "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		ppid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		rows = append(rows, procRow{pid: pid, ppid: ppid, args: strings.Join(fields[2:], " ")})
	}
	return rows, nil
}

// Foreground returns the command running inside a shell process, used
// as the pane title. The shell's first child is what the user ran; with
// no children the shell itself is the foreground app (idle prompt).
func Foreground(shellPID int) (name string, cmdLine string, err error) {
	rows, err := snapshot()
	if err != nil {
		return "", "", err
	}

	var shell string
	for _, r := range rows {
		if r.ppid == shellPID {
			return commandName(r.args), r.args, nil
		}
		if r.pid == shellPID {
			shell = r.args
		}
	}
	if shell == "" {
		return "", "", fmt.Errorf("process %d not found", shellPID)
	}
	return commandName(shell), shell, nil
}

// commandName extracts the command name from a full command line,
// reducing paths like "/usr/local/bin/node" to "node".
func commandName(cmdLine string) string {
	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return ""
	}

	cmd := parts[0]
	if idx := strings.LastIndex(cmd, "/"); idx >= 0 {
		cmd = cmd[idx+1:]
	}
	return cmd
}
