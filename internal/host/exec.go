// Package host wraps the external system tools that own reclaimable
// resources. Each tool gets one adapter so that parsing of its text output
// stays in a single place.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("reclaim.host")

// cancelWaitDelay is how long a cancelled tool may take to exit after
// SIGINT before it is killed.
const cancelWaitDelay = 30 * time.Second

// maxErrorOutput caps how much tool stderr is folded into an error.
const maxErrorOutput = 200

// Executor runs external commands. Adapters depend on this interface so
// tests can substitute canned tool output.
type Executor interface {
	// LookPath reports where name is installed, or an error if it is not.
	LookPath(name string) (string, error)

	// Run executes name with args and returns its standard output. On a
	// non-zero exit the output read so far is returned alongside the error.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandExecutor runs real subprocesses.
type CommandExecutor struct {
	// Env is appended to the inherited environment of every command.
	Env []string
}

// NewCommandExecutor returns an executor that forces non-interactive,
// C-locale tool output.
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{
		Env: []string{"DEBIAN_FRONTEND=noninteractive", "LC_ALL=C"},
	}
}

// LookPath implements Executor.
func (e *CommandExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Executor.
func (e *CommandExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	logger.Debugf("running %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), e.Env...)
	// Interrupt, never kill: dpkg must get to finish its current step.
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = cancelWaitDelay
	output, err := cmd.Output()
	if err != nil {
		return output, handleExitError(name, err)
	}
	return output, nil
}

// handleExitError wraps an exec error with the tool's exit code and a
// truncated copy of its stderr. Well-known apt/dpkg failures are rewritten
// into something readable.
func handleExitError(name string, err error) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("%s: %w", name, err)
	}

	code := exitErr.ExitCode()
	stderr := strings.TrimSpace(string(exitErr.Stderr))

	if strings.Contains(stderr, "Could not get lock") {
		return fmt.Errorf("%s failed (exit code %d): package database is locked by another process", name, code)
	}

	stderr = truncate(stderr, maxErrorOutput)
	if stderr != "" {
		return fmt.Errorf("%s failed (exit code %d): %s", name, code, stderr)
	}
	return fmt.Errorf("%s failed (exit code %d)", name, code)
}

// truncate cuts s to at most n bytes on a valid UTF-8 boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// available reports whether tool is on PATH.
func available(e Executor, tool string) bool {
	_, err := e.LookPath(tool)
	if err != nil {
		logger.Debugf("%s not found: %v", tool, err)
		return false
	}
	return true
}
