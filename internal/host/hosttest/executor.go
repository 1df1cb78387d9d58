// Package hosttest provides a scripted host.Executor for tests.
package hosttest

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// Response is the canned result of one command line.
type Response struct {
	Output string
	Err    error
}

// Executor records every command and answers from a script. Commands with
// no scripted response succeed with empty output.
type Executor struct {
	mu sync.Mutex

	// Missing lists tools LookPath must not find.
	Missing map[string]bool

	// Responses is keyed by the full command line, e.g. "snap list --all".
	Responses map[string]Response

	// Handler, when set, is consulted before Responses and may answer
	// stateful commands. Returning handled=false falls through.
	Handler func(line string) (resp Response, handled bool)

	calls []string
}

// New returns an executor with empty scripts.
func New() *Executor {
	return &Executor{
		Missing:   make(map[string]bool),
		Responses: make(map[string]Response),
	}
}

// LookPath implements host.Executor.
func (e *Executor) LookPath(name string) (string, error) {
	if e.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// Run implements host.Executor.
func (e *Executor) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	e.mu.Lock()
	e.calls = append(e.calls, line)
	handler := e.Handler
	resp, ok := e.Responses[line]
	e.mu.Unlock()

	if handler != nil {
		if r, handled := handler(line); handled {
			return []byte(r.Output), r.Err
		}
	}
	if ok {
		return []byte(resp.Output), resp.Err
	}
	return nil, nil
}

// Calls returns the command lines run so far.
func (e *Executor) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// CallsWithPrefix returns the recorded command lines starting with prefix.
func (e *Executor) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range e.Calls() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
