package domain

import (
	"strings"
	"time"
)

// Command describes one external process invocation.
type Command struct {
	// Name is the executable.
	Name string
	// Args are the arguments, excluding Name.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Timeout bounds the process; 0 means no bound beyond the caller's context.
	Timeout time.Duration
}

// Argv returns the full argument vector including the executable.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String renders the command for log output.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// ProcessResult is the typed outcome of an external process.
type ProcessResult struct {
	Command  Command
	ExitCode int
	Stderr   []byte
	Duration time.Duration
}

// Succeeded reports whether the process exited with status zero.
func (r ProcessResult) Succeeded() bool {
	return r.ExitCode == 0
}

// StderrTail returns the captured standard error, trimmed for attachment to errors.
func (r ProcessResult) StderrTail() string {
	const maxTail = 4096
	s := strings.TrimSpace(string(r.Stderr))
	if len(s) > maxTail {
		s = s[len(s)-maxTail:]
	}
	return s
}
