// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Run waits for output pipes after the process exits.
const waitDelay = 2 * time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run starts the command and waits for it to exit.
//
// Standard output is copied to stdout when it is non-nil. Standard error is captured
// into the result. Output not otherwise consumed goes to the vertex carried by ctx,
// or is logged line by line at debug level when there is none.
// A non-zero exit status is reported through the result, not as an error.
func (e *Executor) Run(ctx context.Context, command domain.Command, stdout io.Writer) (domain.ProcessResult, error) {
	result := domain.ProcessResult{Command: command}
	if command.Name == "" {
		return result, zerr.With(domain.ErrProcessStartFailed, "reason", "empty command")
	}

	if command.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, command.Timeout)
		defer cancel()
	}

	executable := command.Name
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		if lp, err := lookPath(executable, os.Environ()); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, command.Args...) //nolint:gosec // toolchain command
	// Keep the name as invoked so logs and error messages stay readable.
	cmd.Args[0] = command.Name
	cmd.Dir = command.Dir
	cmd.WaitDelay = waitDelay

	var outSink, errSink io.Writer
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		outSink, errSink = vertex.Stdout(), vertex.Stderr()
	} else {
		stdoutLog := &logWriter{logger: e.logger}
		stderrLog := &logWriter{logger: e.logger}
		defer func() {
			_ = stdoutLog.Close()
			_ = stderrLog.Close()
		}()
		outSink, errSink = stdoutLog, stderrLog
	}

	var stderr bytes.Buffer
	if stdout != nil {
		cmd.Stdout = stdout
	} else {
		cmd.Stdout = outSink
	}
	cmd.Stderr = io.MultiWriter(&stderr, errSink)

	e.logger.Debug("exec", "cmd", command.String())

	start := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(start)
	result.Stderr = stderr.Bytes()

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded) && command.Timeout > 0:
		result.ExitCode = -1
		return result, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrProcessTimeout.Error()),
			"cmd", command.Name), "timeout", command.Timeout.String())
	case ctx.Err() != nil:
		result.ExitCode = -1
		return result, zerr.With(zerr.Wrap(ctx.Err(), "command canceled"), "cmd", command.Name)
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	default:
		result.ExitCode = -1
		return result, zerr.With(zerr.Wrap(err, domain.ErrProcessStartFailed.Error()), "cmd", command.Name)
	}
}

// logWriter logs every complete line written to it at debug level.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Debug(msg)
}

// LookPath searches the current PATH for an executable.
func LookPath(file string) (string, error) {
	return lookPath(file, os.Environ())
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

// IsExecutable reports whether file exists and has an execute bit set.
func IsExecutable(file string) bool {
	return findExecutable(file) == nil
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
