// Package stage runs the build stage scripts and resolves the flags they print.
package stage

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FlagResolver = (*Resolver)(nil)

// Resolver implements ports.FlagResolver. Each stage script runs at most once per Resolver.
type Resolver struct {
	executor ports.Executor
	logger   ports.Logger
	root     string
	timeout  time.Duration

	mu       sync.Mutex
	resolved map[domain.Stage]string
}

// NewResolver creates a Resolver for the stage scripts of the workspace at root.
func NewResolver(executor ports.Executor, logger ports.Logger, root string, timeout time.Duration) *Resolver {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Resolver{
		executor: executor,
		logger:   logger,
		root:     root,
		timeout:  timeout,
		resolved: make(map[domain.Stage]string),
	}
}

// Resolve runs the script of stage and returns its stdout lines, each followed by a single space.
func (r *Resolver) Resolve(ctx context.Context, stage domain.Stage) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if flags, ok := r.resolved[stage]; ok {
		return flags, nil
	}

	script := domain.ScriptPath(r.root, stage)
	var stdout bytes.Buffer
	res, err := r.executor.Run(ctx, ScriptCommand(script, r.root, r.timeout), &stdout)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStageScriptFailed.Error()), "stage", stage.String())
	}
	if !res.Succeeded() {
		err := zerr.With(domain.ErrStageScriptFailed, "stage", stage.String())
		err = zerr.With(err, "exit_code", res.ExitCode)
		if tail := res.StderrTail(); tail != "" {
			err = zerr.With(err, "stderr", tail)
		}
		return "", err
	}

	flags := joinLines(stdout.Bytes())
	r.resolved[stage] = flags
	r.logger.Debug("stage resolved", "stage", stage.String(), "flags", flags, "duration", res.Duration)
	return flags, nil
}

// ScriptCommand runs script through sh, so scripts without a shebang line run as shell scripts.
func ScriptCommand(script, dir string, timeout time.Duration) domain.Command {
	return domain.Command{
		Name:    "sh",
		Args:    []string{"-c", `"$0"`, script},
		Dir:     dir,
		Timeout: timeout,
	}
}

// joinLines appends a single space to every line of out and concatenates them.
func joinLines(out []byte) string {
	var b strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), len(out)+1)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte(' ')
	}
	return b.String()
}
