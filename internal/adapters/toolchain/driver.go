// Package toolchain drives the compiler executable for preprocessing, compiling and linking.
package toolchain

import (
	"context"
	"io"
	"time"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Preprocessor = (*Driver)(nil)
	_ ports.Compiler     = (*Driver)(nil)
	_ ports.Linker       = (*Driver)(nil)
)

// Driver invokes a clang compatible compiler driver.
type Driver struct {
	executor ports.Executor
	cc       string
	root     string
	include  string
	lib      string
	dev      bool
	timeout  time.Duration
}

// NewDriver creates a Driver configured from cfg.
func NewDriver(executor ports.Executor, cfg *domain.BuildConfiguration) *Driver {
	cc := cfg.Compiler
	if cc == "" {
		cc = domain.DefaultCompiler
	}
	return &Driver{
		executor: executor,
		cc:       cc,
		root:     cfg.Root,
		include:  cfg.IncludeDir(),
		lib:      cfg.LibDir(),
		dev:      cfg.Dev,
		timeout:  cfg.JobTimeout,
	}
}

// PreprocessArgs returns the arguments of the preprocessor invocation for src.
func (d *Driver) PreprocessArgs(src domain.SourceFile, flags string) ([]string, error) {
	extra, err := SplitFlags(flags)
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, len(extra)+3)
	args = append(args, "-E", "-I"+d.include)
	args = append(args, extra...)
	return append(args, src.Path), nil
}

// CompileArgs returns the arguments of the compile invocation producing out from src.
func (d *Driver) CompileArgs(src domain.SourceFile, out, flags string) ([]string, error) {
	extra, err := SplitFlags(flags)
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, len(extra)+6)
	args = append(args, "-I"+d.include)
	args = append(args, extra...)
	if d.dev {
		args = append(args, "-O2")
	}
	return append(args, "-c", src.Path, "-o", out), nil
}

// LinkArgs returns the arguments of the link invocation for req.
func (d *Driver) LinkArgs(req domain.LinkRequest) ([]string, error) {
	extra, err := SplitFlags(req.Flags)
	if err != nil {
		return nil, err
	}
	linkerFlags, err := SplitFlags(req.LinkerFlags)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, len(extra)+len(req.Objects)+len(linkerFlags)+6)
	args = append(args, "-fuse-ld="+req.Backend, "-L"+d.lib)
	args = append(args, extra...)
	if d.dev {
		args = append(args, "-O2", "-flto")
	}
	args = append(args, "-o", req.Output)
	args = append(args, req.Objects...)
	return append(args, linkerFlags...), nil
}

// Preprocess writes the preprocessed form of src to stdout.
func (d *Driver) Preprocess(ctx context.Context, src domain.SourceFile, flags string, stdout io.Writer) error {
	args, err := d.PreprocessArgs(src, flags)
	if err != nil {
		return err
	}
	res, err := d.executor.Run(ctx, d.command(args), stdout)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPreprocessFailed.Error()), "file", src.Path)
	}
	if !res.Succeeded() {
		return failure(domain.ErrPreprocessFailed, res, "file", src.Path)
	}
	return nil
}

// Compile compiles src into the object file out.
func (d *Driver) Compile(ctx context.Context, src domain.SourceFile, out, flags string) error {
	args, err := d.CompileArgs(src, out, flags)
	if err != nil {
		return err
	}
	res, err := d.executor.Run(ctx, d.command(args), nil)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "file", src.Path)
	}
	if !res.Succeeded() {
		return failure(domain.ErrCompileFailed, res, "file", src.Path)
	}
	return nil
}

// Link links the objects of req into the executable req.Output.
func (d *Driver) Link(ctx context.Context, req domain.LinkRequest) error {
	args, err := d.LinkArgs(req)
	if err != nil {
		return err
	}
	res, err := d.executor.Run(ctx, d.command(args), nil)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "output", req.Output)
	}
	if !res.Succeeded() {
		return failure(domain.ErrLinkFailed, res, "output", req.Output)
	}
	return nil
}

func (d *Driver) command(args []string) domain.Command {
	return domain.Command{
		Name:    d.cc,
		Args:    args,
		Dir:     d.root,
		Timeout: d.timeout,
	}
}

// failure annotates a sentinel with the outcome of a failed process.
func failure(sentinel error, res domain.ProcessResult, key, value string) error {
	err := zerr.With(sentinel, key, value)
	err = zerr.With(err, "exit_code", res.ExitCode)
	if tail := res.StderrTail(); tail != "" {
		err = zerr.With(err, "stderr", tail)
	}
	return err
}

// SplitFlags splits a flag string into arguments using POSIX shell quoting rules.
func SplitFlags(flags string) ([]string, error) {
	args, err := shellquote.Split(flags)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidFlags.Error()), "flags", flags)
	}
	return args, nil
}
