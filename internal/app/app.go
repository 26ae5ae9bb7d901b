// Package app implements the application layer for dmc.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/dmc/internal/adapters/cas"
	"go.trai.ch/dmc/internal/adapters/fingerprint"
	"go.trai.ch/dmc/internal/adapters/shell"
	"go.trai.ch/dmc/internal/adapters/stage"
	"go.trai.ch/dmc/internal/adapters/toolchain"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/dmc/internal/engine/linker"
	"go.trai.ch/dmc/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Pipeline step names, used for telemetry vertices, metrics and the report.
const (
	StepPrebuild    = "prebuild"
	StepFlags       = "flags"
	StepDiscover    = "discover"
	StepFingerprint = "fingerprint"
	StepCompile     = "compile"
	StepLink        = "link"
	StepPostbuild   = "postbuild"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	workspace    ports.Workspace
	discoverer   ports.SourceDiscoverer
	hasher       ports.Hasher
	telemetry    ports.Telemetry
	metrics      ports.Metrics
	watcher      ports.Watcher

	lookPath     func(file string) (string, error)
	isExecutable func(file string) bool

	newFlagResolver  func(cfg *domain.BuildConfiguration) ports.FlagResolver
	newFingerprinter func(pp ports.Preprocessor, workers int) ports.Fingerprinter
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	workspace ports.Workspace,
	discoverer ports.SourceDiscoverer,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
	watcher ports.Watcher,
) *App {
	a := &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		workspace:    workspace,
		discoverer:   discoverer,
		hasher:       hasher,
		telemetry:    telemetry,
		metrics:      metrics,
		watcher:      watcher,
		lookPath:     shell.LookPath,
		isExecutable: shell.IsExecutable,
	}
	a.newFlagResolver = func(cfg *domain.BuildConfiguration) ports.FlagResolver {
		return stage.NewResolver(a.executor, a.logger, cfg.Root, cfg.JobTimeout)
	}
	a.newFingerprinter = func(pp ports.Preprocessor, workers int) ports.Fingerprinter {
		return fingerprint.New(pp, a.logger, workers)
	}
	return a
}

// WithLinkerLookup replaces the functions used to detect the mold link backend.
// This is primarily used for testing.
func (a *App) WithLinkerLookup(lookPath func(string) (string, error), isExecutable func(string) bool) *App {
	a.lookPath = lookPath
	a.isExecutable = isExecutable
	return a
}

// WithFlagResolver replaces the per-run stage script resolver.
func (a *App) WithFlagResolver(fn func(cfg *domain.BuildConfiguration) ports.FlagResolver) *App {
	a.newFlagResolver = fn
	return a
}

// WithFingerprinter replaces the per-run fingerprinter.
func (a *App) WithFingerprinter(fn func(pp ports.Preprocessor, workers int) ports.Fingerprinter) *App {
	a.newFingerprinter = fn
	return a
}

// Init creates the standard workspace layout below root.
func (a *App) Init(_ context.Context, root string) error {
	if root == "" {
		root = "."
	}
	if err := a.workspace.Ensure(root); err != nil {
		return err
	}
	a.logger.Info("workspace ready", "root", root)
	return nil
}

// Build runs the whole pipeline: bootstrap, prebuild, flags, discover, fingerprint,
// compile, link and postbuild.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*domain.BuildReport, error) {
	start := time.Now()
	report := &domain.BuildReport{
		RunID:          uuid.NewString(),
		StageDurations: make(map[string]time.Duration),
	}

	err := a.build(ctx, opts, report)
	report.Duration = time.Since(start)

	a.metrics.ObserveBuild(report.Duration, err == nil)
	if opts.MetricsFile != "" {
		if werr := a.metrics.WriteTextfile(opts.MetricsFile); werr != nil {
			a.logger.Warn("metrics not written", "path", opts.MetricsFile, "error", werr.Error())
		}
	}

	if err != nil {
		return report, errors.Join(domain.ErrBuildExecutionFailed, err)
	}

	a.logger.Info("build finished",
		"run", report.RunID,
		"files", len(report.Sources),
		"cached", report.CacheHits,
		"compiled", report.Compiled,
		"linker", report.Linker,
		"output", report.Output,
		"digest", report.OutputDigest,
		"duration", report.Duration.Round(time.Millisecond),
	)
	return report, nil
}

//nolint:cyclop // orchestration function
func (a *App) build(ctx context.Context, opts BuildOptions, report *domain.BuildReport) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	a.logger.Debug("build started", "run", report.RunID, "root", cfg.Root)

	if err := a.workspace.Ensure(cfg.Root); err != nil {
		return err
	}

	flags := a.newFlagResolver(cfg)

	if err := a.step(ctx, report, StepPrebuild, func(ctx context.Context) error {
		_, err := flags.Resolve(ctx, domain.StagePrebuild)
		return err
	}); err != nil {
		return err
	}

	var ppFlags, linkFlags string
	if err := a.step(ctx, report, StepFlags, func(ctx context.Context) error {
		var err error
		if ppFlags, err = flags.Resolve(ctx, domain.StagePreprocessor); err != nil {
			return err
		}
		linkFlags, err = flags.Resolve(ctx, domain.StageLinker)
		return err
	}); err != nil {
		return err
	}

	sources, err := a.discover(ctx, cfg, report)
	if err != nil {
		return err
	}

	driver := toolchain.NewDriver(a.executor, cfg)
	workers := cfg.Workers()

	if err := a.step(ctx, report, StepFingerprint, func(ctx context.Context) error {
		fps, err := a.newFingerprinter(driver, workers).Fingerprint(ctx, sources, ppFlags)
		report.Sources = fps
		return err
	}); err != nil {
		return err
	}

	store, err := cas.NewStore(cfg.ObjCacheDir(), cfg.ObjExt)
	if err != nil {
		return err
	}

	if err := a.step(ctx, report, StepCompile, func(ctx context.Context) error {
		sched := scheduler.NewScheduler(store, driver, a.telemetry, a.metrics, a.logger, scheduler.Options{
			Workers:  workers,
			Strategy: cfg.Schedule,
			Flags:    ppFlags,
		})
		res, err := sched.Start(ctx, report.Sources).Wait()
		report.CacheHits = res.Cached
		report.Compiled = res.Compiled
		return err
	}); err != nil {
		return err
	}

	if err := a.step(ctx, report, StepLink, func(ctx context.Context) error {
		backend := linker.SelectLinker(cfg.LinkerOverride, a.lookPath, a.isExecutable)
		res, err := linker.NewStage(store, driver, a.hasher, a.telemetry, a.logger).Run(ctx, linker.Request{
			Items:       report.Sources,
			Backend:     backend,
			Flags:       ppFlags,
			LinkerFlags: linkFlags,
			Output:      cfg.OutputPath(),
		})
		report.LinkSet = res.LinkSet
		report.Linker = res.Backend
		report.Output = res.Output
		report.OutputDigest = res.Digest
		return err
	}); err != nil {
		return err
	}

	return a.step(ctx, report, StepPostbuild, func(ctx context.Context) error {
		_, err := flags.Resolve(ctx, domain.StagePostbuild)
		return err
	})
}

func (a *App) discover(
	ctx context.Context,
	cfg *domain.BuildConfiguration,
	report *domain.BuildReport,
) ([]domain.SourceFile, error) {
	var sources []domain.SourceFile
	err := a.step(ctx, report, StepDiscover, func(context.Context) error {
		var err error
		sources, err = a.discoverer.Discover(cfg.SrcDir())
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return zerr.With(domain.ErrNoSources, "dir", cfg.SrcDir())
		}
		a.logger.Debug("sources discovered", "count", len(sources))
		return nil
	})
	return sources, err
}

// Hash prints the fingerprint of every source file as "path fingerprint" lines to w.
// The prebuild script runs first, so the keys match those of a build.
func (a *App) Hash(ctx context.Context, opts BuildOptions, w io.Writer) ([]domain.FingerprintedSource, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := a.workspace.Ensure(cfg.Root); err != nil {
		return nil, err
	}

	flags := a.newFlagResolver(cfg)
	if _, err := flags.Resolve(ctx, domain.StagePrebuild); err != nil {
		return nil, err
	}
	ppFlags, err := flags.Resolve(ctx, domain.StagePreprocessor)
	if err != nil {
		return nil, err
	}

	sources, err := a.discoverer.Discover(cfg.SrcDir())
	if err != nil {
		return nil, err
	}

	driver := toolchain.NewDriver(a.executor, cfg)
	fps, err := a.newFingerprinter(driver, cfg.Workers()).Fingerprint(ctx, sources, ppFlags)
	if err != nil {
		return nil, err
	}

	for _, fp := range fps {
		if _, err := fmt.Fprintf(w, "%s %s\n", fp.Source.Path, fp.Fingerprint); err != nil {
			return nil, zerr.Wrap(err, "failed to write fingerprints")
		}
	}
	return fps, nil
}

func (a *App) loadConfig(opts BuildOptions) (*domain.BuildConfiguration, error) {
	cfg, err := a.configLoader.Load(opts.root())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if err := opts.Overrides.apply(cfg); err != nil {
		return nil, err
	}
	if d, ok := a.logger.(interface{ SetDebug(bool) }); ok && cfg.Debug {
		d.SetDebug(true)
	}
	return cfg, nil
}

// step runs fn as one recorded unit of the pipeline.
func (a *App) step(
	ctx context.Context,
	report *domain.BuildReport,
	name string,
	fn func(ctx context.Context) error,
) error {
	start := time.Now()
	vctx, vertex := a.telemetry.Record(ctx, name)

	err := fn(vctx)

	d := time.Since(start)
	report.StageDurations[name] = d
	a.metrics.ObserveStageDuration(name, d)
	vertex.Complete(err)
	return err
}
