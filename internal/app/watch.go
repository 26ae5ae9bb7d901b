package app

import (
	"context"
	"path/filepath"
	"time"

	"go.trai.ch/dmc/internal/adapters/watcher"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/zerr"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	BuildOptions
	// Debounce is the quiet period after the last change before a rebuild starts.
	Debounce time.Duration
	// OnBuild, when set, is called after every build attempt.
	OnBuild func(report *domain.BuildReport, err error)
}

// Watch builds once and then rebuilds whenever the sources, headers, libraries or stage
// scripts change. Rebuilds are skipped when the content of those trees is unchanged.
// It returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	root, err := filepath.Abs(opts.root())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "root", opts.root())
	}
	if err := a.workspace.Ensure(root); err != nil {
		return err
	}
	opts.Root = root

	cfg := domain.DefaultBuildConfiguration(root)
	dirs := []string{
		cfg.SrcDir(),
		cfg.IncludeDir(),
		cfg.LibDir(),
		filepath.Join(root, domain.BuildFlagsDirName),
	}

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		a.logger.Debug("changes detected", "paths", paths)
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	if err := a.watcher.Start(ctx, dirs...); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	go func() {
		for ev := range a.watcher.Events() {
			debouncer.Add(ev.Path)
		}
	}()

	var last uint64
	rebuild := func() {
		sum, err := a.hasher.ComputeTreeHash(dirs...)
		if err == nil && sum == last && last != 0 {
			a.logger.Debug("content unchanged, skipping build")
			return
		}
		report, err := a.Build(ctx, opts.BuildOptions)
		if err != nil && ctx.Err() == nil {
			a.logger.Error(err)
		}
		if err == nil {
			last = sum
		}
		if opts.OnBuild != nil {
			opts.OnBuild(report, err)
		}
	}

	rebuild()
	a.logger.Info("watching for changes", "root", root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			rebuild()
		}
	}
}
