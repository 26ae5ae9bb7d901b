// Package scheduler compiles the cache misses of a build on a pool of workers.
package scheduler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures a Scheduler.
type Options struct {
	// Workers is the requested worker count. It is clamped to [1, file count].
	Workers int
	// Strategy selects how files are handed to workers. Empty means stride.
	Strategy domain.ScheduleStrategy
	// Flags is the preprocessor stage flag string passed to every compile.
	Flags string
}

// CompileResult summarizes a finished batch.
type CompileResult struct {
	// Compiled is the number of objects produced by this batch.
	Compiled int
	// Cached is the number of files whose object already existed.
	Cached int
	// Failed is the number of files whose compile failed.
	Failed int
	// Duration is the wall time between Start and the barrier.
	Duration time.Duration
}

// Scheduler ensures that every file of a build has an object in the cache.
type Scheduler struct {
	cache     ports.ObjectCache
	compiler  ports.Compiler
	telemetry ports.Telemetry
	metrics   ports.Metrics
	logger    ports.Logger
	opts      Options
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	cache ports.ObjectCache,
	compiler ports.Compiler,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
	logger ports.Logger,
	opts Options,
) *Scheduler {
	if opts.Strategy == "" {
		opts.Strategy = domain.ScheduleStride
	}
	return &Scheduler{
		cache:     cache,
		compiler:  compiler,
		telemetry: telemetry,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
	}
}

// Batch is one running compile pass. Wait is the barrier.
type Batch struct {
	items []domain.FingerprintedSource
	start time.Time

	mu     sync.RWMutex
	status []domain.JobStatus
	errs   []error
	result CompileResult

	done chan struct{}
	err  error
}

// Start launches the workers for items and returns immediately.
func (s *Scheduler) Start(ctx context.Context, items []domain.FingerprintedSource) *Batch {
	b := &Batch{
		items:  items,
		start:  time.Now(),
		status: make([]domain.JobStatus, len(items)),
		errs:   make([]error, len(items)),
		done:   make(chan struct{}),
	}
	for i := range b.status {
		b.status[i] = domain.JobPending
	}

	workers := domain.ClampWorkers(s.opts.Workers, len(items))
	if workers == 0 {
		b.finish(ctx)
		return b
	}

	s.logger.Debug("compile pass started",
		"files", len(items), "workers", workers, "strategy", string(s.opts.Strategy))

	var g errgroup.Group
	switch s.opts.Strategy {
	case domain.ScheduleQueue:
		s.runQueue(ctx, &g, b, workers)
	default:
		s.runStride(ctx, &g, b, workers)
	}

	go func() {
		_ = g.Wait()
		b.finish(ctx)
	}()
	return b
}

// CompileAll runs a batch and waits for it.
func (s *Scheduler) CompileAll(ctx context.Context, items []domain.FingerprintedSource) (CompileResult, error) {
	return s.Start(ctx, items).Wait()
}

// runStride gives worker i the indices i, i+n, i+2n, ...
func (s *Scheduler) runStride(ctx context.Context, g *errgroup.Group, b *Batch, workers int) {
	for _, part := range domain.Stride(len(b.items), workers) {
		g.Go(func() error {
			for _, idx := range part {
				if ctx.Err() != nil {
					return nil
				}
				s.process(ctx, b, idx)
			}
			return nil
		})
	}
}

// runQueue lets workers pull indices from a shared channel.
func (s *Scheduler) runQueue(ctx context.Context, g *errgroup.Group, b *Batch, workers int) {
	queue := make(chan int, workers)
	g.Go(func() error {
		defer close(queue)
		for idx := range b.items {
			select {
			case queue <- idx:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})
	for range workers {
		g.Go(func() error {
			for idx := range queue {
				if ctx.Err() != nil {
					continue
				}
				s.process(ctx, b, idx)
			}
			return nil
		})
	}
}

func (s *Scheduler) process(ctx context.Context, b *Batch, idx int) {
	item := b.items[idx]
	b.setStatus(idx, domain.JobRunning)

	vctx, vertex := s.telemetry.Record(ctx, "compile "+item.Source.Path)

	hit, err := s.cache.Ensure(vctx, item.Fingerprint, func(ctx context.Context, tmpPath string) error {
		s.logger.Debug("compiling", "file", item.Source.Path, "fingerprint", item.Fingerprint.Short())
		return s.compiler.Compile(ctx, item.Source, tmpPath, s.opts.Flags)
	})

	s.metrics.IncCacheLookup(hit)

	switch {
	case err != nil:
		err = zerr.With(zerr.With(err, "file", item.Source.Path), "fingerprint", item.Fingerprint.String())
		s.metrics.IncCompile(false)
		vertex.Log(domain.LogLevelError, err.Error())
		vertex.Complete(err)
		b.fail(idx, err)
	case hit:
		s.logger.Debug("cache hit", "file", item.Source.Path, "fingerprint", item.Fingerprint.Short())
		vertex.Cached()
		vertex.Complete(nil)
		b.setStatus(idx, domain.JobCached)
	default:
		s.metrics.IncCompile(true)
		vertex.Complete(nil)
		b.setStatus(idx, domain.JobCompiled)
	}
}

// Wait blocks until every worker of the batch has finished.
// Failed files are reported together; the result counts every file that was processed.
func (b *Batch) Wait() (CompileResult, error) {
	<-b.done
	return b.result, b.err
}

// Done is closed when the batch has finished.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Status returns the state of the item at idx.
func (b *Batch) Status(idx int) domain.JobStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status[idx]
}

// Statuses returns a snapshot of every item's state, in item order.
func (b *Batch) Statuses() []domain.JobStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.JobStatus, len(b.status))
	copy(out, b.status)
	return out
}

func (b *Batch) setStatus(idx int, status domain.JobStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[idx] = status
	switch status {
	case domain.JobCompiled:
		b.result.Compiled++
	case domain.JobCached:
		b.result.Cached++
	}
}

func (b *Batch) fail(idx int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[idx] = domain.JobFailed
	b.result.Failed++
	b.errs[idx] = err
}

func (b *Batch) finish(ctx context.Context) {
	b.mu.Lock()
	// Errors are reported in item order; nil entries are dropped by errors.Join.
	errs := b.errs
	if err := ctx.Err(); err != nil && slices.Contains(b.status, domain.JobPending) {
		errs = append(errs, zerr.Wrap(err, "compile pass canceled"))
	}
	b.result.Duration = time.Since(b.start)
	b.err = errors.Join(errs...)
	b.mu.Unlock()
	close(b.done)
}
