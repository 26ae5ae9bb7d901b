package app_test

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/app"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
)

// fakeWatcher delivers events pushed through emit.
type fakeWatcher struct {
	mu      sync.Mutex
	events  chan ports.WatchEvent
	dirs    []string
	stopped bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan ports.WatchEvent, 16)}
}

func (w *fakeWatcher) Start(_ context.Context, dirs ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs = append(w.dirs, dirs...)
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stopped {
		w.stopped = true
		close(w.events)
	}
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func (w *fakeWatcher) emit(path string) {
	w.events <- ports.WatchEvent{Path: path, Operation: ports.OpWrite}
}

func (w *fakeWatcher) watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.dirs...)
}

type buildResult struct {
	report *domain.BuildReport
	err    error
}

func TestApp_Watch_RebuildsOnChange(t *testing.T) {
	h := newHarness(t)
	h.write(t, "src/a.c", "int a;\n")
	h.write(t, "src/b.c", "int b;\n")

	// Replace the harness watcher with one the test controls.
	w := newFakeWatcher()
	h.rebuildApp(t, w)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	builds := make(chan buildResult, 8)
	done := make(chan error, 1)
	go func() {
		done <- h.app.Watch(ctx, app.WatchOptions{
			BuildOptions: app.BuildOptions{Root: h.root},
			Debounce:     10 * time.Millisecond,
			OnBuild: func(report *domain.BuildReport, err error) {
				builds <- buildResult{report, err}
			},
		})
	}()

	first := next(t, builds)
	require.NoError(t, first.err)
	assert.Equal(t, 2, first.report.Compiled)
	assert.Contains(t, w.watched(), filepath.Join(h.root, "src"))
	assert.Contains(t, w.watched(), filepath.Join(h.root, "buildflags"))

	h.write(t, "src/b.c", "int b = 1;\n")
	w.emit(filepath.Join(h.root, "src", "b.c"))

	second := next(t, builds)
	require.NoError(t, second.err)
	assert.Equal(t, 1, second.report.Compiled)
	assert.Equal(t, 1, second.report.CacheHits)

	// An event without a content change does not trigger a build.
	w.emit(filepath.Join(h.root, "src", "b.c"))
	select {
	case res := <-builds:
		t.Fatalf("unexpected build: %+v", res)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return after cancellation")
	}
}

func next(t *testing.T, builds <-chan buildResult) buildResult {
	t.Helper()
	select {
	case res := <-builds:
		return res
	case <-time.After(10 * time.Second):
		t.Fatal("no build")
		return buildResult{}
	}
}
