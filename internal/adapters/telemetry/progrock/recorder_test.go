package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dmc/internal/adapters/logger"
	"go.trai.ch/dmc/internal/adapters/telemetry/progrock"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
)

func newConsoleLogger(t *testing.T, debug bool) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)
	log.SetDebug(debug)
	return log, &buf
}

func TestNew(t *testing.T) {
	log, _ := newConsoleLogger(t, false)
	recorder := progrock.New(log)
	assert.NotNil(t, recorder)
	require.NoError(t, recorder.Close())
}

func TestRecorder_RendersStepsInDebug(t *testing.T) {
	log, buf := newConsoleLogger(t, true)
	recorder := progrock.New(log)
	ctx := context.Background()

	_, compiled := recorder.Record(ctx, "compile src/a.cc")
	_, err := compiled.Stderr().Write([]byte("warning: unused variable\n"))
	require.NoError(t, err)
	compiled.Complete(nil)

	_, cached := recorder.Record(ctx, "compile src/b.cc")
	cached.Cached()
	cached.Complete(nil)

	_, failed := recorder.Record(ctx, "link main")
	_, err = failed.Stderr().Write([]byte("undefined reference to main"))
	require.NoError(t, err)
	failed.Complete(errors.New("link failed"))

	require.NoError(t, recorder.Close())

	out := buf.String()
	assert.Contains(t, out, `warning: unused variable step="compile src/a.cc" stream=stderr`)
	assert.Contains(t, out, `step done step="compile src/a.cc"`)
	assert.Contains(t, out, `step cached step="compile src/b.cc"`)
	assert.Contains(t, out, `undefined reference to main step="link main" stream=stderr`)
	assert.Contains(t, out, `step failed step="link main"`)
	assert.Contains(t, out, `error="link failed"`)
}

func TestRecorder_SilentAtInfo(t *testing.T) {
	log, buf := newConsoleLogger(t, false)
	recorder := progrock.New(log)

	_, vertex := recorder.Record(context.Background(), "compile src/a.cc")
	_, err := vertex.Stderr().Write([]byte("warning: unused variable\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelError, "compilation failed")
	vertex.Complete(errors.New("exit status 1"))
	require.NoError(t, recorder.Close())

	assert.Empty(t, buf.String())
}

func TestRecorder_RecordAttachesVertexToContext(t *testing.T) {
	log, _ := newConsoleLogger(t, false)
	recorder := progrock.New(log)
	t.Cleanup(func() { _ = recorder.Close() })

	ctx, vertex := recorder.Record(context.Background(), "link main")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, got)

	_, ok = ports.VertexFromContext(context.Background())
	assert.False(t, ok)
}

func TestRecorder_CompleteOnce(t *testing.T) {
	log, buf := newConsoleLogger(t, true)
	recorder := progrock.New(log)

	// Same name twice is two steps.
	for range 2 {
		_, vertex := recorder.Record(context.Background(), "link main")
		vertex.Complete(nil)
		vertex.Complete(errors.New("ignored after the first completion"))
	}
	require.NoError(t, recorder.Close())

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("step done")))
	assert.NotContains(t, buf.String(), "ignored")
}

func TestRecorder_RecordAfterClose(t *testing.T) {
	log, buf := newConsoleLogger(t, true)
	recorder := progrock.New(log)
	require.NoError(t, recorder.Close())
	require.NoError(t, recorder.Close())

	ctx := context.Background()
	got, vertex := recorder.Record(ctx, "compile src/a.cc")
	assert.Equal(t, ctx, got)
	_, err := vertex.Stdout().Write([]byte("ignored\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	assert.Empty(t, buf.String())
}
