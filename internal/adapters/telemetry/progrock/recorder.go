// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/dmc/internal/adapters/telemetry"
	"go.trai.ch/dmc/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the progrock library.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	seq    atomic.Uint64
	closed atomic.Bool
	noop   *telemetry.NoOp
}

// New creates a Recorder rendering its steps through logger.
func New(logger ports.Logger) *Recorder {
	return NewRecorder(NewConsole(logger))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:    w,
		rec:  progrock.NewRecorder(w),
		noop: telemetry.NewNoOp(),
	}
}

// Record starts recording a new vertex.
// Every call yields a distinct vertex, even when names repeat across builds.
// After Close nothing is recorded.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	if r.closed.Load() {
		return r.noop.Record(ctx, name)
	}
	d := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	v := r.rec.Vertex(d, name)
	vertex := &Vertex{rec: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
