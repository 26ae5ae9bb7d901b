package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/dmc/internal/core/domain"
	"go.trai.ch/dmc/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex is one recorded build step: a stage, a compile or the link.
type Vertex struct {
	rec  *progrock.VertexRecorder
	once sync.Once
}

// Stdout returns the output stream of the step.
func (v *Vertex) Stdout() io.Writer {
	return v.rec.Stdout()
}

// Stderr returns the diagnostics stream of the step; compiler stderr is teed here.
func (v *Vertex) Stderr() io.Writer {
	return v.rec.Stderr()
}

// Log appends a leveled line to the step. Warnings and errors go to Stderr.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.rec.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.rec.Stderr()
	}
	_, _ = fmt.Fprintf(w, "%-5s %s\n", level.String(), msg)
}

// Complete finishes the step. Only the first call takes effect.
func (v *Vertex) Complete(err error) {
	v.once.Do(func() {
		v.rec.Done(err)
	})
}

// Cached marks the step as satisfied by the object store.
func (v *Vertex) Cached() {
	v.rec.Cached()
}
