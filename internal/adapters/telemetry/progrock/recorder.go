// Package progrock provides the Progrock implementation of the tracer port.
package progrock

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/glean/internal/core/ports"
)

var _ ports.Tracer = (*Recorder)(nil)

// Recorder implements ports.Tracer using the progrock library. Each task
// becomes a vertex on the tape; the tape renders live progress to the
// terminal.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex for one task.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// EmitPlan records the planned task set as a short-lived vertex so the tape
// shows what is about to run.
func (r *Recorder) EmitPlan(_ context.Context, taskNames []string) {
	v := r.rec.Vertex(digest.FromString("plan"), "plan")
	for _, name := range taskNames {
		_, _ = fmt.Fprintln(v.Stdout(), name)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
