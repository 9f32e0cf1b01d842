package progrock

import (
	"fmt"

	"github.com/vito/progrock"
	"go.trai.ch/glean/internal/core/ports"
)

var _ ports.Span = (*Vertex)(nil)

// Vertex implements ports.Span wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
	err    error
}

// Write records output on the vertex's stdout stream.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// RecordError records an error; it is surfaced when the vertex completes.
func (v *Vertex) RecordError(err error) {
	v.err = err
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// SetAttribute logs a key-value pair on the vertex stream.
func (v *Vertex) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "%s=%v\n", key, value)
}

// End completes the vertex, carrying any recorded error.
func (v *Vertex) End() {
	v.vertex.Done(v.err)
}
