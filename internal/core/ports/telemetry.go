package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans and announcing the planned
// task set before execution starts.
type Tracer interface {
	// Start creates a new span for one task.
	Start(ctx context.Context, name string) (context.Context, Span)
	// EmitPlan signals that a set of tasks is planned for execution.
	EmitPlan(ctx context.Context, taskNames []string)
}

// Span represents one task's unit of work.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// Cached marks the span as resolved from cache.
	Cached()
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
