package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	vito "github.com/vito/progrock"
	progrockadapter "go.trai.ch/glean/internal/adapters/telemetry/progrock"
)

func TestRecorder_SpanLifecycle(t *testing.T) {
	tape := vito.NewTape()
	rec := progrockadapter.NewRecorder(tape)

	rec.EmitPlan(context.Background(), []string{"classify", "summarize"})

	_, span := rec.Start(context.Background(), "classify")
	span.SetAttribute("fingerprint", "abc123")
	_, err := span.Write([]byte("classified\n"))
	require.NoError(t, err)
	span.Cached()
	span.End()

	_, failed := rec.Start(context.Background(), "summarize")
	failed.RecordError(errors.New("boom"))
	failed.End()

	require.NoError(t, rec.Close())
}
