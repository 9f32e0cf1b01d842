package app_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glean/internal/adapters/fingerprint"
	"go.trai.ch/glean/internal/adapters/telemetry"
	"go.trai.ch/glean/internal/app"
	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/glean/internal/core/ports/mocks"
	"go.trai.ch/glean/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app         *app.App
	loader      *mocks.MockConfigLoader
	transcripts *mocks.MockTranscriptSource
	cache       *mocks.MockResultCache
	generator   *mocks.MockGenerationClient
	out         bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:      mocks.NewMockConfigLoader(ctrl),
		transcripts: mocks.NewMockTranscriptSource(ctrl),
		cache:       mocks.NewMockResultCache(ctrl),
		generator:   mocks.NewMockGenerationClient(ctrl),
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	sched := scheduler.NewScheduler(f.generator, f.cache, fingerprint.NewHasher(), telemetry.NewNoOpTracer(), log)
	f.app = app.New(f.loader, f.transcripts, f.cache, sched, log)
	f.app.WithOutput(&f.out)
	return f
}

// testSettings disables caching so the scheduler never touches the cache mock.
func testSettings(outputs ...string) domain.Settings {
	settings := domain.DefaultSettings()
	settings.CacheEnabled = false
	settings.MaxConcurrent = 2
	settings.Outputs = outputs
	return settings
}

func TestApp_Analyze_RendersRequestedOutputs(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testSettings("summarize"), nil)
	f.transcripts.EXPECT().Fetch(gomock.Any(), "talk.txt").
		Return(domain.Transcript{VideoID: "vid", Text: "hello"}, nil)

	// Pruning to summarize leaves classify and summarize.
	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.GenerationRequest) (domain.Artifact, error) {
			return domain.Artifact{TaskName: req.TaskID, Content: "out-" + req.TaskID}, nil
		},
	).Times(2)

	err := f.app.Analyze(context.Background(), "talk.txt", app.RunOptions{})
	require.NoError(t, err)

	assert.Contains(t, f.out.String(), "## summarize")
	assert.Contains(t, f.out.String(), "out-summarize")
	assert.NotContains(t, f.out.String(), "## classify", "intermediate artifacts stay internal")
}

func TestApp_Analyze_OutputsOverride(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testSettings("report"), nil)
	f.transcripts.EXPECT().Fetch(gomock.Any(), "talk.txt").
		Return(domain.Transcript{VideoID: "vid", Text: "hello"}, nil)

	// The CLI override wins: only classify runs.
	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.GenerationRequest) (domain.Artifact, error) {
			assert.Equal(t, "classify", req.TaskID)
			return domain.Artifact{TaskName: req.TaskID, Content: "categories"}, nil
		},
	).Times(1)

	err := f.app.Analyze(context.Background(), "talk.txt", app.RunOptions{Outputs: []string{"classify"}})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "categories")
}

func TestApp_Analyze_UnknownOutput(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testSettings("report"), nil)
	f.transcripts.EXPECT().Fetch(gomock.Any(), "talk.txt").
		Return(domain.Transcript{VideoID: "vid", Text: "hello"}, nil)

	err := f.app.Analyze(context.Background(), "talk.txt", app.RunOptions{Outputs: []string{"podcast"}})
	assert.ErrorIs(t, err, domain.ErrUnknownOutput)
}

func TestApp_Analyze_NoOutputs(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testSettings(), nil)

	err := f.app.Analyze(context.Background(), "talk.txt", app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrNoOutputsRequested)
}

func TestApp_Analyze_GenerationFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(testSettings("classify"), nil)
	f.transcripts.EXPECT().Fetch(gomock.Any(), "talk.txt").
		Return(domain.Transcript{VideoID: "vid", Text: "hello"}, nil)
	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).
		Return(domain.Artifact{}, domain.ErrGenerationTerminal)

	err := f.app.Analyze(context.Background(), "talk.txt", app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationTerminal)
}

func TestApp_ClearCache(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Clear().Return(nil)
	assert.NoError(t, f.app.ClearCache())
}

func TestApp_CacheStats(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Stats().Return(ports.CacheStats{Entries: 3, TotalBytes: 42}, nil)

	stats, err := f.app.CacheStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, int64(42), stats.TotalBytes)
}
