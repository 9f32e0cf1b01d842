// Package app implements the application layer for glean.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/glean/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	transcripts  ports.TranscriptSource
	cache        ports.ResultCache
	scheduler    *scheduler.Scheduler
	logger       ports.Logger

	out io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	transcripts ports.TranscriptSource,
	cache ports.ResultCache,
	sched *scheduler.Scheduler,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		transcripts:  transcripts,
		cache:        cache,
		scheduler:    sched,
		logger:       logger,
		out:          os.Stdout,
	}
}

// WithOutput redirects rendered artifacts. Used for testing.
func (a *App) WithOutput(w io.Writer) {
	a.out = w
}

// RunOptions carries per-invocation overrides from the CLI.
type RunOptions struct {
	// Outputs overrides the configured output set when non-empty.
	Outputs []string
	// NoCache bypasses cache reads for this run; results are still written
	// back so a forced re-run refreshes the cache.
	NoCache bool
	// Instruction overrides the configured custom instruction.
	Instruction string
}

// Analyze runs the analysis pipeline for one video reference (a transcript
// file path or "-" for stdin) and renders the requested artifacts.
func (a *App) Analyze(ctx context.Context, ref string, opts RunOptions) error {
	settings, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if len(opts.Outputs) > 0 {
		settings.Outputs = opts.Outputs
	}
	if opts.Instruction != "" {
		settings.CustomInstruction = opts.Instruction
	}
	if len(settings.Outputs) == 0 {
		return domain.ErrNoOutputsRequested
	}

	transcript, err := a.transcripts.Fetch(ctx, ref)
	if err != nil {
		return zerr.Wrap(err, "failed to fetch transcript")
	}

	graph, targets, err := buildGraph(settings)
	if err != nil {
		return err
	}

	runOpts := scheduler.OptionsFromSettings(settings)
	runOpts.SkipCacheRead = opts.NoCache

	result, runErr := a.scheduler.Run(ctx, graph, transcript, runOpts)
	if result == nil {
		return runErr
	}

	a.render(result, targets)

	if runErr != nil {
		if errors.Is(runErr, domain.ErrAnalysisCancelled) {
			return runErr
		}
		return fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, runErr)
	}
	return nil
}

// buildGraph constructs the pipeline and prunes it to the requested
// outputs and their transitive dependencies.
func buildGraph(settings domain.Settings) (*domain.Graph, []domain.InternedString, error) {
	pipeline := domain.NewAnalysisPipeline(settings)

	targets := make([]domain.InternedString, 0, len(settings.Outputs))
	for _, output := range settings.Outputs {
		name := domain.NewInternedString(output)
		if _, ok := pipeline.GetTask(name); !ok {
			return nil, nil, zerr.With(zerr.Wrap(domain.ErrUnknownOutput, "resolve outputs"), "output", output)
		}
		targets = append(targets, name)
	}

	graph, err := pipeline.Prune(targets)
	if err != nil {
		return nil, nil, err
	}
	return graph, targets, nil
}

// render writes the requested artifacts and a run summary. Artifacts of
// intermediate tasks stay internal; only the targets are printed.
func (a *App) render(result *domain.Result, targets []domain.InternedString) {
	for _, target := range targets {
		artifact, ok := result.Artifacts[target]
		if !ok {
			continue
		}
		fmt.Fprintf(a.out, "## %s\n\n%s\n\n", artifact.TaskName, artifact.Content)
	}

	a.logger.Info(fmt.Sprintf("analysis %s %s (%d succeeded, %d failed, %d skipped)",
		result.RequestID,
		result.Outcome,
		len(result.Artifacts),
		len(result.Failed),
		len(result.Skipped),
	))
}

// ClearCache removes every cached artifact.
func (a *App) ClearCache() error {
	if err := a.cache.Clear(); err != nil {
		return zerr.Wrap(err, "failed to clear result cache")
	}
	a.logger.Info("result cache cleared")
	return nil
}

// CacheStats reports the current cache footprint.
func (a *App) CacheStats() (ports.CacheStats, error) {
	stats, err := a.cache.Stats()
	if err != nil {
		return ports.CacheStats{}, zerr.Wrap(err, "failed to read cache stats")
	}
	return stats, nil
}
