// Package scheduler drives a task graph to completion under bounded
// concurrency, with cache short-circuiting, per-key single flight and
// bounded retries.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Options configures one analysis run.
type Options struct {
	// MaxConcurrent bounds simultaneous generation calls (>= 1). Cache
	// hits do not consume a slot. Admission is unbounded: a task reports
	// Running from dispatch on, including time spent waiting for a
	// generation slot, so more than MaxConcurrent tasks can be Running
	// while at most MaxConcurrent are calling the model.
	MaxConcurrent int
	// CacheEnabled toggles the result cache entirely.
	CacheEnabled bool
	// CacheTTL is applied to artifacts stored during this run.
	CacheTTL time.Duration
	// SkipCacheRead bypasses cache reads but still writes results, so
	// forced re-runs converge the cache (last-writer-wins).
	SkipCacheRead bool
	// RetryAttempts is the maximum number of generation attempts per task.
	RetryAttempts int
	// RetryBaseDelay is the base delay for exponential backoff between attempts.
	RetryBaseDelay time.Duration
	// OnStatus, when set, receives every per-task status transition in
	// emission order. Delivery is best-effort, not transactional.
	OnStatus func(task string, status domain.TaskStatus)
}

// OptionsFromSettings derives run options from the loaded settings.
func OptionsFromSettings(s domain.Settings) Options {
	return Options{
		MaxConcurrent:  max(1, s.MaxConcurrent),
		CacheEnabled:   s.CacheEnabled,
		CacheTTL:       s.CacheTTL,
		RetryAttempts:  max(1, s.RetryAttempts),
		RetryBaseDelay: s.RetryBaseDelay,
	}
}

// Scheduler executes task graphs. It is constructed once and shared across
// requests; the single-flight group spans requests so concurrent identical
// fingerprints trigger exactly one generation call process-wide. Each run's
// mutable state lives in a per-run runState, never on the Scheduler itself.
type Scheduler struct {
	generator     ports.GenerationClient
	cache         ports.ResultCache
	fingerprinter ports.Fingerprinter
	tracer        ports.Tracer
	logger        ports.Logger

	flights singleflight.Group
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	generator ports.GenerationClient,
	cache ports.ResultCache,
	fingerprinter ports.Fingerprinter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		generator:     generator,
		cache:         cache,
		fingerprinter: fingerprinter,
		tracer:        tracer,
		logger:        logger,
	}
}

// Run drives the graph to completion. Construction errors (cycles,
// missing dependencies) abort before any work starts. Per-task failures
// are contained: they skip required dependents and leave independent
// branches untouched, so the returned Result always preserves completed
// sibling work. The returned error aggregates per-task failures and, on
// cancellation, the context error.
func (s *Scheduler) Run(
	ctx context.Context,
	graph *domain.Graph,
	transcript domain.Transcript,
	opts Options,
) (*domain.Result, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	state := s.newRunState(ctx, graph, transcript, opts)

	planned := make([]string, 0, graph.TaskCount())
	for task := range graph.Walk() {
		planned = append(planned, task.Name.String())
	}
	s.tracer.EmitPlan(ctx, planned)
	s.logger.Info(fmt.Sprintf("starting analysis %s for video %s (%d tasks)",
		state.result.RequestID, transcript.VideoID, len(planned)))

	state.runExecutionLoop()

	cancelled := ctx.Err() != nil
	state.finishRemaining(cancelled)
	state.result.Finalize(cancelled)

	errs := state.errs
	if cancelled {
		errs = errors.Join(errs, fmt.Errorf("%w: %w", domain.ErrAnalysisCancelled, ctx.Err()))
	}
	return state.result, errs
}

type result struct {
	task     domain.InternedString
	artifact domain.Artifact
	cached   bool
	err      error
}

type runState struct {
	s          *Scheduler
	ctx        context.Context
	graph      *domain.Graph
	transcript domain.Transcript
	opts       Options

	remaining map[domain.InternedString]int
	ready     []domain.InternedString
	active    int
	resultsCh chan result
	sem       *semaphore.Weighted
	result    *domain.Result
	errs      error
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	transcript domain.Transcript,
	opts Options,
) *runState {
	state := &runState{
		s:          s,
		ctx:        ctx,
		graph:      graph,
		transcript: transcript,
		opts:       opts,
		remaining:  make(map[domain.InternedString]int, graph.TaskCount()),
		resultsCh:  make(chan result, graph.TaskCount()),
		sem:        semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		result:     domain.NewResult(uuid.NewString(), transcript.VideoID),
	}

	for task := range graph.Walk() {
		state.result.Statuses[task.Name] = domain.StatusPending
		state.remaining[task.Name] = len(task.DependsOn)
		if len(task.DependsOn) == 0 {
			state.markReady(task.Name)
		}
	}
	return state
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) runExecutionLoop() {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil {
			if state.active == 0 {
				return
			}
			// Only drain in-flight work once cancelled; selecting on the
			// closed Done channel again would spin.
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}
}

// schedule dispatches every ready task. Admission is not the concurrency
// bound: the generation semaphore is, so cache hits resolve without
// consuming a slot.
func (state *runState) schedule() {
	for len(state.ready) > 0 && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]

		task, _ := state.graph.GetTask(name)
		inputs := state.resolveInputs(&task)

		state.active++
		state.setStatus(name, domain.StatusRunning)

		go state.executeTask(task, inputs)
	}
}

// resolveInputs snapshots upstream artifacts for a task. Every dependency
// is terminal before the task is admitted, and the loop goroutine is the
// sole mutator of the result maps, so no locking is needed here.
func (state *runState) resolveInputs(task *domain.TaskNode) map[string]string {
	inputs := make(map[string]string, len(task.DependsOn))
	for _, dep := range task.DependsOn {
		if artifact, ok := state.result.Artifacts[dep.Name]; ok {
			inputs[dep.Name.String()] = artifact.Content
		} else {
			inputs[dep.Name.String()] = domain.MissingInput
		}
	}
	return inputs
}

// flightResult is the value shared between single-flight callers.
type flightResult struct {
	artifact domain.Artifact
	cached   bool
}

func (state *runState) executeTask(task domain.TaskNode, inputs map[string]string) {
	res := func() result {
		ctx, span := state.s.tracer.Start(state.ctx, task.Name.String())
		defer span.End()

		key := state.s.fingerprinter.Fingerprint(task.Name.String(), state.transcript.Text, task.Params)
		span.SetAttribute("fingerprint", key)

		v, err, shared := state.s.flights.Do(key, func() (any, error) {
			return state.s.resolveArtifact(ctx, &task, inputs, state.transcript.Text, key, state.sem, state.opts)
		})
		if err != nil {
			span.RecordError(err)
			return result{task: task.Name, err: err}
		}

		flight := v.(flightResult)
		if flight.cached || shared {
			span.Cached()
		}
		return result{task: task.Name, artifact: flight.artifact, cached: flight.cached}
	}()

	state.resultsCh <- res
}

// resolveArtifact produces the artifact for one fingerprint: cache read,
// then a semaphore-bounded generation call, then a best-effort cache
// write. Cache failures degrade to miss behavior and never fail the task.
func (s *Scheduler) resolveArtifact(
	ctx context.Context,
	task *domain.TaskNode,
	inputs map[string]string,
	transcript string,
	key string,
	sem *semaphore.Weighted,
	opts Options,
) (flightResult, error) {
	if opts.CacheEnabled && !opts.SkipCacheRead {
		artifact, hit, err := s.cache.Get(key)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("cache read failed for %s, regenerating: %v", task.Name, err))
		} else if hit {
			return flightResult{artifact: artifact, cached: true}, nil
		}
	}

	if err := sem.Acquire(ctx, 1); err != nil {
		return flightResult{}, err
	}
	defer sem.Release(1)

	artifact, err := s.generateWithRetry(ctx, ports.GenerationRequest{
		TaskID:     task.Name.String(),
		Transcript: transcript,
		Inputs:     inputs,
		Params:     task.Params,
		Model:      task.Params[domain.ParamModel],
	}, opts)
	if err != nil {
		return flightResult{}, err
	}

	if opts.CacheEnabled {
		if err := s.cache.Put(key, artifact, opts.CacheTTL); err != nil {
			s.logger.Warn(fmt.Sprintf("cache write failed for %s: %v", task.Name, err))
		}
	}
	return flightResult{artifact: artifact}, nil
}

// handleResult records a task's outcome. A context.Canceled error only
// counts as cancellation when this run's context was cancelled; a shared
// flight can surface another run's cancellation, which is a plain failure
// from this run's point of view.
func (state *runState) handleResult(res result) {
	state.active--

	switch {
	case res.err == nil:
		state.result.Artifacts[res.task] = res.artifact
		state.setStatus(res.task, domain.StatusSucceeded)
	case errors.Is(res.err, context.Canceled) && state.ctx.Err() != nil:
		state.setStatus(res.task, domain.StatusCancelled)
	default:
		wrapped := zerr.With(zerr.Wrap(res.err, "task failed"), "task", res.task.String())
		state.errs = errors.Join(state.errs, wrapped)
		state.setStatus(res.task, domain.StatusFailed)
	}

	state.notifyDependents(res.task)
}

// notifyDependents unblocks tasks waiting on the given (now terminal)
// task. A dependent whose required dependency did not succeed is skipped,
// and the skip cascades so every node reaches a terminal status.
func (state *runState) notifyDependents(name domain.InternedString) {
	for _, depName := range state.graph.Dependents(name) {
		state.remaining[depName]--
		if state.remaining[depName] > 0 {
			continue
		}

		if state.requiredDepsSucceeded(depName) {
			state.markReady(depName)
			continue
		}

		if state.ctx.Err() != nil {
			state.setStatus(depName, domain.StatusCancelled)
		} else {
			state.setStatus(depName, domain.StatusSkipped)
		}
		state.notifyDependents(depName)
	}
}

func (state *runState) requiredDepsSucceeded(name domain.InternedString) bool {
	task, _ := state.graph.GetTask(name)
	for _, dep := range task.DependsOn {
		if dep.Optional {
			continue
		}
		if state.result.Statuses[dep.Name] != domain.StatusSucceeded {
			return false
		}
	}
	return true
}

func (state *runState) markReady(name domain.InternedString) {
	state.setStatus(name, domain.StatusReady)
	state.ready = append(state.ready, name)
}

// finishRemaining resolves tasks that never reached a terminal status,
// which only happens when the run was cancelled mid-flight.
func (state *runState) finishRemaining(cancelled bool) {
	for name, status := range state.result.Statuses {
		if status.IsTerminal() {
			continue
		}
		if cancelled {
			state.setStatus(name, domain.StatusCancelled)
		} else {
			state.setStatus(name, domain.StatusSkipped)
		}
	}
}

func (state *runState) setStatus(name domain.InternedString, status domain.TaskStatus) {
	state.result.Statuses[name] = status
	if state.opts.OnStatus != nil {
		state.opts.OnStatus(name.String(), status)
	}
}
