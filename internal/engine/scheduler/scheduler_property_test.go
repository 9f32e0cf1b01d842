package scheduler_test

import (
	"context"
	"fmt"
	"testing"

	"go.trai.ch/glean/internal/adapters/fingerprint"
	"go.trai.ch/glean/internal/adapters/telemetry"
	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/glean/internal/engine/scheduler"
	"pgregory.net/rapid"
)

type stubGenerator struct {
	fail map[string]bool
}

func (s stubGenerator) Generate(_ context.Context, req ports.GenerationRequest) (domain.Artifact, error) {
	if s.fail[req.TaskID] {
		return domain.Artifact{}, domain.ErrGenerationTerminal
	}
	return domain.Artifact{TaskName: req.TaskID, Content: "out-" + req.TaskID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

// Any acyclic graph with any failure set must terminate with every task in
// a terminal status, and a task succeeds exactly when it was not failed and
// every required dependency succeeded.
func TestScheduler_Run_TerminationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numTasks := rapid.IntRange(1, 8).Draw(t, "numTasks")

		// Edges only point at earlier tasks, so the graph is acyclic by
		// construction.
		g := domain.NewGraph()
		type edge struct {
			from, to int
			optional bool
		}
		var edges []edge
		for i := range numTasks {
			var deps []domain.Dependency
			for j := range i {
				if !rapid.Bool().Draw(t, fmt.Sprintf("edge-%d-%d", i, j)) {
					continue
				}
				opt := rapid.Bool().Draw(t, fmt.Sprintf("opt-%d-%d", i, j))
				deps = append(deps, domain.Dependency{
					Name:     domain.NewInternedString(fmt.Sprintf("t%d", j)),
					Optional: opt,
				})
				edges = append(edges, edge{from: i, to: j, optional: opt})
			}
			if err := g.AddTask(&domain.TaskNode{
				Name:      domain.NewInternedString(fmt.Sprintf("t%d", i)),
				DependsOn: deps,
			}); err != nil {
				t.Fatalf("add task: %v", err)
			}
		}

		fail := make(map[string]bool)
		for i := range numTasks {
			if rapid.Bool().Draw(t, fmt.Sprintf("fail-%d", i)) {
				fail[fmt.Sprintf("t%d", i)] = true
			}
		}

		s := scheduler.NewScheduler(
			stubGenerator{fail: fail}, nil, fingerprint.NewHasher(), telemetry.NewNoOpTracer(), nopLogger{})
		result, _ := s.Run(context.Background(), g, testTranscript, scheduler.Options{
			MaxConcurrent: 2,
			RetryAttempts: 1,
		})
		if result == nil {
			t.Fatal("expected a result for a valid graph")
		}

		// Expected success set, evaluated bottom-up.
		succeeded := make(map[int]bool)
		for i := range numTasks {
			ok := !fail[fmt.Sprintf("t%d", i)]
			for _, e := range edges {
				if e.from == i && !e.optional && !succeeded[e.to] {
					ok = false
				}
			}
			succeeded[i] = ok
		}

		for i := range numTasks {
			name := domain.NewInternedString(fmt.Sprintf("t%d", i))
			status := result.Statuses[name]
			if !status.IsTerminal() {
				t.Fatalf("task t%d ended non-terminal: %s", i, status)
			}
			if succeeded[i] != (status == domain.StatusSucceeded) {
				t.Fatalf("task t%d: expected succeeded=%v, got status %s", i, succeeded[i], status)
			}
		}
	})
}
