// Package domain contains the core domain models for the analysis pipeline:
// the task dependency graph, task statuses, artifacts and run results.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph represents the directed acyclic dependency graph of analysis tasks.
// Topology is immutable after Validate; only per-run state (owned by the
// scheduler) mutates during execution.
type Graph struct {
	tasks          map[InternedString]TaskNode
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[InternedString]TaskNode),
	}
}

// AddTask adds a task to the graph.
// It returns ErrTaskAlreadyExists if a task with the same name exists and
// ErrSelfDependency if the task lists itself as a dependency.
func (g *Graph) AddTask(t *TaskNode) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "add task"), "task", t.Name.String())
	}
	for _, dep := range t.DependsOn {
		if dep.Name == t.Name {
			return zerr.With(zerr.Wrap(ErrSelfDependency, "add task"), "task", t.Name.String())
		}
	}
	g.tasks[t.Name] = *t
	return nil
}

// GetTask returns the task with the given name.
func (g *Graph) GetTask(name InternedString) (TaskNode, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Validate checks that every declared dependency exists and that the graph
// is acyclic, using a depth-first topological sort. It populates the
// execution order used by Walk.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "validate graph"), "dependency", u.String())
		}

		for _, dep := range task.DependencyNames() {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for name := range g.tasks {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, "validate graph"), "cycle", cyclePath)
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[TaskNode] {
	return func(yield func(TaskNode) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}

// Dependents returns the names of tasks that directly depend on the given task.
func (g *Graph) Dependents(name InternedString) []InternedString {
	var dependents []InternedString
	for _, task := range g.tasks {
		for _, dep := range task.DependencyNames() {
			if dep == name {
				dependents = append(dependents, task.Name)
				break
			}
		}
	}
	return dependents
}

// Prune returns a new graph containing only the given targets and their
// transitive dependencies. Targets that do not exist yield ErrTaskNotFound.
func (g *Graph) Prune(targets []InternedString) (*Graph, error) {
	keep := make(map[InternedString]bool)

	queue := make([]InternedString, 0, len(targets))
	for _, t := range targets {
		if _, ok := g.tasks[t]; !ok {
			return nil, zerr.With(zerr.Wrap(ErrTaskNotFound, "prune graph"), "task", t.String())
		}
		if !keep[t] {
			keep[t] = true
			queue = append(queue, t)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		task := g.tasks[current]
		for _, dep := range task.DependencyNames() {
			if !keep[dep] {
				keep[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	pruned := NewGraph()
	for name := range keep {
		task := g.tasks[name]
		if err := pruned.AddTask(&task); err != nil {
			return nil, err
		}
	}
	return pruned, nil
}
