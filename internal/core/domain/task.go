package domain

// Dependency declares an edge from a task to one of its upstream tasks.
// A required dependency must succeed before the dependent may run. An
// optional dependency that fails or is skipped is replaced by a
// MissingInput marker instead of blocking the dependent.
type Dependency struct {
	Name     InternedString
	Optional bool
}

// TaskNode represents one generative analysis step in the pipeline.
// Params participate in the task's fingerprint, so two nodes with the same
// name but different params address different cache entries.
type TaskNode struct {
	Name      InternedString
	DependsOn []Dependency
	Params    map[string]string
}

// RequiredDeps returns the names of all required dependencies.
func (t *TaskNode) RequiredDeps() []InternedString {
	var deps []InternedString
	for _, d := range t.DependsOn {
		if !d.Optional {
			deps = append(deps, d.Name)
		}
	}
	return deps
}

// DependencyNames returns the names of all dependencies, required and optional.
func (t *TaskNode) DependencyNames() []InternedString {
	names := make([]InternedString, len(t.DependsOn))
	for i, d := range t.DependsOn {
		names[i] = d.Name
	}
	return names
}
