package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrSelfDependency is returned when a task declares a dependency on itself.
	ErrSelfDependency = zerr.New("task depends on itself")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrGenerationRetryable classifies transient generation failures
	// (timeouts, provider hiccups) that the retry policy may retry.
	ErrGenerationRetryable = zerr.New("transient generation failure")

	// ErrGenerationTerminal classifies permanent generation failures
	// (invalid input, quota exhausted, content blocked) that must not be retried.
	ErrGenerationTerminal = zerr.New("terminal generation failure")

	// ErrCacheUnavailable is returned by the result cache when its backing
	// storage fails. Callers degrade to cache-miss behavior and log it.
	ErrCacheUnavailable = zerr.New("result cache unavailable")

	// ErrAnalysisCancelled is returned when an analysis run is cancelled
	// before every task reached a terminal state.
	ErrAnalysisCancelled = zerr.New("analysis cancelled")

	// ErrAnalysisFailed is returned when an analysis run finishes with at
	// least one failed task.
	ErrAnalysisFailed = zerr.New("analysis failed")

	// ErrNoOutputsRequested is returned when an analysis request names no outputs.
	ErrNoOutputsRequested = zerr.New("no outputs requested")

	// ErrUnknownOutput is returned when a requested output is not part of the pipeline.
	ErrUnknownOutput = zerr.New("unknown output")

	// ErrEmptyTranscript is returned when the transcript source yields no text.
	ErrEmptyTranscript = zerr.New("empty transcript")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrStoreReadFailed is returned when the cache index cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache index")

	// ErrStoreWriteFailed is returned when the cache index cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache index")
)
