package domain

// TaskStatus represents the lifecycle state of a task during an analysis run.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting for its dependencies.
	StatusPending TaskStatus = "Pending"
	// StatusReady indicates every required dependency succeeded and the task awaits a worker.
	StatusReady TaskStatus = "Ready"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusSucceeded indicates the task finished successfully.
	StatusSucceeded TaskStatus = "Succeeded"
	// StatusFailed indicates the task failed after exhausting its retry budget.
	StatusFailed TaskStatus = "Failed"
	// StatusSkipped indicates a required dependency failed, so the task never ran.
	StatusSkipped TaskStatus = "Skipped"
	// StatusCancelled indicates the run was cancelled before the task resolved.
	StatusCancelled TaskStatus = "Cancelled"
)

// IsTerminal reports whether no further transitions can occur from s.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSkipped, StatusCancelled:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
