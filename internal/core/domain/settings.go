package domain

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Settings is the explicit configuration passed into the application at
// construction. There are no process-wide mutable defaults beyond the
// result cache's own lifecycle.
type Settings struct {
	// MaxConcurrent bounds simultaneous generation calls. Must be >= 1.
	MaxConcurrent int
	// CacheEnabled toggles the result cache entirely.
	CacheEnabled bool
	// CacheDir is the directory holding the cache index.
	CacheDir string
	// CacheTTL is the time-to-live applied to stored artifacts.
	CacheTTL time.Duration
	// CacheSizeBudget bounds the total cached bytes; oldest entries are
	// evicted first once exceeded.
	CacheSizeBudget int64
	// RetryAttempts is the maximum number of generation attempts per task.
	RetryAttempts int
	// RetryBaseDelay is the base delay for exponential backoff between attempts.
	RetryBaseDelay time.Duration
	// Model names the generative model used for all tasks.
	Model string
	// CustomInstruction is free-form user guidance threaded into task params.
	CustomInstruction string
	// Outputs names the pipeline tasks whose artifacts the caller wants.
	Outputs []string
}

// DefaultSettings returns the defaults applied when no glean.yaml is found.
func DefaultSettings() Settings {
	return Settings{
		MaxConcurrent:   runtime.NumCPU(),
		CacheEnabled:    true,
		CacheDir:        defaultCacheDir(),
		CacheTTL:        24 * time.Hour,
		CacheSizeBudget: 256 << 20,
		RetryAttempts:   3,
		RetryBaseDelay:  500 * time.Millisecond,
		Model:           "gemini-2.0-flash",
		Outputs:         []string{TaskReport.String()},
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "glean")
	}
	return ".glean-cache"
}
