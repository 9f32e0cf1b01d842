package ports

import (
	"time"

	"go.trai.ch/glean/internal/core/domain"
)

// CacheStats summarizes the state of the result cache.
type CacheStats struct {
	Entries    int
	TotalBytes int64
}

// ResultCache is the process-wide fingerprint-addressed artifact store.
//
// Get returns (artifact, true, nil) on a hit and (zero, false, nil) on a
// miss; expired entries are misses. Storage failures surface as errors
// wrapping domain.ErrCacheUnavailable so callers can degrade to miss
// behavior instead of failing the request.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResultCache interface {
	Get(key string) (domain.Artifact, bool, error)

	// Put overwrites any existing entry for the key (last-writer-wins) and
	// applies TTL expiry and size-pressure eviction.
	Put(key string, artifact domain.Artifact, ttl time.Duration) error

	// Invalidate removes a single entry.
	Invalidate(key string) error

	// Clear removes every entry.
	Clear() error

	Stats() (CacheStats, error)
}
