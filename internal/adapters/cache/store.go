// Package cache implements the fingerprint-addressed result cache backed
// by a flat JSON index on disk.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
)

const indexFileName = "results.json"

var _ ports.ResultCache = (*Store)(nil)

// Entry is one cached artifact with its expiry and eviction accounting.
type Entry struct {
	Key       string          `json:"key"`
	Value     domain.Artifact `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	SizeBytes int64           `json:"size_bytes"`
}

// Store implements ports.ResultCache using an in-memory map persisted as a
// flat JSON file. All mutation is key-scoped under a single lock; the index
// is small (artifact text, not media), so a whole-file rewrite on Put keeps
// the persistence model as simple as the rest of the tool.
type Store struct {
	path       string
	sizeBudget int64
	clock      clockwork.Clock

	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore creates a Store persisting under dir, evicting oldest-created
// entries once the total size exceeds sizeBudget bytes.
func NewStore(dir string, sizeBudget int64, clock clockwork.Clock) (*Store, error) {
	s := &Store{
		path:       filepath.Join(filepath.Clean(dir), indexFileName),
		sizeBudget: sizeBudget,
		clock:      clock,
		entries:    make(map[string]Entry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreReadFailed, err)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		// A corrupt index degrades to an empty cache rather than failing
		// the process; the next Put rewrites it.
		s.entries = make(map[string]Entry)
	}

	return nil
}

// save persists the index. Callers must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	return nil
}

// Get returns the artifact for key. Expired entries are treated as misses
// and removed lazily on the next sweep.
func (s *Store) Get(key string) (domain.Artifact, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return domain.Artifact{}, false, nil
	}
	if s.clock.Now().After(entry.ExpiresAt) {
		return domain.Artifact{}, false, nil
	}
	return entry.Value, true, nil
}

// Put overwrites any existing entry for key (last-writer-wins), then sweeps
// expired entries and evicts oldest-created entries until the total size is
// back under budget.
func (s *Store) Put(key string, artifact domain.Artifact, ttl time.Duration) error {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry{
		Key:       key,
		Value:     artifact,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		SizeBytes: int64(len(artifact.Content)),
	}
	s.sweep(now)

	if err := s.save(); err != nil {
		return fmt.Errorf("%w: key %s: %v", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// sweep drops expired entries, then evicts oldest-created entries until the
// total size fits the budget. Callers must hold s.mu.
func (s *Store) sweep(now time.Time) {
	var total int64
	for key, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, key)
			continue
		}
		total += entry.SizeBytes
	}

	if total <= s.sizeBudget {
		return
	}

	byAge := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		byAge = append(byAge, entry)
	}
	sort.Slice(byAge, func(i, j int) bool {
		return byAge[i].CreatedAt.Before(byAge[j].CreatedAt)
	})

	for _, entry := range byAge {
		if total <= s.sizeBudget {
			break
		}
		delete(s.entries, entry.Key)
		total -= entry.SizeBytes
	}
}

// Invalidate removes a single entry.
func (s *Store) Invalidate(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return s.save()
}

// Clear removes every entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry)
	return s.save()
}

// Stats returns the entry count and total cached bytes, counting only
// entries that have not expired.
func (s *Store) Stats() (ports.CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	stats := ports.CacheStats{}
	for _, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			continue
		}
		stats.Entries++
		stats.TotalBytes += entry.SizeBytes
	}
	return stats, nil
}
