package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glean/internal/adapters/cache"
	"go.trai.ch/glean/internal/core/domain"
)

func artifact(task, content string) domain.Artifact {
	return domain.Artifact{TaskName: task, Content: content}
}

func TestStore_PutGetRoundtrip(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := cache.NewStore(t.TempDir(), 1<<20, clock)
	require.NoError(t, err)

	require.NoError(t, s.Put("key1", artifact("summarize", "hello"), time.Hour))

	got, hit, err := s.Get("key1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "hello", got.Content)

	_, hit, err = s.Get("missing")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStore_TTLExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := cache.NewStore(t.TempDir(), 1<<20, clock)
	require.NoError(t, err)

	require.NoError(t, s.Put("key1", artifact("summarize", "hello"), time.Hour))

	clock.Advance(time.Hour + time.Second)

	_, hit, err := s.Get("key1")
	require.NoError(t, err)
	assert.False(t, hit, "expired entries are misses")
}

func TestStore_LastWriterWins(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := cache.NewStore(t.TempDir(), 1<<20, clock)
	require.NoError(t, err)

	require.NoError(t, s.Put("key1", artifact("summarize", "first"), time.Hour))
	require.NoError(t, s.Put("key1", artifact("summarize", "second"), time.Hour))

	got, hit, err := s.Get("key1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "second", got.Content)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
}

func TestStore_EvictsOldestFirst(t *testing.T) {
	clock := clockwork.NewFakeClock()
	// Budget fits two 10-byte entries, not three.
	s, err := cache.NewStore(t.TempDir(), 25, clock)
	require.NoError(t, err)

	content := "0123456789"
	require.NoError(t, s.Put("oldest", artifact("a", content), time.Hour))
	clock.Advance(time.Minute)
	require.NoError(t, s.Put("middle", artifact("b", content), time.Hour))
	clock.Advance(time.Minute)
	require.NoError(t, s.Put("newest", artifact("c", content), time.Hour))

	_, hit, _ := s.Get("oldest")
	assert.False(t, hit, "oldest entry is evicted first")
	_, hit, _ = s.Get("middle")
	assert.True(t, hit)
	_, hit, _ = s.Get("newest")
	assert.True(t, hit)
}

func TestStore_ExpiredEntriesSweptBeforeEviction(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := cache.NewStore(t.TempDir(), 25, clock)
	require.NoError(t, err)

	content := "0123456789"
	require.NoError(t, s.Put("shortlived", artifact("a", content), time.Minute))
	clock.Advance(2 * time.Minute)
	require.NoError(t, s.Put("second", artifact("b", content), time.Hour))
	require.NoError(t, s.Put("third", artifact("c", content), time.Hour))

	// The expired entry freed enough budget; live entries survive.
	_, hit, _ := s.Get("second")
	assert.True(t, hit)
	_, hit, _ = s.Get("third")
	assert.True(t, hit)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClock()

	s, err := cache.NewStore(dir, 1<<20, clock)
	require.NoError(t, err)
	require.NoError(t, s.Put("key1", artifact("summarize", "persisted"), time.Hour))

	reopened, err := cache.NewStore(dir, 1<<20, clock)
	require.NoError(t, err)

	got, hit, err := reopened.Get("key1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "persisted", got.Content)
}

func TestStore_CorruptIndexResets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "results.json"), []byte("{not json"), 0o600))

	s, err := cache.NewStore(dir, 1<<20, clockwork.NewFakeClock())
	require.NoError(t, err)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
}

func TestStore_InvalidateAndClear(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := cache.NewStore(t.TempDir(), 1<<20, clock)
	require.NoError(t, err)

	require.NoError(t, s.Put("key1", artifact("a", "x"), time.Hour))
	require.NoError(t, s.Put("key2", artifact("b", "y"), time.Hour))

	require.NoError(t, s.Invalidate("key1"))
	_, hit, _ := s.Get("key1")
	assert.False(t, hit)

	require.NoError(t, s.Clear())
	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, int64(0), stats.TotalBytes)
}

func TestStore_StatsIgnoresExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := cache.NewStore(t.TempDir(), 1<<20, clock)
	require.NoError(t, err)

	require.NoError(t, s.Put("live", artifact("a", "xx"), time.Hour))
	require.NoError(t, s.Put("dying", artifact("b", "yyy"), time.Minute))

	clock.Advance(10 * time.Minute)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(2), stats.TotalBytes)
}
