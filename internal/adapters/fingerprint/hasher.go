// Package fingerprint derives deterministic cache keys from task inputs.
package fingerprint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/glean/internal/core/ports"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher computes XXHash-based fingerprints over normalized task inputs.
// Two requests with identical transcript content and identical task
// parameters yield the same key, enabling cross-request cache hits.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint computes the cache key for one task.
// The transcript is normalized first so whitespace and casing differences
// collapse to the same key. Parameters are hashed in sorted key order.
func (h *Hasher) Fingerprint(taskID string, transcript string, params map[string]string) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(NormalizeTranscript(transcript))
	_, _ = hasher.Write([]byte{0})

	_, _ = hasher.WriteString(taskID)
	_, _ = hasher.Write([]byte{0})

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(params[k])
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// NormalizeTranscript lowercases the transcript, collapses whitespace runs
// to single spaces and trims the ends.
func NormalizeTranscript(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
