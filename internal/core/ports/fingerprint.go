package ports

// Fingerprinter derives the cache key for one task from its fully-resolved
// inputs. Implementations must be deterministic: identical (taskID,
// transcript, params) triples always yield identical keys, and the
// transcript is normalized first so semantically identical inputs collapse
// to one key. No side effects.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	Fingerprint(taskID string, transcript string, params map[string]string) string
}
