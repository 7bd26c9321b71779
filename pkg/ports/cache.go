package ports

import "context"

// ExpansionCache persists expanded strings keyed by grammar fingerprint.
// Expansion is deterministic, so an entry never goes stale; implementations
// may still evict.
type ExpansionCache interface {
	// Get returns the cached expansion and whether it was found.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores an expansion, replacing any previous entry.
	Put(ctx context.Context, key, expanded string) error

	// Delete removes an entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently stored.
	List(ctx context.Context) ([]string, error)
}
