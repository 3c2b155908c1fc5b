// Package cache stores parsed note metadata between runs.
//
// Reading front matter means opening every note in a vault. The cache keys
// each note's parsed metadata by path, size and modification time, so an
// unchanged note is never read twice. Editing a note changes its key and the
// stale entry simply expires.
//
// Implementations:
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [MemoryCache]: process-local map (HTTP service, tests)
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long note metadata stays cached.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// NoteKey identifies one version of a note's metadata.
	NoteKey(path string, size int64, modTime time.Time) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// NoteKey hashes the note's path, size and modification time.
func (DefaultKeyer) NoteKey(path string, size int64, modTime time.Time) string {
	return hashKey("note", path, size, modTime.UnixNano())
}
