package cache

import "time"

// ScopedKeyer wraps a Keyer with a prefix so that several vaults can share
// one cache directory without their relative paths colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), VaultScope("/home/me/notes"))
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// NoteKey generates a prefixed note key.
func (k *ScopedKeyer) NoteKey(path string, size int64, modTime time.Time) string {
	return k.prefix + k.inner.NoteKey(path, size, modTime)
}

// VaultScope returns a key prefix unique to a vault root directory.
func VaultScope(root string) string {
	return "vault:" + Hash([]byte(root))[:16] + ":"
}
