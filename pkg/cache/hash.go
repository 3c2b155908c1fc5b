package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey joins prefix and the sha256 of the JSON-encoded parts.
//
// Note metadata keys look like "note:<64 hex>", where the parts are the
// vault-relative path, the file size and the modification time in
// nanoseconds. Touching or resizing a note therefore yields a new key and the
// stale entry is simply never read again.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex sha256 of data. [FileCache] uses it for entry file
// names and [VaultScope] for per-vault key prefixes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
