package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const catalogPrefix = "catalog"

// catalogKey returns "catalog:<sha256>" for a definition service and
// processing type. Trailing slashes on baseURL are ignored and the two parts
// are NUL-separated, so ("http://defs/a", "b") and ("http://defs", "a/b")
// map to different entries.
func catalogKey(baseURL, processingType string) string {
	base := strings.TrimRight(baseURL, "/")
	return catalogPrefix + ":" + Hash([]byte(base+"\x00"+processingType))
}

// Hash returns the hex SHA-256 of data. [FileCache] names each entry after
// the hash of its key and shards entries by the first two characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
