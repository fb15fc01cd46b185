package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// HTTPKey builds the cache key for a response fetched from url.
// The key format is: http:namespace:hash(url)
func HTTPKey(namespace, url string) string {
	return "http:" + namespace + ":" + Hash([]byte(url))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
