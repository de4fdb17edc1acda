package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyForContent derives the cache key of raw CSV bytes.
func KeyForContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// KeyForURL derives the cache key of a normalized source URL. The prefix keeps
// URL keys apart from content keys.
func KeyForURL(normalizedURL string) string {
	sum := sha256.Sum256([]byte("url:" + normalizedURL))
	return hex.EncodeToString(sum[:])
}
