// Package cache stores SPARQL responses between runs. The archive's metadata
// changes rarely, so repeated runs during development and correction rounds
// should not hammer the endpoint.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// QueryKey generates a cache key for a SPARQL query against an endpoint
func QueryKey(endpoint, query string) string {
	hash := sha256.Sum256([]byte(endpoint + "\n" + query))
	return "hgb:v1:" + hex.EncodeToString(hash[:])
}
