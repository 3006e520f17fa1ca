// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// Cache defines the interface for cache operations.
// Implementations can be Redis, SQLite, in-memory, or any other caching solution.
//
// Example usage:
//
//	// Store a parsed page
//	err := cache.Set(ctx, "download:https://film2subtitle.com/x", data, 1*time.Hour)
//
//	// Retrieve it
//	data, err := cache.Get(ctx, "download:https://film2subtitle.com/x")
//	if err != nil {
//		// cache miss
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by cache backends that hold a remote or file connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sizer is implemented by cache backends that can count their entries cheaply.
type Sizer interface {
	Len() int
}

// ErrCacheMiss is returned by Cache.Get for absent or expired keys.
var ErrCacheMiss = errors.New("key not found")
