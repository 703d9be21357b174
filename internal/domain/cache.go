package domain

import (
	"context"
	"time"
)

const (
	candidateCachePrefix  = "candidate:"
	AllCandidatesCacheKey = "candidates:all"
)

// CandidateCacheKey expects an already normalized email.
func CandidateCacheKey(normalizedEmail string) string {
	return candidateCachePrefix + normalizedEmail
}

// Cache is a key-value store with optional expiry.
type Cache interface {
	// Get decodes the value into dest. A miss returns (false, nil).
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value. A ttl <= 0 keeps the entry until removed.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
