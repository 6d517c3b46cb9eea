package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached read responses live before natural expiry.
const DefaultTTL = time.Hour

// Stats describes the current cache population.
type Stats struct {
	Keys      int    `json:"keys"`
	TotalSize int64  `json:"total_size"`
	HumanSize string `json:"human_size"`
}

// Store is the external key-value collaborator behind the read-through
// cache. Implementations must return (nil, nil) from Get on a miss so
// callers can distinguish absence from store failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// DeletePrefix removes every entry whose key starts with prefix and
	// returns how many entries were swept.
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// Usage reports the number of cached entries and their total payload
	// size in bytes.
	Usage(ctx context.Context) (keys int, bytes int64, err error)
}

type ICacheUsecase interface {
	GetStats(ctx context.Context) (Stats, error)
	Clear(ctx context.Context) (int, error)
}
