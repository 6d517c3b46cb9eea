package repository

import (
	"context"
	"time"

	infraValkey "github.com/promptdeck/promptdeck/infrastructure/valkey"
)

// ValkeyCacheStore backs the response cache with a Valkey instance. Key
// prefixing is handled by the underlying client, so callers work with
// route-shaped keys only.
type ValkeyCacheStore struct {
	client *infraValkey.Client
}

func NewValkeyCacheStore(client *infraValkey.Client) *ValkeyCacheStore {
	return &ValkeyCacheStore{client: client}
}

func (s *ValkeyCacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.client.Get(ctx, key)
}

func (s *ValkeyCacheStore) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.SetEx(ctx, key, value, ttl)
}

func (s *ValkeyCacheStore) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...)
}

// DeletePrefix removes every key under prefix and returns how many went away.
func (s *ValkeyCacheStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	keys, err := s.client.ScanPrefix(ctx, prefix)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := s.client.Del(ctx, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Usage walks the whole keyspace and sums stored payload sizes.
func (s *ValkeyCacheStore) Usage(ctx context.Context) (int, int64, error) {
	keys, err := s.client.ScanPrefix(ctx, "")
	if err != nil {
		return 0, 0, err
	}
	if len(keys) == 0 {
		return 0, 0, nil
	}

	var total int64
	// MGET in batches so a large cache does not blow a single reply.
	const batch = 200
	for start := 0; start < len(keys); start += batch {
		end := start + batch
		if end > len(keys) {
			end = len(keys)
		}
		values, err := s.client.MGet(ctx, keys[start:end]...)
		if err != nil {
			return 0, 0, err
		}
		for _, v := range values {
			total += int64(len(v))
		}
	}
	return len(keys), total, nil
}
