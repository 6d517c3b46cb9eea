package valkey

import (
	"context"
	"fmt"
	"strings"
	"time"

	valkeylib "github.com/valkey-io/valkey-go"
)

const (
	// DefaultConnectTimeout is the maximum time to wait for initial connection
	DefaultConnectTimeout = 5 * time.Second

	scanBatchSize = 100
)

// Config holds the configuration for creating a Valkey client
type Config struct {
	Address        string
	Password       string
	DB             int
	KeyPrefix      string
	ConnectTimeout time.Duration // Optional, defaults to DefaultConnectTimeout
}

// Client wraps the valkey-go client with application-specific functionality.
// This struct should be created via NewClient and passed as a dependency.
type Client struct {
	inner     valkeylib.Client
	keyPrefix string
}

// NewClient creates a new Valkey client instance.
// The caller is responsible for calling Close() when done.
// Returns an error if the connection cannot be established within the timeout.
func NewClient(cfg Config) (*Client, error) {
	opts := valkeylib.ClientOption{
		InitAddress: []string{cfg.Address},
		SelectDB:    cfg.DB,
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	inner, err := valkeylib.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := inner.Do(ctx, inner.B().Ping().Build()).Error(); err != nil {
		inner.Close()
		return nil, fmt.Errorf("failed to ping valkey (timeout: %v): %w", timeout, err)
	}

	prefix := cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}

	return &Client{
		inner:     inner,
		keyPrefix: prefix,
	}, nil
}

// Close closes the Valkey connection.
func (c *Client) Close() {
	if c.inner != nil {
		c.inner.Close()
	}
}

// KeyPrefix returns the configured key prefix.
func (c *Client) KeyPrefix() string {
	return c.keyPrefix
}

// Ping tests the connection to Valkey with a context for timeout control.
func (c *Client) Ping(ctx context.Context) error {
	return c.inner.Do(ctx, c.inner.B().Ping().Build()).Error()
}

// SetEx stores value under the prefixed key with an expiry.
func (c *Client) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := c.inner.B().Set().
		Key(c.keyPrefix + key).
		Value(string(value)).
		Ex(ttl).
		Build()
	return c.inner.Do(ctx, cmd).Error()
}

// Get returns the value stored under the prefixed key, or nil when absent.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.inner.B().Get().Key(c.keyPrefix + key).Build()
	data, err := c.inner.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkeylib.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Del deletes the given prefixed keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.keyPrefix + k
	}
	cmd := c.inner.B().Del().Key(full...).Build()
	return c.inner.Do(ctx, cmd).Error()
}

// ScanPrefix returns every key starting with the given (unprefixed) prefix.
// The key prefix is stripped from the results.
func (c *Client) ScanPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		scanCmd := c.inner.B().Scan().Cursor(cursor).Match(c.keyPrefix + prefix + "*").Count(scanBatchSize).Build()
		result, err := c.inner.Do(ctx, scanCmd).AsScanEntry()
		if err != nil {
			return nil, err
		}

		for _, k := range result.Elements {
			keys = append(keys, strings.TrimPrefix(k, c.keyPrefix))
		}

		cursor = result.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// MGet fetches the values of the given prefixed keys. Missing keys yield
// empty strings, mirroring the underlying MGET contract.
func (c *Client) MGet(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.keyPrefix + k
	}
	cmd := c.inner.B().Mget().Key(full...).Build()
	return c.inner.Do(ctx, cmd).AsStrSlice()
}

// IsNil checks if an error returned by the client represents a Valkey NIL response.
func IsNil(err error) bool {
	return valkeylib.IsValkeyNil(err)
}
