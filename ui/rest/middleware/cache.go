package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainCache "github.com/promptdeck/promptdeck/domains/cache"
)

// skippedPaths are never cached. The cache admin surface and health probe
// are excluded so they always reflect live state.
var skippedPaths = []string{"/docs", "/openapi.json", "/v1/cache", "/v1/health"}

func skipCaching(path string) bool {
	for _, p := range skippedPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// invalidationPrefix maps a mutated path to the key prefix to sweep. The
// first two path segments are kept, so a write under /v1/prompts/abc
// clears every cached read under /v1/prompts.
func invalidationPrefix(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, "/")
}

// Cache is the read-through response cache. GET responses with status 200
// and a JSON body are stored under a key derived from the route and its
// sorted query parameters. Successful mutations sweep the prefix they
// touched. Store failures are treated as misses so the cache can never
// take reads down with it. basePath is stripped before key derivation so
// subpath deployments keep per-resource invalidation prefixes.
func Cache(store domainCache.Store, ttl time.Duration, basePath string) fiber.Handler {
	if ttl <= 0 {
		ttl = domainCache.DefaultTTL
	}

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if basePath != "" {
			path = strings.TrimPrefix(path, basePath)
		}
		if skipCaching(path) {
			return c.Next()
		}

		switch c.Method() {
		case fiber.MethodGet:
			key := domainCache.MakeKey(path, c.Queries())

			cached, err := store.Get(c.UserContext(), key)
			if err != nil {
				logrus.Warnf("[CACHE] Lookup failed for %s: %v", key, err)
			}
			if cached != nil {
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				c.Set("X-Cache", "HIT")
				return c.Status(fiber.StatusOK).Send(cached)
			}

			if err := c.Next(); err != nil {
				return err
			}

			c.Set("X-Cache", "MISS")
			if c.Response().StatusCode() != fiber.StatusOK {
				return nil
			}
			body := c.Response().Body()
			if !json.Valid(body) {
				return nil
			}
			// The response buffer is reused by fasthttp, keep our own copy.
			value := make([]byte, len(body))
			copy(value, body)
			if err := store.SetEx(c.UserContext(), key, value, ttl); err != nil {
				logrus.Warnf("[CACHE] Store failed for %s: %v", key, err)
			}
			return nil

		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			if err := c.Next(); err != nil {
				return err
			}

			if c.Response().StatusCode() >= fiber.StatusBadRequest {
				return nil
			}
			prefix := invalidationPrefix(path)
			removed, err := store.DeletePrefix(c.UserContext(), prefix)
			if err != nil {
				logrus.Warnf("[CACHE] Invalidation failed for %s: %v", prefix, err)
				return nil
			}
			if removed > 0 {
				logrus.Debugf("[CACHE] Invalidated %d entries under %s", removed, prefix)
			}
			return nil

		default:
			return c.Next()
		}
	}
}
