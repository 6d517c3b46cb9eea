package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

// fakeStore is an in-memory stand-in for the Valkey-backed store.
type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
	fail bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, context.DeadlineExceeded
	}
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (s *fakeStore) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return context.DeadlineExceeded
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *fakeStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			delete(s.data, k)
			removed++
		}
	}
	return removed, nil
}

func (s *fakeStore) Usage(ctx context.Context) (int, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var size int64
	for _, v := range s.data {
		size += int64(len(v))
	}
	return len(s.data), size, nil
}

func newTestApp(store *fakeStore, hits *int) *fiber.App {
	app := fiber.New()
	app.Use(Cache(store, time.Minute, ""))

	app.Get("/v1/prompts", func(c *fiber.Ctx) error {
		*hits++
		return c.JSON(fiber.Map{"hits": *hits})
	})
	app.Get("/v1/prompts/:ref", func(c *fiber.Ctx) error {
		*hits++
		return c.JSON(fiber.Map{"ref": c.Params("ref")})
	})
	app.Get("/v1/plain", func(c *fiber.Ctx) error {
		*hits++
		return c.SendString("not json at all {")
	})
	app.Get("/v1/missing", func(c *fiber.Ctx) error {
		*hits++
		return c.Status(404).JSON(fiber.Map{"error": "nope"})
	})
	app.Post("/v1/prompts/abc/versions", func(c *fiber.Ctx) error {
		return c.Status(201).JSON(fiber.Map{"ok": true})
	})
	app.Post("/v1/prompts/broken", func(c *fiber.Ctx) error {
		return c.Status(409).JSON(fiber.Map{"error": "conflict"})
	})

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func TestCacheReadThrough(t *testing.T) {
	store := newFakeStore()
	hits := 0
	app := newTestApp(store, &hits)

	resp, first := doRequest(t, app, http.MethodGet, "/v1/prompts")
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Fatalf("expected MISS on first request, got %q", resp.Header.Get("X-Cache"))
	}
	if hits != 1 {
		t.Fatalf("expected 1 handler hit, got %d", hits)
	}

	resp, second := doRequest(t, app, http.MethodGet, "/v1/prompts")
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Fatalf("expected HIT on second request, got %q", resp.Header.Get("X-Cache"))
	}
	if hits != 1 {
		t.Fatalf("handler ran again on a cache hit, hits=%d", hits)
	}
	if first != second {
		t.Fatalf("cached body differs: %q vs %q", first, second)
	}
}

func TestCacheKeyIncludesSortedParams(t *testing.T) {
	store := newFakeStore()
	hits := 0
	app := newTestApp(store, &hits)

	doRequest(t, app, http.MethodGet, "/v1/prompts?skip=0&limit=10")

	if _, ok := store.data["/v1/prompts:limit=10:skip=0"]; !ok {
		keys := make([]string, 0, len(store.data))
		for k := range store.data {
			keys = append(keys, k)
		}
		t.Fatalf("expected sorted param key, stored keys: %v", keys)
	}
}

func TestCacheSkipsNonJSONAndNon200(t *testing.T) {
	store := newFakeStore()
	hits := 0
	app := newTestApp(store, &hits)

	doRequest(t, app, http.MethodGet, "/v1/plain")
	doRequest(t, app, http.MethodGet, "/v1/missing")

	if len(store.data) != 0 {
		t.Fatalf("expected nothing cached, have %d entries", len(store.data))
	}
}

func TestCacheMutationInvalidatesPrefix(t *testing.T) {
	store := newFakeStore()
	hits := 0
	app := newTestApp(store, &hits)

	doRequest(t, app, http.MethodGet, "/v1/prompts")
	doRequest(t, app, http.MethodGet, "/v1/prompts/abc")
	store.data["/v1/other"] = []byte(`{}`)

	if len(store.data) != 3 {
		t.Fatalf("setup expected 3 cached entries, got %d", len(store.data))
	}

	doRequest(t, app, http.MethodPost, "/v1/prompts/abc/versions")

	if _, ok := store.data["/v1/other"]; !ok {
		t.Fatalf("unrelated prefix was swept")
	}
	if len(store.data) != 1 {
		t.Fatalf("expected only the unrelated entry to survive, got %d entries", len(store.data))
	}
}

func TestCacheFailedMutationKeepsEntries(t *testing.T) {
	store := newFakeStore()
	hits := 0
	app := newTestApp(store, &hits)

	doRequest(t, app, http.MethodGet, "/v1/prompts")
	if len(store.data) != 1 {
		t.Fatalf("setup expected 1 cached entry, got %d", len(store.data))
	}

	doRequest(t, app, http.MethodPost, "/v1/prompts/broken")

	if len(store.data) != 1 {
		t.Fatalf("failed mutation should not invalidate, got %d entries", len(store.data))
	}
}

func TestCacheStoreFailureFallsThrough(t *testing.T) {
	store := newFakeStore()
	store.fail = true
	hits := 0
	app := newTestApp(store, &hits)

	resp, _ := doRequest(t, app, http.MethodGet, "/v1/prompts")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 despite store failure, got %d", resp.StatusCode)
	}
	if hits != 1 {
		t.Fatalf("expected handler to run, hits=%d", hits)
	}
}

func TestCacheBasePathStripped(t *testing.T) {
	store := newFakeStore()
	hits := 0

	app := fiber.New()
	app.Use(Cache(store, time.Minute, "/deck"))
	app.Get("/deck/v1/prompts", func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/deck/v1/projects", func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Post("/deck/v1/prompts/abc", func(c *fiber.Ctx) error {
		return c.Status(201).JSON(fiber.Map{"ok": true})
	})

	doRequest(t, app, http.MethodGet, "/deck/v1/prompts")
	doRequest(t, app, http.MethodGet, "/deck/v1/projects")

	if _, ok := store.data["/v1/prompts"]; !ok {
		t.Fatalf("expected base path stripped from keys, have %v", keysOf(store))
	}

	// The mutation must sweep /v1/prompts only, not the whole cache.
	doRequest(t, app, http.MethodPost, "/deck/v1/prompts/abc")

	if _, ok := store.data["/v1/prompts"]; ok {
		t.Fatalf("mutated prefix not invalidated")
	}
	if _, ok := store.data["/v1/projects"]; !ok {
		t.Fatalf("unrelated prefix swept on subpath deployment")
	}
}

func keysOf(store *fakeStore) []string {
	keys := make([]string, 0, len(store.data))
	for k := range store.data {
		keys = append(keys, k)
	}
	return keys
}

func TestInvalidationPrefix(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/v1/prompts", "/v1/prompts"},
		{"/v1/prompts/abc", "/v1/prompts"},
		{"/v1/prompts/abc/versions/2/tags", "/v1/prompts"},
		{"/v1/projects/xyz", "/v1/projects"},
	}
	for _, tc := range cases {
		if got := invalidationPrefix(tc.path); got != tc.want {
			t.Fatalf("invalidationPrefix(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
