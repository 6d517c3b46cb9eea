package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
	"github.com/promptdeck/promptdeck/ui/rest/middleware"
)

// fakePromptUsecase returns canned values and records the arguments of the
// last call so handler wiring can be asserted.
type fakePromptUsecase struct {
	prompt  domainPrompt.Prompt
	version domainPrompt.Version
	err     error

	lastProjectRef string
	lastPromptRef  string
	lastNumber     int
	lastTagRef     string
}

func (f *fakePromptUsecase) Create(ctx context.Context, request domainPrompt.CreateRequest) (domainPrompt.Prompt, error) {
	return f.prompt, f.err
}

func (f *fakePromptUsecase) Update(ctx context.Context, projectRef, promptRef string, request domainPrompt.UpdateRequest) (domainPrompt.Prompt, error) {
	f.lastProjectRef, f.lastPromptRef = projectRef, promptRef
	return f.prompt, f.err
}

func (f *fakePromptUsecase) Delete(ctx context.Context, projectRef, promptRef string) error {
	f.lastProjectRef, f.lastPromptRef = projectRef, promptRef
	return f.err
}

func (f *fakePromptUsecase) Get(ctx context.Context, projectRef, promptRef string) (domainPrompt.Prompt, error) {
	f.lastProjectRef, f.lastPromptRef = projectRef, promptRef
	return f.prompt, f.err
}

func (f *fakePromptUsecase) List(ctx context.Context, projectRef string) ([]domainPrompt.Prompt, error) {
	f.lastProjectRef = projectRef
	return []domainPrompt.Prompt{f.prompt}, f.err
}

func (f *fakePromptUsecase) CreateVersion(ctx context.Context, projectRef, promptRef string, request domainPrompt.CreateVersionRequest) (domainPrompt.Version, error) {
	f.lastProjectRef, f.lastPromptRef = projectRef, promptRef
	return f.version, f.err
}

func (f *fakePromptUsecase) ListVersions(ctx context.Context, projectRef, promptRef string, skip, limit int) ([]domainPrompt.Version, error) {
	f.lastProjectRef, f.lastPromptRef = projectRef, promptRef
	return []domainPrompt.Version{f.version}, f.err
}

func (f *fakePromptUsecase) GetVersion(ctx context.Context, projectRef, promptRef string, number int) (domainPrompt.Version, error) {
	f.lastProjectRef, f.lastPromptRef, f.lastNumber = projectRef, promptRef, number
	return f.version, f.err
}

func (f *fakePromptUsecase) DeleteVersion(ctx context.Context, projectRef, promptRef string, number int) (domainPrompt.Version, error) {
	f.lastProjectRef, f.lastPromptRef, f.lastNumber = projectRef, promptRef, number
	return f.version, f.err
}

func (f *fakePromptUsecase) ListTags(ctx context.Context, projectRef, promptRef string, number int) ([]domainPrompt.Tag, error) {
	f.lastProjectRef, f.lastPromptRef, f.lastNumber = projectRef, promptRef, number
	return nil, f.err
}

func (f *fakePromptUsecase) CreateTag(ctx context.Context, projectRef, promptRef string, number int, request domainPrompt.CreateTagRequest) (domainPrompt.Tag, error) {
	f.lastProjectRef, f.lastPromptRef, f.lastNumber = projectRef, promptRef, number
	return domainPrompt.Tag{Name: request.Name, Version: number}, f.err
}

func (f *fakePromptUsecase) DeleteTag(ctx context.Context, projectRef, promptRef string, number int, tagRef string) error {
	f.lastProjectRef, f.lastPromptRef, f.lastNumber, f.lastTagRef = projectRef, promptRef, number, tagRef
	return f.err
}

func (f *fakePromptUsecase) ResolveTag(ctx context.Context, projectRef, promptRef, tagRef string) (domainPrompt.Version, error) {
	f.lastProjectRef, f.lastPromptRef, f.lastTagRef = projectRef, promptRef, tagRef
	return f.version, f.err
}

func newPromptTestApp(fake *fakePromptUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestPrompt(app, fake)
	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	resp.Body.Close()

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, body)
	}
	return envelope
}

func TestCreatePromptResponds201(t *testing.T) {
	fake := &fakePromptUsecase{prompt: domainPrompt.Prompt{ID: "p1", Slug: "greeting"}}
	app := newPromptTestApp(fake)

	req := httptest.NewRequest(http.MethodPost, "/prompts", strings.NewReader(`{"name":"Greeting","slug":"greeting","content":"hi","project_slug":"demo"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope["code"] != "SUCCESS" {
		t.Fatalf("expected SUCCESS code, got %v", envelope["code"])
	}
	results, ok := envelope["results"].(map[string]any)
	if !ok || results["id"] != "p1" {
		t.Fatalf("expected created prompt in results, got %v", envelope["results"])
	}
}

func TestGetPromptPassesProjectScope(t *testing.T) {
	fake := &fakePromptUsecase{prompt: domainPrompt.Prompt{ID: "p1"}}
	app := newPromptTestApp(fake)

	req := httptest.NewRequest(http.MethodGet, "/prompts/greeting?project_slug=demo", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if fake.lastProjectRef != "demo" || fake.lastPromptRef != "greeting" {
		t.Fatalf("handler passed (%q, %q)", fake.lastProjectRef, fake.lastPromptRef)
	}
}

func TestProjectIDWinsOverSlug(t *testing.T) {
	fake := &fakePromptUsecase{}
	app := newPromptTestApp(fake)

	req := httptest.NewRequest(http.MethodGet, "/prompts/greeting?project_id=abc&project_slug=demo", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if fake.lastProjectRef != "abc" {
		t.Fatalf("expected project_id to take precedence, got %q", fake.lastProjectRef)
	}
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	fake := &fakePromptUsecase{err: pkgError.NotFoundError("prompt not found")}
	app := newPromptTestApp(fake)

	req := httptest.NewRequest(http.MethodGet, "/prompts/missing?project_slug=demo", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 from recovery middleware, got %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope["message"] != "prompt not found" {
		t.Fatalf("expected error message in envelope, got %v", envelope["message"])
	}
}

func TestBadVersionNumberRejected(t *testing.T) {
	fake := &fakePromptUsecase{}
	app := newPromptTestApp(fake)

	for _, target := range []string{
		"/prompts/greeting/versions/zero",
		"/prompts/greeting/versions/0",
		"/prompts/greeting/versions/-1",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error: %v", err)
		}
		if resp.StatusCode != 400 {
			t.Fatalf("GET %s: expected 400, got %d", target, resp.StatusCode)
		}
	}
}

func TestDeleteTagRouteWiring(t *testing.T) {
	fake := &fakePromptUsecase{}
	app := newPromptTestApp(fake)

	req := httptest.NewRequest(http.MethodDelete, "/prompts/greeting/versions/2/tags/stable?project_slug=demo", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if fake.lastNumber != 2 || fake.lastTagRef != "stable" {
		t.Fatalf("handler passed number=%d tag=%q", fake.lastNumber, fake.lastTagRef)
	}
}
