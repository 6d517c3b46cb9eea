package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainProject "github.com/promptdeck/promptdeck/domains/project"
	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
	"github.com/promptdeck/promptdeck/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := repository.InitSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

func newTestPromptService(t *testing.T) (domainPrompt.IPromptUsecase, domainProject.Project) {
	t.Helper()

	db := newTestDB(t)
	projects := NewProjectService(repository.NewCatalogGormRepository(db))
	prompts := NewPromptService(repository.NewPromptGormRepository(db))

	project, err := projects.Create(context.Background(), domainProject.CreateRequest{
		Name: "Demo",
		Slug: "demo",
	})
	if err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return prompts, project
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	ge, ok := err.(pkgError.GenericError)
	if !ok {
		t.Fatalf("expected typed error, got %T: %v", err, err)
	}
	if ge.StatusCode() != want {
		t.Fatalf("expected status %d, got %d (%v)", want, ge.StatusCode(), err)
	}
}

func TestPromptCreateStartsHistory(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo",
		Name:        "Greeting",
		Slug:        "greeting",
		Content:     "Hello there",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Create() returned empty ID")
	}
	if created.TemplateFormat != domainPrompt.FormatPlain {
		t.Fatalf("expected default template format, got %q", created.TemplateFormat)
	}
	if !reflect.DeepEqual(created.Versions, []int{1}) {
		t.Fatalf("expected versions [1], got %v", created.Versions)
	}

	latest, err := prompts.ResolveTag(ctx, "demo", "greeting", "latest")
	if err != nil {
		t.Fatalf("ResolveTag(latest) unexpected error: %v", err)
	}
	if latest.Version != 1 || latest.Content != "Hello there" {
		t.Fatalf("latest should point at version 1, got %d (%q)", latest.Version, latest.Content)
	}
}

func TestVersionNumbersAreSequential(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	for i := 2; i <= 4; i++ {
		version, err := prompts.CreateVersion(ctx, "demo", "greeting", domainPrompt.CreateVersionRequest{
			Content: fmt.Sprintf("v%d", i),
		})
		if err != nil {
			t.Fatalf("CreateVersion() unexpected error: %v", err)
		}
		if version.Version != i {
			t.Fatalf("expected version number %d, got %d", i, version.Version)
		}
	}

	prompt, err := prompts.Get(ctx, "demo", "greeting")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(prompt.Versions, []int{1, 2, 3, 4}) {
		t.Fatalf("expected versions [1 2 3 4], got %v", prompt.Versions)
	}

	latest, err := prompts.ResolveTag(ctx, "demo", "greeting", "latest")
	if err != nil {
		t.Fatalf("ResolveTag(latest) unexpected error: %v", err)
	}
	if latest.Version != 4 {
		t.Fatalf("latest should follow new versions, got %d", latest.Version)
	}
}

func TestTagReplaceMovesPointer(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	for i := 2; i <= 3; i++ {
		if _, err := prompts.CreateVersion(ctx, "demo", "greeting", domainPrompt.CreateVersionRequest{Content: fmt.Sprintf("v%d", i)}); err != nil {
			t.Fatalf("CreateVersion() unexpected error: %v", err)
		}
	}

	if _, err := prompts.CreateTag(ctx, "demo", "greeting", 2, domainPrompt.CreateTagRequest{Name: "stable"}); err != nil {
		t.Fatalf("CreateTag() unexpected error: %v", err)
	}
	resolved, err := prompts.ResolveTag(ctx, "demo", "greeting", "stable")
	if err != nil {
		t.Fatalf("ResolveTag(stable) unexpected error: %v", err)
	}
	if resolved.Version != 2 {
		t.Fatalf("stable should point at 2, got %d", resolved.Version)
	}

	// Re-tagging the same name moves the pointer instead of erroring.
	if _, err := prompts.CreateTag(ctx, "demo", "greeting", 3, domainPrompt.CreateTagRequest{Name: "stable"}); err != nil {
		t.Fatalf("CreateTag() replace unexpected error: %v", err)
	}
	resolved, err = prompts.ResolveTag(ctx, "demo", "greeting", "stable")
	if err != nil {
		t.Fatalf("ResolveTag(stable) unexpected error: %v", err)
	}
	if resolved.Version != 3 {
		t.Fatalf("stable should have moved to 3, got %d", resolved.Version)
	}

	tags, err := prompts.ListTags(ctx, "demo", "greeting", 2)
	if err != nil {
		t.Fatalf("ListTags() unexpected error: %v", err)
	}
	for _, tag := range tags {
		if tag.Name == "stable" {
			t.Fatalf("stable still attached to version 2 after replace")
		}
	}
}

func TestResolveTagByIDAndName(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	tag, err := prompts.CreateTag(ctx, "demo", "greeting", 1, domainPrompt.CreateTagRequest{Name: "rc"})
	if err != nil {
		t.Fatalf("CreateTag() unexpected error: %v", err)
	}

	byName, err := prompts.ResolveTag(ctx, "demo", "greeting", "rc")
	if err != nil {
		t.Fatalf("ResolveTag(name) unexpected error: %v", err)
	}
	byID, err := prompts.ResolveTag(ctx, "demo", "greeting", tag.ID)
	if err != nil {
		t.Fatalf("ResolveTag(id) unexpected error: %v", err)
	}
	if !reflect.DeepEqual(byName, byID) {
		t.Fatalf("id and name resolution disagree:\n%+v\n%+v", byName, byID)
	}
	if byID.Version != 1 {
		t.Fatalf("expected version 1, got %d", byID.Version)
	}
}

func TestDeleteTagIsVersionScoped(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if _, err := prompts.CreateVersion(ctx, "demo", "greeting", domainPrompt.CreateVersionRequest{Content: "v2"}); err != nil {
		t.Fatalf("CreateVersion() unexpected error: %v", err)
	}
	if _, err := prompts.CreateTag(ctx, "demo", "greeting", 2, domainPrompt.CreateTagRequest{Name: "stable"}); err != nil {
		t.Fatalf("CreateTag() unexpected error: %v", err)
	}

	// The tag points at version 2; deleting it through version 1 must fail.
	err = prompts.DeleteTag(ctx, "demo", "greeting", 1, "stable")
	assertStatus(t, err, 404)

	if err := prompts.DeleteTag(ctx, "demo", "greeting", 2, "stable"); err != nil {
		t.Fatalf("DeleteTag() unexpected error: %v", err)
	}
	_, err = prompts.ResolveTag(ctx, "demo", "greeting", "stable")
	assertStatus(t, err, 404)
}

func TestDeleteVersionRemovesItsTags(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	for i := 2; i <= 3; i++ {
		if _, err := prompts.CreateVersion(ctx, "demo", "greeting", domainPrompt.CreateVersionRequest{Content: fmt.Sprintf("v%d", i)}); err != nil {
			t.Fatalf("CreateVersion() unexpected error: %v", err)
		}
	}
	if _, err := prompts.CreateTag(ctx, "demo", "greeting", 2, domainPrompt.CreateTagRequest{Name: "stable"}); err != nil {
		t.Fatalf("CreateTag() unexpected error: %v", err)
	}

	deleted, err := prompts.DeleteVersion(ctx, "demo", "greeting", 2)
	if err != nil {
		t.Fatalf("DeleteVersion() unexpected error: %v", err)
	}
	if deleted.Version != 2 {
		t.Fatalf("expected deleted version 2, got %d", deleted.Version)
	}

	_, err = prompts.GetVersion(ctx, "demo", "greeting", 2)
	assertStatus(t, err, 404)
	_, err = prompts.ResolveTag(ctx, "demo", "greeting", "stable")
	assertStatus(t, err, 404)

	// Numbering keeps its gap, the remaining history is untouched.
	prompt, err := prompts.Get(ctx, "demo", "greeting")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(prompt.Versions, []int{1, 3}) {
		t.Fatalf("expected versions [1 3], got %v", prompt.Versions)
	}
}

func TestLookupByIDAndSlugAgree(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	byID, err := prompts.Get(ctx, "", created.ID)
	if err != nil {
		t.Fatalf("Get(by id) unexpected error: %v", err)
	}
	bySlug, err := prompts.Get(ctx, "demo", "greeting")
	if err != nil {
		t.Fatalf("Get(by slug) unexpected error: %v", err)
	}
	if !reflect.DeepEqual(byID, bySlug) {
		t.Fatalf("id and slug lookups disagree:\n%+v\n%+v", byID, bySlug)
	}
}

func TestSlugLookupRequiresProject(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	_, err = prompts.Get(ctx, "", "greeting")
	assertStatus(t, err, 400)
}

func TestDuplicateSlugConflicts(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	request := domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	}
	if _, err := prompts.Create(ctx, request); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	_, err := prompts.Create(ctx, request)
	assertStatus(t, err, 409)
}

func TestUpdateContentAppendsVersion(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	name := "Friendly greeting"
	updated, err := prompts.Update(ctx, "demo", "greeting", domainPrompt.UpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update(meta) unexpected error: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if !reflect.DeepEqual(updated.Versions, []int{1}) {
		t.Fatalf("metadata update must not touch history, got %v", updated.Versions)
	}

	content := "v2"
	updated, err = prompts.Update(ctx, "demo", "greeting", domainPrompt.UpdateRequest{Content: &content})
	if err != nil {
		t.Fatalf("Update(content) unexpected error: %v", err)
	}
	if !reflect.DeepEqual(updated.Versions, []int{1, 2}) {
		t.Fatalf("content update should append a version, got %v", updated.Versions)
	}

	latest, err := prompts.ResolveTag(ctx, "demo", "greeting", "latest")
	if err != nil {
		t.Fatalf("ResolveTag(latest) unexpected error: %v", err)
	}
	if latest.Version != 2 || latest.Content != "v2" {
		t.Fatalf("latest should point at the appended version, got %d (%q)", latest.Version, latest.Content)
	}
}

func TestDeletePromptCascades(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	created, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := prompts.Delete(ctx, "demo", "greeting"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	_, err = prompts.Get(ctx, "", created.ID)
	assertStatus(t, err, 404)
	_, err = prompts.GetVersion(ctx, "demo", "greeting", 1)
	assertStatus(t, err, 404)
}

func TestListVersionsPagination(t *testing.T) {
	prompts, _ := newTestPromptService(t)
	ctx := context.Background()

	_, err := prompts.Create(ctx, domainPrompt.CreateRequest{
		ProjectSlug: "demo", Name: "Greeting", Slug: "greeting", Content: "v1",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	for i := 2; i <= 5; i++ {
		if _, err := prompts.CreateVersion(ctx, "demo", "greeting", domainPrompt.CreateVersionRequest{Content: fmt.Sprintf("v%d", i)}); err != nil {
			t.Fatalf("CreateVersion() unexpected error: %v", err)
		}
	}

	page, err := prompts.ListVersions(ctx, "demo", "greeting", 1, 2)
	if err != nil {
		t.Fatalf("ListVersions() unexpected error: %v", err)
	}
	if len(page) != 2 || page[0].Version != 2 || page[1].Version != 3 {
		t.Fatalf("expected versions [2 3], got %+v", page)
	}
}
