package prompt

import (
	"context"
	"time"
)

// TemplateFormat tells consumers how a prompt's content interpolates
// variables.
type TemplateFormat string

const (
	// FormatPlain marks simple {name} placeholder interpolation.
	FormatPlain TemplateFormat = "plain-interpolation"
	// FormatEngine marks content meant for a full template engine.
	FormatEngine TemplateFormat = "template-engine"
)

// LatestTagName is the system-managed tag repointed on every new version.
const LatestTagName = "latest"

type Prompt struct {
	ID             string         `json:"id"`
	ProjectID      string         `json:"project_id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Description    string         `json:"description,omitempty"`
	TemplateFormat TemplateFormat `json:"template_format"`
	Versions       []int          `json:"versions"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Version is one immutable numbered snapshot of a prompt's content.
type Version struct {
	ID        string    `json:"id"`
	PromptID  string    `json:"prompt_id"`
	Version   int       `json:"version"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag is a named pointer into a prompt's version history.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VersionID string `json:"version_id"`
	Version   int    `json:"version"`
}

type CreateRequest struct {
	ProjectID      string         `json:"project_id" form:"project_id"`
	ProjectSlug    string         `json:"project_slug" form:"project_slug"`
	Name           string         `json:"name" form:"name"`
	Slug           string         `json:"slug" form:"slug"`
	Description    string         `json:"description" form:"description"`
	TemplateFormat TemplateFormat `json:"template_format" form:"template_format"`
	Content        string         `json:"content" form:"content"`
}

// UpdateRequest carries partial updates; nil fields are left untouched.
// A non-empty Content appends a new version instead of mutating history.
type UpdateRequest struct {
	Name           *string         `json:"name"`
	Slug           *string         `json:"slug"`
	Description    *string         `json:"description"`
	TemplateFormat *TemplateFormat `json:"template_format"`
	Content        *string         `json:"content"`
}

type CreateVersionRequest struct {
	Content string `json:"content" form:"content"`
}

type CreateTagRequest struct {
	Name string `json:"name" form:"name"`
}

type IPromptUsecase interface {
	Create(ctx context.Context, request CreateRequest) (Prompt, error)
	Update(ctx context.Context, projectRef, promptRef string, request UpdateRequest) (Prompt, error)
	Delete(ctx context.Context, projectRef, promptRef string) error
	Get(ctx context.Context, projectRef, promptRef string) (Prompt, error)
	List(ctx context.Context, projectRef string) ([]Prompt, error)

	CreateVersion(ctx context.Context, projectRef, promptRef string, request CreateVersionRequest) (Version, error)
	ListVersions(ctx context.Context, projectRef, promptRef string, skip, limit int) ([]Version, error)
	GetVersion(ctx context.Context, projectRef, promptRef string, number int) (Version, error)
	DeleteVersion(ctx context.Context, projectRef, promptRef string, number int) (Version, error)

	ListTags(ctx context.Context, projectRef, promptRef string, number int) ([]Tag, error)
	CreateTag(ctx context.Context, projectRef, promptRef string, number int, request CreateTagRequest) (Tag, error)
	DeleteTag(ctx context.Context, projectRef, promptRef string, number int, tagRef string) error
	ResolveTag(ctx context.Context, projectRef, promptRef, tagRef string) (Version, error)
}
