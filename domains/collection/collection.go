package collection

import (
	"context"
	"time"
)

type Collection struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PromptIDs   []string  `json:"prompt_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateRequest struct {
	ProjectID   string `json:"project_id" form:"project_id"`
	ProjectSlug string `json:"project_slug" form:"project_slug"`
	Name        string `json:"name" form:"name"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// MembershipRequest names the prompts to add to or remove from a collection.
type MembershipRequest struct {
	PromptIDs []string `json:"prompt_ids"`
}

type ICollectionUsecase interface {
	Create(ctx context.Context, request CreateRequest) (Collection, error)
	Update(ctx context.Context, projectRef, ref string, request UpdateRequest) (Collection, error)
	Delete(ctx context.Context, projectRef, ref string) error
	Get(ctx context.Context, projectRef, ref string) (Collection, error)
	List(ctx context.Context, projectRef string) ([]Collection, error)

	AddPrompts(ctx context.Context, projectRef, ref string, request MembershipRequest) error
	RemovePrompts(ctx context.Context, projectRef, ref string, request MembershipRequest) error
}
