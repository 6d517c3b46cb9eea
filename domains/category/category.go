package category

import (
	"context"
	"time"
)

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PromptIDs   []string  `json:"prompt_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateRequest struct {
	Name        string `json:"name" form:"name"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

type MembershipRequest struct {
	PromptIDs []string `json:"prompt_ids"`
}

type ICategoryUsecase interface {
	Create(ctx context.Context, request CreateRequest) (Category, error)
	Update(ctx context.Context, ref string, request UpdateRequest) (Category, error)
	Delete(ctx context.Context, ref string) error
	Get(ctx context.Context, ref string) (Category, error)
	List(ctx context.Context, skip, limit int) ([]Category, error)

	AddPrompts(ctx context.Context, ref string, request MembershipRequest) error
	RemovePrompts(ctx context.Context, ref string, request MembershipRequest) error
}
