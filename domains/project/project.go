package project

import (
	"context"
	"time"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateRequest struct {
	Name        string `json:"name" form:"name"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
}

// UpdateRequest carries partial updates; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

type IProjectUsecase interface {
	Create(ctx context.Context, request CreateRequest) (Project, error)
	Update(ctx context.Context, ref string, request UpdateRequest) (Project, error)
	Delete(ctx context.Context, ref string) error
	Get(ctx context.Context, ref string) (Project, error)
	List(ctx context.Context, skip, limit int) ([]Project, error)
}
