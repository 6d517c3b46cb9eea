package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Persistence models for GORM. Domain structs stay free of gorm tags;
// mappers live next to each repository.

type projectModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex:idx_projects_slug;not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (projectModel) TableName() string {
	return "projects"
}

type promptModel struct {
	ID             string `gorm:"primaryKey"`
	ProjectID      string `gorm:"uniqueIndex:idx_prompts_project_slug,priority:1;not null"`
	Name           string `gorm:"not null"`
	Slug           string `gorm:"uniqueIndex:idx_prompts_project_slug,priority:2;not null"`
	Description    string
	TemplateFormat string    `gorm:"not null;default:'plain-interpolation'"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (promptModel) TableName() string {
	return "prompts"
}

type versionModel struct {
	ID            string    `gorm:"primaryKey"`
	PromptID      string    `gorm:"uniqueIndex:idx_versions_prompt_number,priority:1;not null"`
	VersionNumber int       `gorm:"uniqueIndex:idx_versions_prompt_number,priority:2;not null"`
	Content       string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (versionModel) TableName() string {
	return "prompt_versions"
}

// tagModel carries prompt_id alongside version_id so the per-prompt name
// uniqueness lives in the schema instead of application checks.
type tagModel struct {
	ID        string `gorm:"primaryKey"`
	PromptID  string `gorm:"uniqueIndex:idx_tags_prompt_name,priority:1;not null"`
	Name      string `gorm:"uniqueIndex:idx_tags_prompt_name,priority:2;not null"`
	VersionID string `gorm:"index:idx_tags_version;not null"`
}

func (tagModel) TableName() string {
	return "prompt_tags"
}

type collectionModel struct {
	ID          string `gorm:"primaryKey"`
	ProjectID   string `gorm:"uniqueIndex:idx_collections_project_slug,priority:1;not null"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex:idx_collections_project_slug,priority:2;not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (collectionModel) TableName() string {
	return "collections"
}

type categoryModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex:idx_categories_slug;not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (categoryModel) TableName() string {
	return "categories"
}

type collectionPromptModel struct {
	CollectionID string `gorm:"uniqueIndex:idx_collection_prompts,priority:1;not null"`
	PromptID     string `gorm:"uniqueIndex:idx_collection_prompts,priority:2;not null"`
}

func (collectionPromptModel) TableName() string {
	return "collection_prompts"
}

type categoryPromptModel struct {
	CategoryID string `gorm:"uniqueIndex:idx_category_prompts,priority:1;not null"`
	PromptID   string `gorm:"uniqueIndex:idx_category_prompts,priority:2;not null"`
}

func (categoryPromptModel) TableName() string {
	return "category_prompts"
}

// InitSchema migrates every table the service persists to.
func InitSchema(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&projectModel{},
		&promptModel{},
		&versionModel{},
		&tagModel{},
		&collectionModel{},
		&categoryModel{},
		&collectionPromptModel{},
		&categoryPromptModel{},
	)
}
