package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainCategory "github.com/promptdeck/promptdeck/domains/category"
	domainCollection "github.com/promptdeck/promptdeck/domains/collection"
	domainProject "github.com/promptdeck/promptdeck/domains/project"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

// CatalogGormRepository persists the grouping entities around prompts:
// projects, collections and categories plus their memberships.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func fromProjectModel(m projectModel) domainProject.Project {
	return domainProject.Project{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func fromCollectionModel(m collectionModel, promptIDs []string) domainCollection.Collection {
	return domainCollection.Collection{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		PromptIDs:   promptIDs,
		CreatedAt:   m.CreatedAt,
	}
}

func fromCategoryModel(m categoryModel, promptIDs []string) domainCategory.Category {
	return domainCategory.Category{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		PromptIDs:   promptIDs,
		CreatedAt:   m.CreatedAt,
	}
}

// --- Projects ---

func (r *CatalogGormRepository) CreateProject(ctx context.Context, p domainProject.Project) (domainProject.Project, error) {
	m := projectModel{
		ID:          uuid.New().String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainProject.Project{}, pkgError.ConflictError("project slug already exists")
		}
		return domainProject.Project{}, err
	}
	return fromProjectModel(m), nil
}

func (r *CatalogGormRepository) GetProject(ctx context.Context, ref string) (domainProject.Project, error) {
	db := r.db.WithContext(ctx)
	id, err := resolveProjectID(db, ref)
	if err != nil {
		return domainProject.Project{}, err
	}
	var m projectModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return domainProject.Project{}, err
	}
	return fromProjectModel(m), nil
}

func (r *CatalogGormRepository) ListProjects(ctx context.Context, skip, limit int) ([]domainProject.Project, error) {
	var models []projectModel
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]domainProject.Project, len(models))
	for i, m := range models {
		result[i] = fromProjectModel(m)
	}
	return result, nil
}

func (r *CatalogGormRepository) UpdateProject(ctx context.Context, ref string, updates map[string]any) (domainProject.Project, error) {
	db := r.db.WithContext(ctx)
	id, err := resolveProjectID(db, ref)
	if err != nil {
		return domainProject.Project{}, err
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := db.Model(&projectModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainProject.Project{}, pkgError.ConflictError("project slug already exists")
			}
			return domainProject.Project{}, err
		}
	}

	var m projectModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return domainProject.Project{}, err
	}
	return fromProjectModel(m), nil
}

// DeleteProject removes the project and everything scoped under it:
// prompts with their versions and tags, collections and memberships.
func (r *CatalogGormRepository) DeleteProject(ctx context.Context, ref string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := resolveProjectID(tx, ref)
		if err != nil {
			return err
		}

		var promptIDs []string
		if err := tx.Model(&promptModel{}).Where("project_id = ?", id).Pluck("id", &promptIDs).Error; err != nil {
			return err
		}
		if len(promptIDs) > 0 {
			if err := tx.Delete(&tagModel{}, "prompt_id IN ?", promptIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&versionModel{}, "prompt_id IN ?", promptIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&collectionPromptModel{}, "prompt_id IN ?", promptIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&categoryPromptModel{}, "prompt_id IN ?", promptIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&promptModel{}, "id IN ?", promptIDs).Error; err != nil {
				return err
			}
		}

		var collectionIDs []string
		if err := tx.Model(&collectionModel{}).Where("project_id = ?", id).Pluck("id", &collectionIDs).Error; err != nil {
			return err
		}
		if len(collectionIDs) > 0 {
			if err := tx.Delete(&collectionPromptModel{}, "collection_id IN ?", collectionIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&collectionModel{}, "id IN ?", collectionIDs).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&projectModel{}, "id = ?", id).Error
	})
}

// --- Collections ---

func resolveCollectionModel(db *gorm.DB, projectRef, ref string) (collectionModel, error) {
	var m collectionModel
	q := db

	if isUUID(ref) {
		q = q.Where("id = ?", ref)
		if projectRef != "" {
			projectID, err := resolveProjectID(db, projectRef)
			if err != nil {
				return collectionModel{}, err
			}
			q = q.Where("project_id = ?", projectID)
		}
	} else {
		if projectRef == "" {
			return collectionModel{}, pkgError.ValidationError("project reference is required to resolve a collection slug")
		}
		projectID, err := resolveProjectID(db, projectRef)
		if err != nil {
			return collectionModel{}, err
		}
		q = q.Where("project_id = ? AND slug = ?", projectID, ref)
	}

	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return collectionModel{}, pkgError.NotFoundError("collection not found")
		}
		return collectionModel{}, err
	}
	return m, nil
}

func collectionPromptIDs(db *gorm.DB, collectionID string) ([]string, error) {
	ids := []string{}
	err := db.Model(&collectionPromptModel{}).
		Where("collection_id = ?", collectionID).
		Pluck("prompt_id", &ids).Error
	return ids, err
}

func (r *CatalogGormRepository) CreateCollection(ctx context.Context, projectRef string, c domainCollection.Collection) (domainCollection.Collection, error) {
	db := r.db.WithContext(ctx)
	projectID, err := resolveProjectID(db, projectRef)
	if err != nil {
		return domainCollection.Collection{}, err
	}

	m := collectionModel{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
	if err := db.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainCollection.Collection{}, pkgError.ConflictError("collection slug already exists in project")
		}
		return domainCollection.Collection{}, err
	}
	return fromCollectionModel(m, []string{}), nil
}

func (r *CatalogGormRepository) GetCollection(ctx context.Context, projectRef, ref string) (domainCollection.Collection, error) {
	db := r.db.WithContext(ctx)
	m, err := resolveCollectionModel(db, projectRef, ref)
	if err != nil {
		return domainCollection.Collection{}, err
	}
	ids, err := collectionPromptIDs(db, m.ID)
	if err != nil {
		return domainCollection.Collection{}, err
	}
	return fromCollectionModel(m, ids), nil
}

func (r *CatalogGormRepository) ListCollections(ctx context.Context, projectRef string) ([]domainCollection.Collection, error) {
	db := r.db.WithContext(ctx)

	var models []collectionModel
	q := db.Order("created_at ASC")
	if projectRef != "" {
		projectID, err := resolveProjectID(db, projectRef)
		if err != nil {
			return nil, err
		}
		q = q.Where("project_id = ?", projectID)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]domainCollection.Collection, len(models))
	for i, m := range models {
		ids, err := collectionPromptIDs(db, m.ID)
		if err != nil {
			return nil, err
		}
		result[i] = fromCollectionModel(m, ids)
	}
	return result, nil
}

func (r *CatalogGormRepository) UpdateCollection(ctx context.Context, projectRef, ref string, updates map[string]any) (domainCollection.Collection, error) {
	db := r.db.WithContext(ctx)
	m, err := resolveCollectionModel(db, projectRef, ref)
	if err != nil {
		return domainCollection.Collection{}, err
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := db.Model(&collectionModel{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainCollection.Collection{}, pkgError.ConflictError("collection slug already exists in project")
			}
			return domainCollection.Collection{}, err
		}
		if err := db.First(&m, "id = ?", m.ID).Error; err != nil {
			return domainCollection.Collection{}, err
		}
	}

	ids, err := collectionPromptIDs(db, m.ID)
	if err != nil {
		return domainCollection.Collection{}, err
	}
	return fromCollectionModel(m, ids), nil
}

func (r *CatalogGormRepository) DeleteCollection(ctx context.Context, projectRef, ref string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := resolveCollectionModel(tx, projectRef, ref)
		if err != nil {
			return err
		}
		if err := tx.Delete(&collectionPromptModel{}, "collection_id = ?", m.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&collectionModel{}, "id = ?", m.ID).Error
	})
}

// AddCollectionPrompts links prompts into a collection. Every prompt must
// exist and belong to the collection's project.
func (r *CatalogGormRepository) AddCollectionPrompts(ctx context.Context, projectRef, ref string, promptIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := resolveCollectionModel(tx, projectRef, ref)
		if err != nil {
			return err
		}

		for _, promptID := range promptIDs {
			var p promptModel
			err := tx.Where("id = ? AND project_id = ?", promptID, m.ProjectID).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgError.NotFoundError("prompt not found in collection's project")
			}
			if err != nil {
				return err
			}

			link := collectionPromptModel{CollectionID: m.ID, PromptID: promptID}
			if err := tx.Create(&link).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return pkgError.ConflictError("prompt already in collection")
				}
				return err
			}
		}
		return nil
	})
}

func (r *CatalogGormRepository) RemoveCollectionPrompts(ctx context.Context, projectRef, ref string, promptIDs []string) error {
	db := r.db.WithContext(ctx)
	m, err := resolveCollectionModel(db, projectRef, ref)
	if err != nil {
		return err
	}
	if len(promptIDs) == 0 {
		return nil
	}
	return db.Delete(&collectionPromptModel{}, "collection_id = ? AND prompt_id IN ?", m.ID, promptIDs).Error
}

// --- Categories ---

func resolveCategoryModel(db *gorm.DB, ref string) (categoryModel, error) {
	var m categoryModel
	q := db
	if isUUID(ref) {
		q = q.Where("id = ?", ref)
	} else {
		q = q.Where("slug = ?", ref)
	}
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return categoryModel{}, pkgError.NotFoundError("category not found")
		}
		return categoryModel{}, err
	}
	return m, nil
}

func categoryPromptIDs(db *gorm.DB, categoryID string) ([]string, error) {
	ids := []string{}
	err := db.Model(&categoryPromptModel{}).
		Where("category_id = ?", categoryID).
		Pluck("prompt_id", &ids).Error
	return ids, err
}

func (r *CatalogGormRepository) CreateCategory(ctx context.Context, c domainCategory.Category) (domainCategory.Category, error) {
	m := categoryModel{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainCategory.Category{}, pkgError.ConflictError("category slug already exists")
		}
		return domainCategory.Category{}, err
	}
	return fromCategoryModel(m, []string{}), nil
}

func (r *CatalogGormRepository) GetCategory(ctx context.Context, ref string) (domainCategory.Category, error) {
	db := r.db.WithContext(ctx)
	m, err := resolveCategoryModel(db, ref)
	if err != nil {
		return domainCategory.Category{}, err
	}
	ids, err := categoryPromptIDs(db, m.ID)
	if err != nil {
		return domainCategory.Category{}, err
	}
	return fromCategoryModel(m, ids), nil
}

func (r *CatalogGormRepository) ListCategories(ctx context.Context, skip, limit int) ([]domainCategory.Category, error) {
	db := r.db.WithContext(ctx)

	var models []categoryModel
	q := db.Order("created_at ASC")
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]domainCategory.Category, len(models))
	for i, m := range models {
		ids, err := categoryPromptIDs(db, m.ID)
		if err != nil {
			return nil, err
		}
		result[i] = fromCategoryModel(m, ids)
	}
	return result, nil
}

func (r *CatalogGormRepository) UpdateCategory(ctx context.Context, ref string, updates map[string]any) (domainCategory.Category, error) {
	db := r.db.WithContext(ctx)
	m, err := resolveCategoryModel(db, ref)
	if err != nil {
		return domainCategory.Category{}, err
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := db.Model(&categoryModel{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainCategory.Category{}, pkgError.ConflictError("category slug already exists")
			}
			return domainCategory.Category{}, err
		}
		if err := db.First(&m, "id = ?", m.ID).Error; err != nil {
			return domainCategory.Category{}, err
		}
	}

	ids, err := categoryPromptIDs(db, m.ID)
	if err != nil {
		return domainCategory.Category{}, err
	}
	return fromCategoryModel(m, ids), nil
}

func (r *CatalogGormRepository) DeleteCategory(ctx context.Context, ref string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := resolveCategoryModel(tx, ref)
		if err != nil {
			return err
		}
		if err := tx.Delete(&categoryPromptModel{}, "category_id = ?", m.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&categoryModel{}, "id = ?", m.ID).Error
	})
}

// AddCategoryPrompts links prompts into a category. Categories cut across
// projects, so only prompt existence is checked.
func (r *CatalogGormRepository) AddCategoryPrompts(ctx context.Context, ref string, promptIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := resolveCategoryModel(tx, ref)
		if err != nil {
			return err
		}

		for _, promptID := range promptIDs {
			var p promptModel
			err := tx.Where("id = ?", promptID).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgError.NotFoundError("prompt not found")
			}
			if err != nil {
				return err
			}

			link := categoryPromptModel{CategoryID: m.ID, PromptID: promptID}
			if err := tx.Create(&link).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return pkgError.ConflictError("prompt already in category")
				}
				return err
			}
		}
		return nil
	})
}

func (r *CatalogGormRepository) RemoveCategoryPrompts(ctx context.Context, ref string, promptIDs []string) error {
	db := r.db.WithContext(ctx)
	m, err := resolveCategoryModel(db, ref)
	if err != nil {
		return err
	}
	if len(promptIDs) == 0 {
		return nil
	}
	return db.Delete(&categoryPromptModel{}, "category_id = ? AND prompt_id IN ?", m.ID, promptIDs).Error
}
