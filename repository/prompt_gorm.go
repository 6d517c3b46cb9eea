package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

// PromptGormRepository persists prompts, their version history and tags.
type PromptGormRepository struct {
	db *gorm.DB
}

func NewPromptGormRepository(db *gorm.DB) *PromptGormRepository {
	return &PromptGormRepository{db: db}
}

// isUUID reports whether ref parses as a canonical UUID. Non-UUID refs are
// treated as slugs everywhere a reference is accepted.
func isUUID(ref string) bool {
	_, err := uuid.Parse(ref)
	return err == nil
}

func resolveProjectID(db *gorm.DB, ref string) (string, error) {
	var m projectModel
	q := db
	if isUUID(ref) {
		q = q.Where("id = ?", ref)
	} else {
		q = q.Where("slug = ?", ref)
	}
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgError.NotFoundError("project not found")
		}
		return "", err
	}
	return m.ID, nil
}

// resolvePromptModel finds a prompt by UUID or by slug. Slugs are only
// unique per project, so slug lookups require a project reference.
func resolvePromptModel(db *gorm.DB, projectRef, promptRef string) (promptModel, error) {
	var m promptModel
	q := db

	if isUUID(promptRef) {
		q = q.Where("id = ?", promptRef)
		if projectRef != "" {
			projectID, err := resolveProjectID(db, projectRef)
			if err != nil {
				return promptModel{}, err
			}
			q = q.Where("project_id = ?", projectID)
		}
	} else {
		if projectRef == "" {
			return promptModel{}, pkgError.ValidationError("project reference is required to resolve a prompt slug")
		}
		projectID, err := resolveProjectID(db, projectRef)
		if err != nil {
			return promptModel{}, err
		}
		q = q.Where("project_id = ? AND slug = ?", projectID, promptRef)
	}

	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return promptModel{}, pkgError.NotFoundError("prompt not found")
		}
		return promptModel{}, err
	}
	return m, nil
}

func versionNumbers(db *gorm.DB, promptID string) ([]int, error) {
	numbers := []int{}
	err := db.Model(&versionModel{}).
		Where("prompt_id = ?", promptID).
		Order("version_number ASC").
		Pluck("version_number", &numbers).Error
	return numbers, err
}

func fromPromptModel(m promptModel, versions []int) domainPrompt.Prompt {
	return domainPrompt.Prompt{
		ID:             m.ID,
		ProjectID:      m.ProjectID,
		Name:           m.Name,
		Slug:           m.Slug,
		Description:    m.Description,
		TemplateFormat: domainPrompt.TemplateFormat(m.TemplateFormat),
		Versions:       versions,
		CreatedAt:      m.CreatedAt,
	}
}

func fromVersionModel(m versionModel) domainPrompt.Version {
	return domainPrompt.Version{
		ID:        m.ID,
		PromptID:  m.PromptID,
		Version:   m.VersionNumber,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// CreatePrompt creates the prompt together with version 1 and the "latest"
// tag in one transaction.
func (r *PromptGormRepository) CreatePrompt(ctx context.Context, projectRef string, p domainPrompt.Prompt, content string) (domainPrompt.Prompt, error) {
	var created promptModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectID, err := resolveProjectID(tx, projectRef)
		if err != nil {
			return err
		}

		created = promptModel{
			ID:             uuid.New().String(),
			ProjectID:      projectID,
			Name:           p.Name,
			Slug:           p.Slug,
			Description:    p.Description,
			TemplateFormat: string(p.TemplateFormat),
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgError.ConflictError("prompt slug already exists in project")
			}
			return err
		}

		version := versionModel{
			ID:            uuid.New().String(),
			PromptID:      created.ID,
			VersionNumber: 1,
			Content:       content,
		}
		if err := tx.Create(&version).Error; err != nil {
			return err
		}

		tag := tagModel{
			ID:        uuid.New().String(),
			PromptID:  created.ID,
			Name:      domainPrompt.LatestTagName,
			VersionID: version.ID,
		}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return domainPrompt.Prompt{}, err
	}
	return fromPromptModel(created, []int{1}), nil
}

func (r *PromptGormRepository) GetPrompt(ctx context.Context, projectRef, promptRef string) (domainPrompt.Prompt, error) {
	db := r.db.WithContext(ctx)
	m, err := resolvePromptModel(db, projectRef, promptRef)
	if err != nil {
		return domainPrompt.Prompt{}, err
	}
	numbers, err := versionNumbers(db, m.ID)
	if err != nil {
		return domainPrompt.Prompt{}, err
	}
	return fromPromptModel(m, numbers), nil
}

func (r *PromptGormRepository) ListPrompts(ctx context.Context, projectRef string) ([]domainPrompt.Prompt, error) {
	db := r.db.WithContext(ctx)

	var models []promptModel
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

	result := make([]domainPrompt.Prompt, len(models))
	for i, m := range models {
		numbers, err := versionNumbers(db, m.ID)
		if err != nil {
			return nil, err
		}
		result[i] = fromPromptModel(m, numbers)
	}
	return result, nil
}

// UpdatePromptMeta applies the given column updates and returns the
// refreshed prompt. Content changes go through AppendVersion instead.
func (r *PromptGormRepository) UpdatePromptMeta(ctx context.Context, projectRef, promptRef string, updates map[string]any) (domainPrompt.Prompt, error) {
	db := r.db.WithContext(ctx)
	m, err := resolvePromptModel(db, projectRef, promptRef)
	if err != nil {
		return domainPrompt.Prompt{}, err
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := db.Model(&promptModel{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainPrompt.Prompt{}, pkgError.ConflictError("prompt slug already exists in project")
			}
			return domainPrompt.Prompt{}, err
		}
		if err := db.First(&m, "id = ?", m.ID).Error; err != nil {
			return domainPrompt.Prompt{}, err
		}
	}

	numbers, err := versionNumbers(db, m.ID)
	if err != nil {
		return domainPrompt.Prompt{}, err
	}
	return fromPromptModel(m, numbers), nil
}

// DeletePrompt removes the prompt with its versions, tags and any
// collection or category memberships.
func (r *PromptGormRepository) DeletePrompt(ctx context.Context, projectRef, promptRef string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := resolvePromptModel(tx, projectRef, promptRef)
		if err != nil {
			return err
		}
		if err := tx.Delete(&tagModel{}, "prompt_id = ?", m.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&versionModel{}, "prompt_id = ?", m.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&collectionPromptModel{}, "prompt_id = ?", m.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&categoryPromptModel{}, "prompt_id = ?", m.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&promptModel{}, "id = ?", m.ID).Error
	})
}

// AppendVersion adds the next numbered version and repoints "latest" to it.
func (r *PromptGormRepository) AppendVersion(ctx context.Context, projectRef, promptRef, content string) (domainPrompt.Version, error) {
	var created versionModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := resolvePromptModel(tx, projectRef, promptRef)
		if err != nil {
			return err
		}

		var maxNumber int
		if err := tx.Model(&versionModel{}).
			Where("prompt_id = ?", m.ID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		created = versionModel{
			ID:            uuid.New().String(),
			PromptID:      m.ID,
			VersionNumber: maxNumber + 1,
			Content:       content,
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgError.ConflictError("version number already assigned")
			}
			return err
		}

		return upsertLatest(tx, m.ID, created.ID)
	})
	if err != nil {
		return domainPrompt.Version{}, err
	}
	return fromVersionModel(created), nil
}

func upsertLatest(tx *gorm.DB, promptID, versionID string) error {
	var tag tagModel
	err := tx.Where("prompt_id = ? AND name = ?", promptID, domainPrompt.LatestTagName).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = tagModel{
			ID:        uuid.New().String(),
			PromptID:  promptID,
			Name:      domainPrompt.LatestTagName,
			VersionID: versionID,
		}
		return tx.Create(&tag).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&tagModel{}).Where("id = ?", tag.ID).Update("version_id", versionID).Error
}

func (r *PromptGormRepository) ListVersions(ctx context.Context, projectRef, promptRef string, skip, limit int) ([]domainPrompt.Version, error) {
	db := r.db.WithContext(ctx)
	m, err := resolvePromptModel(db, projectRef, promptRef)
	if err != nil {
		return nil, err
	}

	var models []versionModel
	q := db.Where("prompt_id = ?", m.ID).Order("version_number ASC")
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]domainPrompt.Version, len(models))
	for i, vm := range models {
		result[i] = fromVersionModel(vm)
	}
	return result, nil
}

func (r *PromptGormRepository) GetVersion(ctx context.Context, projectRef, promptRef string, number int) (domainPrompt.Version, error) {
	db := r.db.WithContext(ctx)
	m, err := resolvePromptModel(db, projectRef, promptRef)
	if err != nil {
		return domainPrompt.Version{}, err
	}

	var vm versionModel
	err = db.Where("prompt_id = ? AND version_number = ?", m.ID, number).First(&vm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainPrompt.Version{}, pkgError.NotFoundError("version not found")
	}
	if err != nil {
		return domainPrompt.Version{}, err
	}
	return fromVersionModel(vm), nil
}

// DeleteVersion removes one numbered version and any tags pointing at it,
// "latest" included. History numbering is left untouched.
func (r *PromptGormRepository) DeleteVersion(ctx context.Context, projectRef, promptRef string, number int) (domainPrompt.Version, error) {
	var deleted versionModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := resolvePromptModel(tx, projectRef, promptRef)
		if err != nil {
			return err
		}

		err = tx.Where("prompt_id = ? AND version_number = ?", m.ID, number).First(&deleted).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgError.NotFoundError("version not found")
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&tagModel{}, "version_id = ?", deleted.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&versionModel{}, "id = ?", deleted.ID).Error
	})
	if err != nil {
		return domainPrompt.Version{}, err
	}
	return fromVersionModel(deleted), nil
}

func (r *PromptGormRepository) TagsForVersion(ctx context.Context, projectRef, promptRef string, number int) ([]domainPrompt.Tag, error) {
	db := r.db.WithContext(ctx)
	vm, err := r.getVersionModel(db, projectRef, promptRef, number)
	if err != nil {
		return nil, err
	}

	var models []tagModel
	if err := db.Where("version_id = ?", vm.ID).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]domainPrompt.Tag, len(models))
	for i, tm := range models {
		result[i] = domainPrompt.Tag{ID: tm.ID, Name: tm.Name, VersionID: tm.VersionID, Version: vm.VersionNumber}
	}
	return result, nil
}

// ReplaceTag points name at the given version, dropping any previous tag
// with the same name on this prompt first.
func (r *PromptGormRepository) ReplaceTag(ctx context.Context, projectRef, promptRef string, number int, name string) (domainPrompt.Tag, error) {
	var created tagModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vm, err := r.getVersionModel(tx, projectRef, promptRef, number)
		if err != nil {
			return err
		}

		if err := tx.Delete(&tagModel{}, "prompt_id = ? AND name = ?", vm.PromptID, name).Error; err != nil {
			return err
		}

		created = tagModel{
			ID:        uuid.New().String(),
			PromptID:  vm.PromptID,
			Name:      name,
			VersionID: vm.ID,
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgError.ConflictError("tag already exists for this prompt")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domainPrompt.Tag{}, err
	}
	return domainPrompt.Tag{ID: created.ID, Name: created.Name, VersionID: created.VersionID, Version: number}, nil
}

// DeleteTagScoped removes a tag only when it points at the given version
// number. tagRef may be the tag id or its name.
func (r *PromptGormRepository) DeleteTagScoped(ctx context.Context, projectRef, promptRef string, number int, tagRef string) error {
	db := r.db.WithContext(ctx)
	vm, err := r.getVersionModel(db, projectRef, promptRef, number)
	if err != nil {
		return err
	}

	q := db.Where("version_id = ?", vm.ID)
	if isUUID(tagRef) {
		q = q.Where("id = ?", tagRef)
	} else {
		q = q.Where("name = ?", tagRef)
	}
	result := q.Delete(&tagModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgError.NotFoundError("tag not found on this version")
	}
	return nil
}

// ResolveTag returns the version a tag currently points at. tagRef may be
// the tag id or its name; when more than one row carries the name the
// highest version wins.
func (r *PromptGormRepository) ResolveTag(ctx context.Context, projectRef, promptRef, tagRef string) (domainPrompt.Version, error) {
	db := r.db.WithContext(ctx)
	m, err := resolvePromptModel(db, projectRef, promptRef)
	if err != nil {
		return domainPrompt.Version{}, err
	}

	q := db.Model(&versionModel{}).
		Joins("JOIN prompt_tags ON prompt_tags.version_id = prompt_versions.id").
		Where("prompt_tags.prompt_id = ?", m.ID)
	if isUUID(tagRef) {
		q = q.Where("prompt_tags.id = ?", tagRef)
	} else {
		q = q.Where("prompt_tags.name = ?", tagRef)
	}

	var vm versionModel
	err = q.Order("prompt_versions.version_number DESC").First(&vm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainPrompt.Version{}, pkgError.NotFoundError("tag not found")
	}
	if err != nil {
		return domainPrompt.Version{}, err
	}
	return fromVersionModel(vm), nil
}

func (r *PromptGormRepository) getVersionModel(db *gorm.DB, projectRef, promptRef string, number int) (versionModel, error) {
	m, err := resolvePromptModel(db, projectRef, promptRef)
	if err != nil {
		return versionModel{}, err
	}

	var vm versionModel
	err = db.Where("prompt_id = ? AND version_number = ?", m.ID, number).First(&vm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return versionModel{}, pkgError.NotFoundError("version not found")
	}
	if err != nil {
		return versionModel{}, err
	}
	return vm, nil
}
