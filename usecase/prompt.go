package usecase

import (
	"context"

	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	"github.com/promptdeck/promptdeck/repository"
	"github.com/promptdeck/promptdeck/validations"
)

type servicePrompt struct {
	repo *repository.PromptGormRepository
}

func NewPromptService(repo *repository.PromptGormRepository) domainPrompt.IPromptUsecase {
	return &servicePrompt{repo: repo}
}

func (service servicePrompt) Create(ctx context.Context, request domainPrompt.CreateRequest) (domainPrompt.Prompt, error) {
	if err := validations.ValidateCreatePrompt(ctx, request); err != nil {
		return domainPrompt.Prompt{}, err
	}

	format := request.TemplateFormat
	if format == "" {
		format = domainPrompt.FormatPlain
	}

	projectRef := request.ProjectID
	if projectRef == "" {
		projectRef = request.ProjectSlug
	}

	return service.repo.CreatePrompt(ctx, projectRef, domainPrompt.Prompt{
		Name:           request.Name,
		Slug:           request.Slug,
		Description:    request.Description,
		TemplateFormat: format,
	}, request.Content)
}

// Update applies metadata changes and, when content is present, appends a
// new version on top of the history.
func (service servicePrompt) Update(ctx context.Context, projectRef, promptRef string, request domainPrompt.UpdateRequest) (domainPrompt.Prompt, error) {
	if err := validations.ValidateUpdatePrompt(ctx, request); err != nil {
		return domainPrompt.Prompt{}, err
	}

	updates := map[string]any{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Slug != nil {
		updates["slug"] = *request.Slug
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.TemplateFormat != nil {
		updates["template_format"] = string(*request.TemplateFormat)
	}

	updated, err := service.repo.UpdatePromptMeta(ctx, projectRef, promptRef, updates)
	if err != nil {
		return domainPrompt.Prompt{}, err
	}

	if request.Content != nil && *request.Content != "" {
		if _, err := service.repo.AppendVersion(ctx, projectRef, updated.ID, *request.Content); err != nil {
			return domainPrompt.Prompt{}, err
		}
		return service.repo.GetPrompt(ctx, projectRef, updated.ID)
	}

	return updated, nil
}

func (service servicePrompt) Delete(ctx context.Context, projectRef, promptRef string) error {
	return service.repo.DeletePrompt(ctx, projectRef, promptRef)
}

func (service servicePrompt) Get(ctx context.Context, projectRef, promptRef string) (domainPrompt.Prompt, error) {
	return service.repo.GetPrompt(ctx, projectRef, promptRef)
}

func (service servicePrompt) List(ctx context.Context, projectRef string) ([]domainPrompt.Prompt, error) {
	return service.repo.ListPrompts(ctx, projectRef)
}

func (service servicePrompt) CreateVersion(ctx context.Context, projectRef, promptRef string, request domainPrompt.CreateVersionRequest) (domainPrompt.Version, error) {
	if err := validations.ValidateCreateVersion(ctx, request); err != nil {
		return domainPrompt.Version{}, err
	}
	return service.repo.AppendVersion(ctx, projectRef, promptRef, request.Content)
}

func (service servicePrompt) ListVersions(ctx context.Context, projectRef, promptRef string, skip, limit int) ([]domainPrompt.Version, error) {
	return service.repo.ListVersions(ctx, projectRef, promptRef, skip, limit)
}

func (service servicePrompt) GetVersion(ctx context.Context, projectRef, promptRef string, number int) (domainPrompt.Version, error) {
	return service.repo.GetVersion(ctx, projectRef, promptRef, number)
}

func (service servicePrompt) DeleteVersion(ctx context.Context, projectRef, promptRef string, number int) (domainPrompt.Version, error) {
	return service.repo.DeleteVersion(ctx, projectRef, promptRef, number)
}

func (service servicePrompt) ListTags(ctx context.Context, projectRef, promptRef string, number int) ([]domainPrompt.Tag, error) {
	return service.repo.TagsForVersion(ctx, projectRef, promptRef, number)
}

// CreateTag points a tag at the given version. An existing tag with the
// same name on this prompt is replaced, so tagging is an idempotent move.
func (service servicePrompt) CreateTag(ctx context.Context, projectRef, promptRef string, number int, request domainPrompt.CreateTagRequest) (domainPrompt.Tag, error) {
	if err := validations.ValidateCreateTag(ctx, request); err != nil {
		return domainPrompt.Tag{}, err
	}
	return service.repo.ReplaceTag(ctx, projectRef, promptRef, number, request.Name)
}

func (service servicePrompt) DeleteTag(ctx context.Context, projectRef, promptRef string, number int, tagRef string) error {
	return service.repo.DeleteTagScoped(ctx, projectRef, promptRef, number, tagRef)
}

func (service servicePrompt) ResolveTag(ctx context.Context, projectRef, promptRef, tagRef string) (domainPrompt.Version, error) {
	return service.repo.ResolveTag(ctx, projectRef, promptRef, tagRef)
}
