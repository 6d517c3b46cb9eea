package usecase

import (
	"context"

	domainCategory "github.com/promptdeck/promptdeck/domains/category"
	"github.com/promptdeck/promptdeck/repository"
	"github.com/promptdeck/promptdeck/validations"
)

type serviceCategory struct {
	repo *repository.CatalogGormRepository
}

func NewCategoryService(repo *repository.CatalogGormRepository) domainCategory.ICategoryUsecase {
	return &serviceCategory{repo: repo}
}

func (service serviceCategory) Create(ctx context.Context, request domainCategory.CreateRequest) (domainCategory.Category, error) {
	if err := validations.ValidateCreateCategory(ctx, request); err != nil {
		return domainCategory.Category{}, err
	}

	return service.repo.CreateCategory(ctx, domainCategory.Category{
		Name:        request.Name,
		Slug:        request.Slug,
		Description: request.Description,
	})
}

func (service serviceCategory) Update(ctx context.Context, ref string, request domainCategory.UpdateRequest) (domainCategory.Category, error) {
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

	return service.repo.UpdateCategory(ctx, ref, updates)
}

func (service serviceCategory) Delete(ctx context.Context, ref string) error {
	return service.repo.DeleteCategory(ctx, ref)
}

func (service serviceCategory) Get(ctx context.Context, ref string) (domainCategory.Category, error) {
	return service.repo.GetCategory(ctx, ref)
}

func (service serviceCategory) List(ctx context.Context, skip, limit int) ([]domainCategory.Category, error) {
	return service.repo.ListCategories(ctx, skip, limit)
}

func (service serviceCategory) AddPrompts(ctx context.Context, ref string, request domainCategory.MembershipRequest) error {
	if err := validations.ValidateCategoryMembership(ctx, request); err != nil {
		return err
	}
	return service.repo.AddCategoryPrompts(ctx, ref, request.PromptIDs)
}

func (service serviceCategory) RemovePrompts(ctx context.Context, ref string, request domainCategory.MembershipRequest) error {
	if err := validations.ValidateCategoryMembership(ctx, request); err != nil {
		return err
	}
	return service.repo.RemoveCategoryPrompts(ctx, ref, request.PromptIDs)
}
