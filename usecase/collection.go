package usecase

import (
	"context"

	domainCollection "github.com/promptdeck/promptdeck/domains/collection"
	"github.com/promptdeck/promptdeck/repository"
	"github.com/promptdeck/promptdeck/validations"
)

type serviceCollection struct {
	repo *repository.CatalogGormRepository
}

func NewCollectionService(repo *repository.CatalogGormRepository) domainCollection.ICollectionUsecase {
	return &serviceCollection{repo: repo}
}

func (service serviceCollection) projectRef(request domainCollection.CreateRequest) string {
	if request.ProjectID != "" {
		return request.ProjectID
	}
	return request.ProjectSlug
}

func (service serviceCollection) Create(ctx context.Context, request domainCollection.CreateRequest) (domainCollection.Collection, error) {
	if err := validations.ValidateCreateCollection(ctx, request); err != nil {
		return domainCollection.Collection{}, err
	}

	return service.repo.CreateCollection(ctx, service.projectRef(request), domainCollection.Collection{
		Name:        request.Name,
		Slug:        request.Slug,
		Description: request.Description,
	})
}

func (service serviceCollection) Update(ctx context.Context, projectRef, ref string, request domainCollection.UpdateRequest) (domainCollection.Collection, error) {
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

	return service.repo.UpdateCollection(ctx, projectRef, ref, updates)
}

func (service serviceCollection) Delete(ctx context.Context, projectRef, ref string) error {
	return service.repo.DeleteCollection(ctx, projectRef, ref)
}

func (service serviceCollection) Get(ctx context.Context, projectRef, ref string) (domainCollection.Collection, error) {
	return service.repo.GetCollection(ctx, projectRef, ref)
}

func (service serviceCollection) List(ctx context.Context, projectRef string) ([]domainCollection.Collection, error) {
	return service.repo.ListCollections(ctx, projectRef)
}

func (service serviceCollection) AddPrompts(ctx context.Context, projectRef, ref string, request domainCollection.MembershipRequest) error {
	if err := validations.ValidateCollectionMembership(ctx, request); err != nil {
		return err
	}
	return service.repo.AddCollectionPrompts(ctx, projectRef, ref, request.PromptIDs)
}

func (service serviceCollection) RemovePrompts(ctx context.Context, projectRef, ref string, request domainCollection.MembershipRequest) error {
	if err := validations.ValidateCollectionMembership(ctx, request); err != nil {
		return err
	}
	return service.repo.RemoveCollectionPrompts(ctx, projectRef, ref, request.PromptIDs)
}
