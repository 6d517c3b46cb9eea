package usecase

import (
	"context"

	domainProject "github.com/promptdeck/promptdeck/domains/project"
	"github.com/promptdeck/promptdeck/repository"
	"github.com/promptdeck/promptdeck/validations"
)

type serviceProject struct {
	repo *repository.CatalogGormRepository
}

func NewProjectService(repo *repository.CatalogGormRepository) domainProject.IProjectUsecase {
	return &serviceProject{repo: repo}
}

func (service serviceProject) Create(ctx context.Context, request domainProject.CreateRequest) (domainProject.Project, error) {
	if err := validations.ValidateCreateProject(ctx, request); err != nil {
		return domainProject.Project{}, err
	}

	return service.repo.CreateProject(ctx, domainProject.Project{
		Name:        request.Name,
		Slug:        request.Slug,
		Description: request.Description,
	})
}

func (service serviceProject) Update(ctx context.Context, ref string, request domainProject.UpdateRequest) (domainProject.Project, error) {
	if err := validations.ValidateUpdateProject(ctx, request); err != nil {
		return domainProject.Project{}, err
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

	return service.repo.UpdateProject(ctx, ref, updates)
}

func (service serviceProject) Delete(ctx context.Context, ref string) error {
	return service.repo.DeleteProject(ctx, ref)
}

func (service serviceProject) Get(ctx context.Context, ref string) (domainProject.Project, error) {
	return service.repo.GetProject(ctx, ref)
}

func (service serviceProject) List(ctx context.Context, skip, limit int) ([]domainProject.Project, error) {
	return service.repo.ListProjects(ctx, skip, limit)
}
