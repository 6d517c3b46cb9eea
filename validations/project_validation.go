package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainProject "github.com/promptdeck/promptdeck/domains/project"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

func ValidateCreateProject(ctx context.Context, request domainProject.CreateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required),
		validation.Field(&request.Slug, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateUpdateProject(ctx context.Context, request domainProject.UpdateRequest) error {
	if request.Name != nil && *request.Name == "" {
		return pkgError.ValidationError("name: cannot be blank")
	}
	if request.Slug != nil && *request.Slug == "" {
		return pkgError.ValidationError("slug: cannot be blank")
	}
	return nil
}
