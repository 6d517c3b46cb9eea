package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainCollection "github.com/promptdeck/promptdeck/domains/collection"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

func ValidateCreateCollection(ctx context.Context, request domainCollection.CreateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required),
		validation.Field(&request.Slug, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.ProjectID == "" && request.ProjectSlug == "" {
		return pkgError.ValidationError("project_id or project_slug is required")
	}

	return nil
}

func ValidateCollectionMembership(ctx context.Context, request domainCollection.MembershipRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PromptIDs, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
