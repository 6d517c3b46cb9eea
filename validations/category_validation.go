package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainCategory "github.com/promptdeck/promptdeck/domains/category"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

func ValidateCreateCategory(ctx context.Context, request domainCategory.CreateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required),
		validation.Field(&request.Slug, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateCategoryMembership(ctx context.Context, request domainCategory.MembershipRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PromptIDs, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
