package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainInference "github.com/promptdeck/promptdeck/domains/inference"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

func ValidateRunInference(ctx context.Context, request domainInference.RunRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PromptID, validation.Required),
		validation.Field(&request.Provider, validation.Required),
		validation.Field(&request.Model, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.VersionNumber != nil && *request.VersionNumber < 1 {
		return pkgError.ValidationError("version_number: must be at least 1")
	}

	return nil
}
