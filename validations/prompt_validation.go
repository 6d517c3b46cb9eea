package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

var templateFormats = []any{
	string(domainPrompt.FormatPlain),
	string(domainPrompt.FormatEngine),
}

func ValidateCreatePrompt(ctx context.Context, request domainPrompt.CreateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required),
		validation.Field(&request.Slug, validation.Required),
		validation.Field(&request.Content, validation.Required),
		validation.Field(&request.TemplateFormat, validation.In(domainPrompt.FormatPlain, domainPrompt.FormatEngine)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if request.ProjectID == "" && request.ProjectSlug == "" {
		return pkgError.ValidationError("project_id or project_slug is required")
	}

	return nil
}

func ValidateUpdatePrompt(ctx context.Context, request domainPrompt.UpdateRequest) error {
	if request.TemplateFormat != nil {
		err := validation.Validate(string(*request.TemplateFormat), validation.In(templateFormats...))
		if err != nil {
			return pkgError.ValidationError("template_format: " + err.Error())
		}
	}
	if request.Slug != nil && *request.Slug == "" {
		return pkgError.ValidationError("slug: cannot be blank")
	}
	if request.Name != nil && *request.Name == "" {
		return pkgError.ValidationError("name: cannot be blank")
	}
	return nil
}

func ValidateCreateVersion(ctx context.Context, request domainPrompt.CreateVersionRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Content, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateCreateTag(ctx context.Context, request domainPrompt.CreateTagRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
