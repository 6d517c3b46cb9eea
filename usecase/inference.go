package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	domainInference "github.com/promptdeck/promptdeck/domains/inference"
	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	"github.com/promptdeck/promptdeck/providers"
	"github.com/promptdeck/promptdeck/validations"
)

type serviceInference struct {
	registry *providers.Registry
	prompts  domainPrompt.IPromptUsecase
	catalog  domainInference.ModelCatalog
}

func NewInferenceService(registry *providers.Registry, prompts domainPrompt.IPromptUsecase, catalog domainInference.ModelCatalog) domainInference.IInferenceUsecase {
	return &serviceInference{
		registry: registry,
		prompts:  prompts,
		catalog:  catalog,
	}
}

// LoadModelCatalog reads the provider model registry from a JSON file. A
// missing or broken file falls back to the compiled-in defaults.
func LoadModelCatalog(path string) domainInference.ModelCatalog {
	defaults := domainInference.ModelCatalog{
		"openai": {
			"gpt-4o":      "gpt-4o",
			"gpt-4o-mini": "gpt-4o-mini",
		},
		"anthropic": {
			"claude-sonnet": "claude-sonnet-4-20250514",
			"claude-haiku":  "claude-3-5-haiku-20241022",
		},
		"gemini": {
			"gemini-flash": "gemini-2.0-flash",
			"gemini-pro":   "gemini-2.5-pro",
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Debugf("[INFERENCE] Model registry %s not readable, using defaults", path)
		return defaults
	}

	var catalog domainInference.ModelCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		logrus.Warnf("[INFERENCE] Model registry %s is not valid JSON, using defaults: %v", path, err)
		return defaults
	}
	return catalog
}

// resolveVersion picks the prompt version to run: an explicit number wins,
// then a named tag, then "latest".
func (service serviceInference) resolveVersion(ctx context.Context, request domainInference.RunRequest) (domainPrompt.Version, error) {
	projectRef := request.ProjectID
	if projectRef == "" {
		projectRef = request.ProjectSlug
	}

	if request.VersionNumber != nil {
		return service.prompts.GetVersion(ctx, projectRef, request.PromptID, *request.VersionNumber)
	}

	tag := request.Tag
	if tag == "" {
		tag = domainPrompt.LatestTagName
	}
	return service.prompts.ResolveTag(ctx, projectRef, request.PromptID, tag)
}

// resolveModel maps a catalog alias to the provider's model id. Unknown
// names pass through untouched so callers can use raw provider ids.
func (service serviceInference) resolveModel(provider, model string) string {
	if aliases, ok := service.catalog[provider]; ok {
		if id, ok := aliases[model]; ok {
			return id
		}
	}
	return model
}

func buildPrompt(content, input string) string {
	return content + "\n\nUser: " + input
}

func (service serviceInference) Run(ctx context.Context, request domainInference.RunRequest) (domainInference.RunResponse, error) {
	if err := validations.ValidateRunInference(ctx, request); err != nil {
		return domainInference.RunResponse{}, err
	}

	provider, err := service.registry.Get(request.Provider)
	if err != nil {
		return domainInference.RunResponse{}, err
	}

	version, err := service.resolveVersion(ctx, request)
	if err != nil {
		return domainInference.RunResponse{}, err
	}

	model := service.resolveModel(request.Provider, request.Model)
	output, err := provider.Generate(ctx, buildPrompt(version.Content, request.Input), model)
	if err != nil {
		logrus.Warnf("[INFERENCE] Provider %s failed, returning fallback: %v", request.Provider, err)
		output = domainInference.FallbackMessage
	}

	return domainInference.RunResponse{
		Output:        output,
		Provider:      request.Provider,
		Model:         model,
		PromptVersion: version.Version,
	}, nil
}

func (service serviceInference) RunStream(ctx context.Context, request domainInference.RunRequest) (domainInference.StreamHandle, error) {
	if err := validations.ValidateRunInference(ctx, request); err != nil {
		return domainInference.StreamHandle{}, err
	}

	provider, err := service.registry.Get(request.Provider)
	if err != nil {
		return domainInference.StreamHandle{}, err
	}

	version, err := service.resolveVersion(ctx, request)
	if err != nil {
		return domainInference.StreamHandle{}, err
	}

	model := service.resolveModel(request.Provider, request.Model)
	chunks, errs := provider.Stream(ctx, buildPrompt(version.Content, request.Input), model)

	// Absorb provider failures into the stream so consumers see the same
	// fallback text as non-streaming callers. Every send honors ctx so an
	// abandoned consumer releases the goroutine and the upstream stream.
	out := make(chan string)
	go func() {
		defer close(out)
		for chunk := range chunks {
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
		select {
		case err := <-errs:
			if err != nil && !errors.Is(err, context.Canceled) {
				logrus.Warnf("[INFERENCE] Provider %s stream failed, emitting fallback: %v", request.Provider, err)
				select {
				case out <- domainInference.FallbackMessage:
				case <-ctx.Done():
				}
			}
		case <-ctx.Done():
		}
	}()

	return domainInference.StreamHandle{
		Chunks:        out,
		Provider:      request.Provider,
		Model:         model,
		PromptVersion: version.Version,
	}, nil
}

// Models lists the catalog entries for providers that are registered.
func (service serviceInference) Models(ctx context.Context) (domainInference.ModelCatalog, error) {
	available := domainInference.ModelCatalog{}
	for _, name := range service.registry.Names() {
		if aliases, ok := service.catalog[name]; ok {
			available[name] = aliases
		} else {
			available[name] = map[string]string{}
		}
	}
	return available, nil
}
