package inference

import (
	"context"
)

// FallbackMessage is returned as the completion when a provider call fails.
const FallbackMessage = "An error occurred while generating the response."

// Provider is one upstream LLM backend. Generate blocks until the whole
// completion is available; Stream emits chunks on the returned channel and
// closes it when the completion ends. Exactly one terminal value is sent on
// the error channel after the chunk channel closes, nil on success.
// Cancelling ctx ends the stream; chunk sends must never block past
// cancellation.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt, model string) (string, error)
	Stream(ctx context.Context, prompt, model string) (<-chan string, <-chan error)
}

type RunRequest struct {
	PromptID      string `json:"prompt_id" form:"prompt_id"`
	ProjectID     string `json:"project_id" form:"project_id"`
	ProjectSlug   string `json:"project_slug" form:"project_slug"`
	VersionNumber *int   `json:"version_number" form:"version_number"`
	Tag           string `json:"tag" form:"tag"`
	Input         string `json:"input" form:"input"`
	Provider      string `json:"provider" form:"provider"`
	Model         string `json:"model" form:"model"`
	Stream        bool   `json:"stream" form:"stream"`
}

type RunResponse struct {
	Output        string `json:"output"`
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	PromptVersion int    `json:"prompt_version"`
}

// ModelCatalog maps provider name to model alias to the provider's model id.
type ModelCatalog map[string]map[string]string

// StreamHandle carries a live completion stream plus the version metadata
// resolved before the stream started. Provider failures are absorbed into
// the stream as a fallback chunk, so consumers only drain Chunks.
type StreamHandle struct {
	Chunks        <-chan string
	Provider      string
	Model         string
	PromptVersion int
}

type IInferenceUsecase interface {
	Run(ctx context.Context, request RunRequest) (RunResponse, error)
	RunStream(ctx context.Context, request RunRequest) (StreamHandle, error)
	Models(ctx context.Context) (ModelCatalog, error)
}
