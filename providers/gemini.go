package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider is the adapter for the Google Gemini API.
type GeminiProvider struct {
	apiKey string
}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey}
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) newClient(ctx context.Context) (*genai.Client, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("gemini provider has no API key")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func contents(prompt string) []*genai.Content {
	return []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: prompt}}},
	}
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt, model string) (string, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, model, contents(prompt), nil)
	if err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}
	return result.Text(), nil
}

func (p *GeminiProvider) Stream(ctx context.Context, prompt, model string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)

		client, err := p.newClient(ctx)
		if err != nil {
			close(chunks)
			errs <- err
			return
		}

		var streamErr error
		for result, err := range client.Models.GenerateContentStream(ctx, model, contents(prompt), nil) {
			if err != nil {
				streamErr = err
				break
			}
			if text := result.Text(); text != "" {
				select {
				case chunks <- text:
				case <-ctx.Done():
					close(chunks)
					errs <- ctx.Err()
					return
				}
			}
		}
		close(chunks)
		errs <- streamErr
	}()

	return chunks, errs
}
