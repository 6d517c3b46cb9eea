package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider is the adapter for the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey string
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) params(prompt, model string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt, model string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("openai provider has no API key")
	}

	client := openai.NewClient(option.WithAPIKey(p.apiKey))
	completion, err := client.Chat.Completions.New(ctx, p.params(prompt, model))
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return completion.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Stream(ctx context.Context, prompt, model string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)

		if p.apiKey == "" {
			close(chunks)
			errs <- fmt.Errorf("openai provider has no API key")
			return
		}

		client := openai.NewClient(option.WithAPIKey(p.apiKey))
		stream := client.Chat.Completions.NewStreaming(ctx, p.params(prompt, model))
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				select {
				case chunks <- delta:
				case <-ctx.Done():
					close(chunks)
					errs <- ctx.Err()
					return
				}
			}
		}
		close(chunks)
		errs <- stream.Err()
	}()

	return chunks, errs
}
