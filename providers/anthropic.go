package providers

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const anthropicMaxTokens = 1024

// AnthropicProvider is the adapter for the Anthropic messages API.
type AnthropicProvider struct {
	apiKey string
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{apiKey: apiKey}
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

func (p *AnthropicProvider) request(prompt, model string) anthropic.MessagesRequest {
	return anthropic.MessagesRequest{
		Model: anthropic.Model(model),
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
		MaxTokens: anthropicMaxTokens,
	}
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt, model string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("anthropic provider has no API key")
	}

	client := anthropic.NewClient(p.apiKey)
	resp, err := client.CreateMessages(ctx, p.request(prompt, model))
	if err != nil {
		return "", err
	}
	return resp.GetFirstContentText(), nil
}

func (p *AnthropicProvider) Stream(ctx context.Context, prompt, model string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)

		if p.apiKey == "" {
			close(chunks)
			errs <- fmt.Errorf("anthropic provider has no API key")
			return
		}

		client := anthropic.NewClient(p.apiKey)
		_, err := client.CreateMessagesStream(ctx, anthropic.MessagesStreamRequest{
			MessagesRequest: p.request(prompt, model),
			OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
				if data.Delta.Type == "text_delta" && data.Delta.Text != nil {
					select {
					case chunks <- *data.Delta.Text:
					case <-ctx.Done():
					}
				}
			},
		})
		close(chunks)
		errs <- err
	}()

	return chunks, errs
}
