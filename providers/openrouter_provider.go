package providers

import (
	"context"
	"io"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
	"tripplanner.app/config"
	"tripplanner.app/errors"
)

// OpenRouterProvider generates text via OpenRouter's OpenAI-compatible
// chat-completion API
type OpenRouterProvider struct {
	client *openai.Client
	model  string
}

// NewOpenRouterProvider creates a chat-completion provider backed by OpenRouter
func NewOpenRouterProvider(cfg *config.AIConfig) *OpenRouterProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &OpenRouterProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

// ChatCompletion sends a message list and returns the complete response text
func (p *OpenRouterProvider) ChatCompletion(ctx context.Context, messages []ChatMessage, params ChatParams) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(messages, params))
	if err != nil {
		return "", errors.NewExternalAPIError("chat completion request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.NewExternalAPIError("chat completion returned no choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatCompletionStream sends a message list and emits incremental text fragments
func (p *OpenRouterProvider) ChatCompletionStream(ctx context.Context, messages []ChatMessage, params ChatParams) (<-chan string, <-chan error) {
	deltas := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(deltas)
		defer close(errs)

		stream, err := p.client.CreateChatCompletionStream(ctx, p.buildRequest(messages, params))
		if err != nil {
			errs <- errors.NewExternalAPIError("chat completion stream failed", err)
			return
		}
		defer func() {
			if closeErr := stream.Close(); closeErr != nil {
				slog.Warn("close completion stream", "error", closeErr)
			}
		}()

		for {
			chunk, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				errs <- errors.NewExternalAPIError("chat completion stream interrupted", err)
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				select {
				case deltas <- delta:
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}
		}
	}()

	return deltas, errs
}

func (p *OpenRouterProvider) buildRequest(messages []ChatMessage, params ChatParams) openai.ChatCompletionRequest {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    converted,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}
}
