package translate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIRequestTimeout = 30 * time.Second

// OpenAIProvider translates through a chat-completion endpoint.
type OpenAIProvider struct {
	client openaigo.Client
	model  string
}

func NewOpenAIProvider(baseURL, apiKey, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai translator requires an api key")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
		option.WithRequestTimeout(openAIRequestTimeout),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	return &OpenAIProvider{
		client: openaigo.NewClient(opts...),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	system := fmt.Sprintf(
		"You are a translation engine. Translate the user's text from %s to %s. Reply with the translation only, no explanations.",
		sourceLang, targetLang,
	)

	completion, err := p.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(p.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(system),
			openaigo.UserMessage(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	out := strings.TrimSpace(completion.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("chat completion returned empty translation")
	}
	return out, nil
}
