package outbound

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"github.com/phamm25/ai-chatbot/internal/chat/entity"
)

type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider builds a provider for apiKey; an empty baseURL keeps the
// public OpenAI endpoint.
func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, buildChatRequest(req))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	text := resp.Choices[0].Message.Content
	slog.DebugContext(ctx, "completion received", "model", req.Model, "chars", len(text))
	if text == "" {
		return fallbackReply, nil
	}
	return text, nil
}

func buildChatRequest(req CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt,
	})

	for _, m := range RecentHistory(req.History) {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    chatRole(m.Role),
			Content: m.Content,
		})
	}

	parts := []openai.ChatMessagePart{{
		Type: openai.ChatMessagePartTypeText,
		Text: BuildPrompt(req.Prompt, req.DatasetContexts),
	}}
	for _, img := range req.Images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	})

	return openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
}

func chatRole(r entity.Role) string {
	switch r {
	case entity.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	case entity.RoleSystem:
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleUser
	}
}
