package outbound

import (
	"context"
	"strings"

	"github.com/phamm25/ai-chatbot/internal/chat/entity"
)

const (
	// HistoryWindow is how many prior messages are sent with each prompt.
	HistoryWindow = 10

	SystemPrompt = `You are a multimodal AI assistant.
You can interpret images and CSV dataset summaries provided in the prompt.
Always cite when you rely on dataset statistics or image observations.
Explain reasoning clearly and keep answers concise but thorough.`

	fallbackReply = "I could not generate a response at this time."
)

type ImageInput struct {
	MimeType string
	Data     []byte
}

type CompletionRequest struct {
	Model           string
	History         []entity.Message
	Prompt          string
	DatasetContexts []string
	Images          []ImageInput
}

type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// RecentHistory returns the last HistoryWindow messages.
func RecentHistory(messages []entity.Message) []entity.Message {
	if len(messages) <= HistoryWindow {
		return messages
	}
	return messages[len(messages)-HistoryWindow:]
}

// BuildPrompt joins the user prompt with the rendered dataset contexts.
func BuildPrompt(prompt string, datasetContexts []string) string {
	parts := make([]string, 0, 2)
	if prompt != "" {
		parts = append(parts, prompt)
	}
	if len(datasetContexts) > 0 {
		parts = append(parts, "Dataset context:\n"+strings.Join(datasetContexts, "\n\n"))
	}
	return strings.Join(parts, "\n\n")
}
