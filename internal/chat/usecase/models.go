package usecase

import (
	"github.com/phamm25/ai-chatbot/internal/chat/entity"
)

type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type SendInput struct {
	Content    string
	DatasetIDs []string
	ImageIDs   []string
	Model      string
}

type SendResult struct {
	UserMessage      entity.Message `json:"userMessage"`
	AssistantMessage entity.Message `json:"assistantMessage"`
}
