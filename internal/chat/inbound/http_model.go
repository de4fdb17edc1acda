package inbound

import (
	"net/http"

	"github.com/phamm25/ai-chatbot/internal/chat/entity"
	"github.com/phamm25/ai-chatbot/internal/chat/usecase"
	dsentity "github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

type CreateSessionRequest struct {
	Model string `json:"model"`
}

type SendMessageRequest struct {
	Content    string   `json:"content"`
	DatasetIDs []string `json:"datasetIds"`
	ImageIDs   []string `json:"imageIds"`
	Model      string   `json:"model"`
}

type CSVURLRequest struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

type ModelsResponse struct {
	Models []entity.Model `json:"models"`
}

type SessionResponse struct {
	Session entity.Session `json:"session"`
}

type SessionCreatedResponse struct {
	Session entity.Session `json:"session"`
}

func (SessionCreatedResponse) StatusCode() int {
	return http.StatusCreated
}

func (SessionCreatedResponse) Message() string {
	return "session created"
}

type MessageResponse struct {
	usecase.SendResult
}

func (MessageResponse) StatusCode() int {
	return http.StatusCreated
}

type ImageResponse struct {
	Image entity.Image `json:"image"`
}

func (ImageResponse) StatusCode() int {
	return http.StatusCreated
}

func (ImageResponse) Message() string {
	return "image uploaded"
}

type DatasetResponse struct {
	Dataset dsentity.DatasetSummary `json:"dataset"`
}

func (DatasetResponse) StatusCode() int {
	return http.StatusCreated
}

func (DatasetResponse) Message() string {
	return "dataset profiled"
}
