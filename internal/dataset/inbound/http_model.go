package inbound

import (
	"net/http"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

type URLRequest struct {
	URL string `json:"url"`
}

type DatasetResponse struct {
	entity.DatasetSummary
}

func (DatasetResponse) StatusCode() int {
	return http.StatusCreated
}

func (DatasetResponse) Message() string {
	return "dataset profiled"
}

type ContextResponse struct {
	DatasetID string `json:"datasetId"`
	Context   string `json:"context"`
}
