package inbound

import (
	"context"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
)

type uc interface {
	Profile(ctx context.Context, name string, data []byte) (entity.DatasetSummary, error)
	ProfileFromURL(ctx context.Context, url string) (entity.DatasetSummary, error)
	Dataset(ctx context.Context, id string) (entity.DatasetSummary, error)
	RenderContext(summary entity.DatasetSummary) string
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, maxBytes int64) {
	end := &HTTPEndpoint{uc: uc, maxBytes: maxBytes}

	r.POST("/datasets", end.Upload, pkgrouter.MaxBody(maxBytes+pkgrouter.UploadOverhead)) // ?name=
	r.POST("/datasets/url", end.UploadFromURL)

	r.GET("/datasets/:id", end.Dataset)
	r.GET("/datasets/:id/context", end.Context)
}
