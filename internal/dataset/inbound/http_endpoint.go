package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/phamm25/ai-chatbot/internal/pkg/pkgerror"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc       uc
	maxBytes int64
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	up, err := pkgrouter.ReadUpload(r, "file", h.maxBytes)
	if err != nil {
		return nil, err
	}

	name := up.FileName
	if q := pkgrouter.QueryParam(r, "name"); q != "" {
		name = q
	}
	if name == "" {
		name = "dataset.csv"
	}

	summary, err := h.uc.Profile(ctx, name, up.Data)
	if err != nil {
		return nil, err
	}

	return DatasetResponse{summary}, nil
}

func (h *HTTPEndpoint) UploadFromURL(ctx context.Context, r *http.Request) (any, error) {
	var req URLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("url is required"))
	}

	summary, err := h.uc.ProfileFromURL(ctx, url)
	if err != nil {
		return nil, err
	}

	return DatasetResponse{summary}, nil
}

func (h *HTTPEndpoint) Dataset(ctx context.Context, r *http.Request) (any, error) {
	summary, err := h.uc.Dataset(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (h *HTTPEndpoint) Context(ctx context.Context, r *http.Request) (any, error) {
	summary, err := h.uc.Dataset(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return ContextResponse{DatasetID: summary.ID, Context: h.uc.RenderContext(summary)}, nil
}
