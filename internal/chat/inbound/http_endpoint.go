package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/phamm25/ai-chatbot/internal/chat/usecase"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgerror"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc     uc
	limits Limits
}

func (h *HTTPEndpoint) Models(ctx context.Context, r *http.Request) (any, error) {
	return ModelsResponse{Models: h.uc.Models()}, nil
}

func (h *HTTPEndpoint) CreateSession(ctx context.Context, r *http.Request) (any, error) {
	var req CreateSessionRequest
	if err := decodeOptional(r, &req); err != nil {
		return nil, err
	}

	session, err := h.uc.CreateSession(ctx, req.Model)
	if err != nil {
		return nil, err
	}

	return SessionCreatedResponse{Session: session}, nil
}

func (h *HTTPEndpoint) Session(ctx context.Context, r *http.Request) (any, error) {
	session, err := h.uc.Session(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return SessionResponse{Session: session}, nil
}

func (h *HTTPEndpoint) SendMessage(ctx context.Context, r *http.Request) (any, error) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	res, err := h.uc.SendMessage(ctx, pkgrouter.GetParam(ctx, "id"), usecase.SendInput{
		Content:    req.Content,
		DatasetIDs: req.DatasetIDs,
		ImageIDs:   req.ImageIDs,
		Model:      req.Model,
	})
	if err != nil {
		return nil, err
	}

	return MessageResponse{SendResult: res}, nil
}

func (h *HTTPEndpoint) UploadImage(ctx context.Context, r *http.Request) (any, error) {
	up, sessionID, err := readSessionUpload(r, h.limits.ImageBytes)
	if err != nil {
		return nil, err
	}

	img, err := h.uc.UploadImage(ctx, sessionID, up)
	if err != nil {
		return nil, err
	}

	return ImageResponse{Image: img}, nil
}

func (h *HTTPEndpoint) UploadCSV(ctx context.Context, r *http.Request) (any, error) {
	up, sessionID, err := readSessionUpload(r, h.limits.CSVBytes)
	if err != nil {
		return nil, err
	}

	summary, err := h.uc.UploadCSV(ctx, sessionID, up)
	if err != nil {
		return nil, err
	}

	return DatasetResponse{Dataset: summary}, nil
}

func (h *HTTPEndpoint) UploadCSVFromURL(ctx context.Context, r *http.Request) (any, error) {
	var req CSVURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("sessionId is required"))
	}

	summary, err := h.uc.UploadCSVFromURL(ctx, req.SessionID, strings.TrimSpace(req.URL))
	if err != nil {
		return nil, err
	}

	return DatasetResponse{Dataset: summary}, nil
}

func readSessionUpload(r *http.Request, limit int64) (usecase.Upload, string, error) {
	up, err := pkgrouter.ReadUpload(r, "file", limit)
	if err != nil {
		return usecase.Upload{}, "", err
	}

	sessionID := up.Fields["sessionId"]
	if sessionID == "" {
		return usecase.Upload{}, "", pkgerror.NewInvalidInput(errors.New("sessionId is required"))
	}

	return usecase.Upload{FileName: up.FileName, ContentType: up.ContentType, Data: up.Data}, sessionID, nil
}

// decodeOptional accepts an empty body as the zero value.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return pkgerror.NewInvalidFormat()
	}
	return nil
}
