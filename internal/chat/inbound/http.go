package inbound

import (
	"context"

	"github.com/phamm25/ai-chatbot/internal/chat/entity"
	"github.com/phamm25/ai-chatbot/internal/chat/usecase"
	dsentity "github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
)

type uc interface {
	Models() []entity.Model
	CreateSession(ctx context.Context, model string) (entity.Session, error)
	Session(ctx context.Context, id string) (entity.Session, error)
	SendMessage(ctx context.Context, sessionID string, in usecase.SendInput) (usecase.SendResult, error)
	UploadImage(ctx context.Context, sessionID string, up usecase.Upload) (entity.Image, error)
	UploadCSV(ctx context.Context, sessionID string, up usecase.Upload) (dsentity.DatasetSummary, error)
	UploadCSVFromURL(ctx context.Context, sessionID, url string) (dsentity.DatasetSummary, error)
}

type Limits struct {
	ImageBytes int64
	CSVBytes   int64
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, limits Limits) {
	end := &HTTPEndpoint{uc: uc, limits: limits}

	r.GET("/models", end.Models)

	r.POST("/sessions", end.CreateSession)
	r.GET("/sessions/:id", end.Session)
	r.POST("/sessions/:id/messages", end.SendMessage)

	r.POST("/uploads/images", end.UploadImage, pkgrouter.MaxBody(limits.ImageBytes+pkgrouter.UploadOverhead)) // multipart: file, sessionId
	r.POST("/uploads/csv", end.UploadCSV, pkgrouter.MaxBody(limits.CSVBytes+pkgrouter.UploadOverhead))      // multipart: file, sessionId
	r.POST("/uploads/csv-url", end.UploadCSVFromURL)
}
