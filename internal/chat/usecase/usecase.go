package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/phamm25/ai-chatbot/internal/chat/entity"
	"github.com/phamm25/ai-chatbot/internal/chat/outbound"
	dsentity "github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgerror"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

type Store interface {
	CreateSession(ctx context.Context, session entity.Session) error
	GetSession(ctx context.Context, id string) (entity.Session, error)
	UpdateSession(ctx context.Context, id string, fn func(session *entity.Session) error) (entity.Session, error)
	SaveImage(ctx context.Context, img entity.Image) error
	GetImage(ctx context.Context, id string) (entity.Image, error)
}

type Datasets interface {
	Profile(ctx context.Context, name string, data []byte) (dsentity.DatasetSummary, error)
	ProfileFromURL(ctx context.Context, url string) (dsentity.DatasetSummary, error)
	Dataset(ctx context.Context, id string) (dsentity.DatasetSummary, error)
	RenderContext(summary dsentity.DatasetSummary) string
}

type ImageStorage interface {
	Save(ctx context.Context, id, originalName, mimeType string, data []byte) (fileName, path string, err error)
	Read(ctx context.Context, path string) ([]byte, error)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store        Store
	Datasets     Datasets
	Images       ImageStorage
	Provider     outbound.Provider
	Clock        Clock
	ID           pkguid.StringID
	MessageID    pkguid.NumberID
	Models       []entity.Model
	DefaultModel string
	MaxBytes     int64
	ImageURLBase string
}

type Usecase struct {
	store        Store
	datasets     Datasets
	images       ImageStorage
	provider     outbound.Provider
	clock        Clock
	id           pkguid.StringID
	messageID    pkguid.NumberID
	models       []entity.Model
	defaultModel string
	maxBytes     int64
	imageURLBase string
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	id := dep.ID
	if id == nil {
		id = pkguid.NewUUID()
	}

	models := dep.Models
	if len(models) == 0 {
		models = DefaultModels()
	}

	defaultModel := dep.DefaultModel
	if defaultModel == "" {
		defaultModel = models[0].ID
	}

	base := dep.ImageURLBase
	if base == "" {
		base = "/static/images/"
	}

	return &Usecase{
		store:        dep.Store,
		datasets:     dep.Datasets,
		images:       dep.Images,
		provider:     dep.Provider,
		clock:        clock,
		id:           id,
		messageID:    dep.MessageID,
		models:       models,
		defaultModel: defaultModel,
		maxBytes:     dep.MaxBytes,
		imageURLBase: base,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func DefaultModels() []entity.Model {
	return []entity.Model{{ID: "gpt-4o-mini", Label: "ChatGPT (GPT-4o mini)", Provider: "openai"}}
}

func (u *Usecase) Models() []entity.Model {
	return slices.Clone(u.models)
}

func (u *Usecase) CreateSession(ctx context.Context, model string) (entity.Session, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = u.defaultModel
	}
	if !u.supported(model) {
		return entity.Session{}, pkgerror.NewInvalidInput(fmt.Errorf("unsupported model %q", model))
	}

	now := u.clock.Now()
	session := entity.Session{
		ID:        u.id.Generate(),
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []entity.Message{},
		Datasets:  map[string]dsentity.DatasetSummary{},
	}
	if err := u.store.CreateSession(ctx, session); err != nil {
		return entity.Session{}, normalizeErr(err)
	}

	return session, nil
}

func (u *Usecase) Session(ctx context.Context, id string) (entity.Session, error) {
	if id == "" {
		return entity.Session{}, pkgerror.NewInvalidInput(errors.New("sessionId is required"))
	}

	session, err := u.store.GetSession(ctx, id)
	if err != nil {
		return entity.Session{}, mapStoreErr(err)
	}
	return session, nil
}

func (u *Usecase) UploadImage(ctx context.Context, sessionID string, up Upload) (entity.Image, error) {
	if _, err := u.Session(ctx, sessionID); err != nil {
		return entity.Image{}, err
	}
	if len(up.Data) == 0 {
		return entity.Image{}, pkgerror.NewInvalidInput(errors.New("image file is required"))
	}
	if u.maxBytes > 0 && int64(len(up.Data)) > u.maxBytes {
		return entity.Image{}, pkgerror.NewBusiness("Image exceeds maximum allowed size", pkgerror.CodeTooLarge)
	}

	mimeType := up.ContentType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(up.Data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return entity.Image{}, pkgerror.NewInvalidInput(fmt.Errorf("unsupported image type %q", mimeType))
	}

	id := u.id.Generate()
	fileName, path, err := u.images.Save(ctx, id, up.FileName, mimeType, up.Data)
	if err != nil {
		return entity.Image{}, normalizeErr(err)
	}

	img := entity.Image{
		ID:       id,
		Name:     up.FileName,
		FileName: fileName,
		Path:     path,
		URL:      u.imageURLBase + fileName,
		MimeType: mimeType,
		Size:     int64(len(up.Data)),
	}
	if err := u.store.SaveImage(ctx, img); err != nil {
		return entity.Image{}, normalizeErr(err)
	}

	return img, nil
}

func (u *Usecase) UploadCSV(ctx context.Context, sessionID string, up Upload) (dsentity.DatasetSummary, error) {
	if _, err := u.Session(ctx, sessionID); err != nil {
		return dsentity.DatasetSummary{}, err
	}

	name := up.FileName
	if name == "" {
		name = "dataset.csv"
	}

	summary, err := u.datasets.Profile(ctx, name, up.Data)
	if err != nil {
		return dsentity.DatasetSummary{}, err
	}

	return summary, u.attach(ctx, sessionID, summary)
}

func (u *Usecase) UploadCSVFromURL(ctx context.Context, sessionID, url string) (dsentity.DatasetSummary, error) {
	if strings.TrimSpace(url) == "" {
		return dsentity.DatasetSummary{}, pkgerror.NewInvalidInput(errors.New("url is required"))
	}
	if _, err := u.Session(ctx, sessionID); err != nil {
		return dsentity.DatasetSummary{}, err
	}

	summary, err := u.datasets.ProfileFromURL(ctx, url)
	if err != nil {
		return dsentity.DatasetSummary{}, err
	}

	return summary, u.attach(ctx, sessionID, summary)
}

func (u *Usecase) SendMessage(ctx context.Context, sessionID string, in SendInput) (SendResult, error) {
	session, err := u.Session(ctx, sessionID)
	if err != nil {
		return SendResult{}, err
	}

	model := strings.TrimSpace(in.Model)
	if model == "" {
		model = session.Model
	}
	if !u.supported(model) {
		return SendResult{}, pkgerror.NewInvalidInput(fmt.Errorf("unsupported model %q", model))
	}

	datasets := u.lookupDatasets(ctx, session, in.DatasetIDs)
	images := u.lookupImages(ctx, in.ImageIDs)

	if strings.TrimSpace(in.Content) == "" && len(images) == 0 {
		return SendResult{}, pkgerror.NewBusiness("Message content or image is required", pkgerror.CodeInvalidInput)
	}

	attachments := make([]entity.Attachment, 0, len(datasets)+len(images))
	for _, d := range datasets {
		attachments = append(attachments, entity.NewDatasetAttachment(d))
	}
	for _, img := range images {
		attachments = append(attachments, entity.NewImageAttachment(img))
	}
	if len(attachments) == 0 {
		attachments = nil
	}

	userMsg := entity.Message{
		ID:          u.newMessageID(),
		Role:        entity.RoleUser,
		Content:     in.Content,
		CreatedAt:   u.clock.Now(),
		Attachments: attachments,
		Model:       model,
	}
	if err := u.appendMessage(ctx, sessionID, userMsg, model); err != nil {
		return SendResult{}, err
	}

	req := outbound.CompletionRequest{
		Model:   model,
		History: outbound.RecentHistory(session.Messages),
		Prompt:  in.Content,
	}
	for _, d := range datasets {
		req.DatasetContexts = append(req.DatasetContexts, u.datasets.RenderContext(d))
	}
	for _, img := range images {
		data, err := u.images.Read(ctx, img.Path)
		if err != nil {
			slog.WarnContext(ctx, "failed to read image, skipping", "image_id", img.ID, "error", err)
			continue
		}
		req.Images = append(req.Images, outbound.ImageInput{MimeType: img.MimeType, Data: data})
	}

	text, err := u.provider.Complete(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "completion failed", "session_id", sessionID, "model", model, "error", err)
		return SendResult{}, pkgerror.NewBusinessCause("Failed to generate a response", pkgerror.CodeUpstream, err)
	}

	assistantMsg := entity.Message{
		ID:        u.newMessageID(),
		Role:      entity.RoleAssistant,
		Content:   text,
		CreatedAt: u.clock.Now(),
		Model:     model,
	}
	if err := u.appendMessage(ctx, sessionID, assistantMsg, model); err != nil {
		return SendResult{}, err
	}

	return SendResult{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

func (u *Usecase) attach(ctx context.Context, sessionID string, summary dsentity.DatasetSummary) error {
	_, err := u.store.UpdateSession(ctx, sessionID, func(session *entity.Session) error {
		session.Datasets[summary.ID] = summary.Clone()
		return nil
	})
	return mapStoreErr(err)
}

func (u *Usecase) appendMessage(ctx context.Context, sessionID string, msg entity.Message, model string) error {
	for _, a := range msg.Attachments {
		if err := a.Validate(); err != nil {
			return pkgerror.NewServer(fmt.Errorf("attachment %q: %w", a.ID, err))
		}
	}

	_, err := u.store.UpdateSession(ctx, sessionID, func(session *entity.Session) error {
		session.Messages = append(session.Messages, msg.Clone())
		session.UpdatedAt = msg.CreatedAt
		session.Model = model
		return nil
	})
	return mapStoreErr(err)
}

// lookupDatasets resolves ids against the session first, then the registry.
// Unknown ids are skipped.
func (u *Usecase) lookupDatasets(ctx context.Context, session entity.Session, ids []string) []dsentity.DatasetSummary {
	out := make([]dsentity.DatasetSummary, 0, len(ids))
	for _, id := range ids {
		if d, ok := session.Datasets[id]; ok {
			out = append(out, d)
			continue
		}
		d, err := u.datasets.Dataset(ctx, id)
		if err != nil {
			slog.InfoContext(ctx, "skip unknown dataset", "dataset_id", id)
			continue
		}
		out = append(out, d)
	}
	return out
}

func (u *Usecase) lookupImages(ctx context.Context, ids []string) []entity.Image {
	out := make([]entity.Image, 0, len(ids))
	for _, id := range ids {
		img, err := u.store.GetImage(ctx, id)
		if err != nil {
			slog.InfoContext(ctx, "skip unknown image", "image_id", id)
			continue
		}
		out = append(out, img)
	}
	return out
}

func (u *Usecase) supported(model string) bool {
	return slices.ContainsFunc(u.models, func(m entity.Model) bool { return m.ID == model })
}

func (u *Usecase) newMessageID() string {
	if u.messageID != nil {
		return strconv.FormatInt(u.messageID.Generate(), 10)
	}
	return u.id.Generate()
}

func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("Session not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
