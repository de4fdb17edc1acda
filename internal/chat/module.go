package chat

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/phamm25/ai-chatbot/internal/chat/entity"
	"github.com/phamm25/ai-chatbot/internal/chat/inbound"
	"github.com/phamm25/ai-chatbot/internal/chat/outbound"
	"github.com/phamm25/ai-chatbot/internal/chat/store"
	"github.com/phamm25/ai-chatbot/internal/chat/usecase"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgconfig"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Router    *pkgrouter.Router
	ID        pkguid.StringID
	MessageID pkguid.NumberID
	Datasets  usecase.Datasets
	CSVBytes  int64
}

func New(dep Dependency) (*usecase.Usecase, error) {
	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	images := outbound.NewImageStorage(dep.Config.GetString("storage.dir"))

	var provider outbound.Provider = outbound.MockProvider{}
	if key := dep.Config.GetString("openai.api_key"); key != "" {
		provider = outbound.NewOpenAIProvider(key, dep.Config.GetString("openai.base_url"))
	} else {
		slog.Warn("openai.api_key is not set, using mock completion provider")
	}

	imageBytes := dep.Config.GetInt("chat.max_image_mb") << 20
	if imageBytes <= 0 {
		imageBytes = 5 << 20
	}

	uc := usecase.New(usecase.Dependency{
		Store:        store.NewInMemoryStore(),
		Datasets:     dep.Datasets,
		Images:       images,
		Provider:     provider,
		ID:           dep.ID,
		MessageID:    dep.MessageID,
		Models:       models(dep.Config),
		DefaultModel: dep.Config.GetString("chat.default_model"),
		MaxBytes:     imageBytes,
	})

	if dep.Router != nil {
		inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Limits{ImageBytes: imageBytes, CSVBytes: dep.CSVBytes})
		dep.Router.ServeFiles("/static/images/*filepath", http.Dir(images.Dir()))
	}

	return uc, nil
}

// models reads chat.models as "id:label" pairs, sorted by id.
func models(cfg pkgconfig.Config) []entity.Model {
	var out []entity.Model
	for id, label := range cfg.GetMap("chat.models") {
		out = append(out, entity.Model{ID: strings.TrimSpace(id), Label: strings.TrimSpace(label), Provider: "openai"})
	}
	slices.SortFunc(out, func(a, b entity.Model) int { return strings.Compare(a.ID, b.ID) })
	return out
}
