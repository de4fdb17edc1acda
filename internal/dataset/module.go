package dataset

import (
	"context"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/event"
	"github.com/phamm25/ai-chatbot/internal/dataset/inbound"
	"github.com/phamm25/ai-chatbot/internal/dataset/outbound"
	"github.com/phamm25/ai-chatbot/internal/dataset/profile"
	"github.com/phamm25/ai-chatbot/internal/dataset/store"
	"github.com/phamm25/ai-chatbot/internal/dataset/usecase"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgconfig"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
	ID     pkguid.StringID
	Cache  usecase.Cache
}

type Module struct {
	Usecase  *usecase.Usecase
	MaxBytes int64
	stop     func(context.Context) error
}

func New(dep Dependency) (*Module, error) {
	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	maxBytes := int64(dep.Config.GetInt("dataset.max_upload_mb")) << 20
	maxBytes = profile.EffectiveLimit(maxBytes)

	mod := &Module{MaxBytes: maxBytes, stop: func(context.Context) error { return nil }}

	var events usecase.EventPublisher
	if dep.Config.GetBool("dataset.archive.enabled") {
		bus := event.NewBus(64)
		archiver := outbound.NewFileArchiver(dep.Config.GetString("storage.dir"))
		consumer := event.NewArchiveConsumer(bus, archiver, event.ConsumerConfig{
			Workers:     2,
			MaxRetries:  3,
			BaseBackoff: 200 * time.Millisecond,
		})
		consumer.Start()

		events = bus
		mod.stop = consumer.Stop
	}

	mod.Usecase = usecase.New(usecase.Dependency{
		Profiler: profile.NewEngine(dep.ID, maxBytes),
		Cache:    dep.Cache,
		Fetcher:  outbound.NewHTTPFetcher(dep.Config.GetDuration("dataset.fetch_timeout"), maxBytes),
		Store:    store.NewInMemoryStore(),
		Events:   events,
		ID:       dep.ID,
		MaxBytes: maxBytes,
	})

	if dep.Router != nil {
		inbound.RegisterHTTPEndpoint(dep.Router, mod.Usecase, maxBytes)
	}

	return mod, nil
}

// Stop drains the archival queue.
func (m *Module) Stop(ctx context.Context) error {
	return m.stop(ctx)
}
