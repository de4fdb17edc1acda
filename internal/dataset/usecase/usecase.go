package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/phamm25/ai-chatbot/internal/dataset/cache"
	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/dataset/outbound"
	"github.com/phamm25/ai-chatbot/internal/dataset/profile"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgerror"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

type Profiler interface {
	Profile(name string, data []byte) (entity.DatasetSummary, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (entity.DatasetSummary, bool)
	Put(ctx context.Context, key string, summary entity.DatasetSummary)
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Store interface {
	SaveDataset(ctx context.Context, summary entity.DatasetSummary) error
	GetDataset(ctx context.Context, id string) (entity.DatasetSummary, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.DatasetProfiledEvent) error
}

type Dependency struct {
	Profiler Profiler
	Cache    Cache
	Fetcher  Fetcher
	Store    Store
	Events   EventPublisher
	ID       pkguid.StringID
	MaxBytes int64
}

type Usecase struct {
	profiler Profiler
	cache    Cache
	fetcher  Fetcher
	store    Store
	events   EventPublisher
	id       pkguid.StringID
	maxBytes int64
	flights  singleflight.Group
}

func New(dep Dependency) *Usecase {
	id := dep.ID
	if id == nil {
		id = pkguid.NewUUID()
	}

	return &Usecase{
		profiler: dep.Profiler,
		cache:    dep.Cache,
		fetcher:  dep.Fetcher,
		store:    dep.Store,
		events:   dep.Events,
		id:       id,
		maxBytes: profile.EffectiveLimit(dep.MaxBytes),
	}
}

// Profile returns the summary of data, computing it at most once per distinct
// content while it stays cached.
func (u *Usecase) Profile(ctx context.Context, name string, data []byte) (entity.DatasetSummary, error) {
	if u.profiler == nil || u.store == nil {
		return entity.DatasetSummary{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if err := profile.CheckSize(int64(len(data)), u.maxBytes); err != nil {
		return entity.DatasetSummary{}, u.mapErr(ctx, err)
	}

	key := cache.KeyForContent(data)
	if summary, ok := u.cacheGet(ctx, key); ok {
		return u.remember(ctx, summary)
	}

	v, err, _ := u.flights.Do(key, func() (any, error) {
		if summary, ok := u.cacheGet(ctx, key); ok {
			return summary, nil
		}
		return u.profileAndStore(ctx, name, data, key)
	})
	if err != nil {
		return entity.DatasetSummary{}, u.mapErr(ctx, err)
	}

	return u.remember(ctx, v.(entity.DatasetSummary))
}

// ProfileFromURL fetches and profiles a remote CSV. The cache is consulted
// before any network traffic; failed fetches are never cached.
func (u *Usecase) ProfileFromURL(ctx context.Context, rawURL string) (entity.DatasetSummary, error) {
	if u.fetcher == nil || u.profiler == nil || u.store == nil {
		return entity.DatasetSummary{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	normalized, err := outbound.NormalizeURL(rawURL)
	if err != nil {
		return entity.DatasetSummary{}, pkgerror.NewInvalidInput(err)
	}

	key := cache.KeyForURL(outbound.StripUserinfo(normalized))
	if summary, ok := u.cacheGet(ctx, key); ok {
		return u.remember(ctx, summary)
	}

	v, err, _ := u.flights.Do(key, func() (any, error) {
		if summary, ok := u.cacheGet(ctx, key); ok {
			return summary, nil
		}

		// Callers sharing this flight must not fail because the first one
		// went away; the fetcher's own timeout still applies.
		data, err := u.fetcher.Fetch(context.WithoutCancel(ctx), normalized)
		if err != nil {
			return nil, err
		}
		if err := profile.CheckSize(int64(len(data)), u.maxBytes); err != nil {
			return nil, err
		}

		summary, err := u.profileAndStore(ctx, outbound.NameFromURL(normalized), data, cache.KeyForContent(data))
		if err != nil {
			return nil, err
		}
		if u.cache != nil {
			u.cache.Put(ctx, key, summary)
		}
		return summary, nil
	})
	if err != nil {
		return entity.DatasetSummary{}, u.mapErr(ctx, err)
	}

	return u.remember(ctx, v.(entity.DatasetSummary))
}

func (u *Usecase) Dataset(ctx context.Context, id string) (entity.DatasetSummary, error) {
	if id == "" {
		return entity.DatasetSummary{}, pkgerror.NewInvalidInput(errors.New("dataset id is required"))
	}

	summary, err := u.store.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, pkgerror.ErrNotFound) {
			return entity.DatasetSummary{}, pkgerror.NewBusiness("dataset not found", pkgerror.CodeNotFound)
		}
		return entity.DatasetSummary{}, u.mapErr(ctx, err)
	}

	return summary, nil
}

func (u *Usecase) RenderContext(summary entity.DatasetSummary) string {
	return profile.RenderContext(summary)
}

func (u *Usecase) profileAndStore(ctx context.Context, name string, data []byte, contentKey string) (entity.DatasetSummary, error) {
	summary, err := u.profiler.Profile(name, data)
	if err != nil {
		return entity.DatasetSummary{}, err
	}

	if u.cache != nil {
		u.cache.Put(ctx, contentKey, summary)
	}

	if err := u.store.SaveDataset(ctx, summary); err != nil {
		return entity.DatasetSummary{}, err
	}

	u.publish(ctx, summary, data)
	return summary, nil
}

func (u *Usecase) publish(ctx context.Context, summary entity.DatasetSummary, data []byte) {
	if u.events == nil {
		return
	}

	event := entity.DatasetProfiledEvent{
		EventID:   u.id.Generate(),
		DatasetID: summary.ID,
		Name:      summary.Name,
		Raw:       data,
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "dataset_id", summary.ID, "event_id", event.EventID, "error", err)
	}
}

// remember keeps cached summaries addressable by ID, including those served
// from a durable cache after a restart.
func (u *Usecase) remember(ctx context.Context, summary entity.DatasetSummary) (entity.DatasetSummary, error) {
	if err := u.store.SaveDataset(ctx, summary); err != nil {
		return entity.DatasetSummary{}, u.mapErr(ctx, err)
	}
	return summary.Clone(), nil
}

func (u *Usecase) cacheGet(ctx context.Context, key string) (entity.DatasetSummary, bool) {
	if u.cache == nil {
		return entity.DatasetSummary{}, false
	}
	return u.cache.Get(ctx, key)
}

func (u *Usecase) mapErr(ctx context.Context, err error) error {
	var (
		perr     *pkgerror.Error
		fetchErr *outbound.FetchError
	)

	switch {
	case errors.As(err, &perr):
		return perr
	case errors.Is(err, profile.ErrPayloadTooLarge):
		return pkgerror.NewBusinessCause(
			fmt.Sprintf("CSV exceeds maximum size of %dMB", u.maxBytes>>20),
			pkgerror.CodeTooLarge, err)
	case errors.Is(err, profile.ErrEmptyDataset):
		return pkgerror.NewBusinessCause("CSV file is empty", pkgerror.CodeInvalidFormat, err)
	case errors.Is(err, profile.ErrParse):
		return pkgerror.NewBusinessCause("CSV file could not be parsed", pkgerror.CodeInvalidFormat, err)
	case errors.As(err, &fetchErr):
		return pkgerror.NewBusinessCause("Failed to fetch CSV from the provided URL", pkgerror.CodeFailedDependency, err)
	default:
		slog.ErrorContext(ctx, "dataset operation failed", "error", err)
		return pkgerror.NewServer(err)
	}
}
