package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

// Layered tries its layers in order and back-fills the earlier layers on a
// hit further down the chain.
type Layered struct {
	layers []Layer
	ttl    time.Duration
}

func NewLayered(ttl time.Duration, layers ...Layer) *Layered {
	return &Layered{layers: layers, ttl: ttl}
}

func (l *Layered) Layers() []Layer {
	return l.layers
}

func (l *Layered) Get(ctx context.Context, key string) (entity.DatasetSummary, bool) {
	for i, layer := range l.layers {
		summary, ok, err := layer.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "cache layer get failed", "layer", layer.Name(), "key", key, "error", err)
			continue
		}
		if !ok {
			continue
		}

		for _, earlier := range l.layers[:i] {
			if err := earlier.Put(ctx, key, summary, l.ttl); err != nil {
				slog.WarnContext(ctx, "cache layer backfill failed", "layer", earlier.Name(), "key", key, "error", err)
			}
		}
		return summary.Clone(), true
	}

	return entity.DatasetSummary{}, false
}

func (l *Layered) Put(ctx context.Context, key string, summary entity.DatasetSummary) {
	for _, layer := range l.layers {
		if err := layer.Put(ctx, key, summary, l.ttl); err != nil {
			slog.WarnContext(ctx, "cache layer put failed", "layer", layer.Name(), "key", key, "error", err)
		}
	}
}

// Prune sweeps expired entries from every layer that holds them locally.
func (l *Layered) Prune(ctx context.Context, now time.Time) int {
	total := 0
	for _, layer := range l.layers {
		p, ok := layer.(Pruner)
		if !ok {
			continue
		}

		n, err := p.Prune(ctx, now)
		if err != nil {
			slog.WarnContext(ctx, "cache layer prune failed", "layer", layer.Name(), "error", err)
			continue
		}
		total += n
	}
	return total
}
