package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

type Layer interface {
	Name() string
	Get(ctx context.Context, key string) (entity.DatasetSummary, bool, error)
	Put(ctx context.Context, key string, summary entity.DatasetSummary, ttl time.Duration) error
}

// Pruner is implemented by layers that hold expired entries until swept.
type Pruner interface {
	Prune(ctx context.Context, now time.Time) (int, error)
}

func encode(s entity.DatasetSummary) ([]byte, error) {
	return json.Marshal(s)
}

func decode(data []byte) (entity.DatasetSummary, error) {
	var s entity.DatasetSummary
	err := json.Unmarshal(data, &s)
	return s, err
}
