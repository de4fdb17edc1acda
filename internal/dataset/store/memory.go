package store

import (
	"context"
	"sync"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgerror"
)

// InMemoryStore is the registry of profiled datasets by ID. Summaries are
// copied on the way in and on the way out.
type InMemoryStore struct {
	mu       sync.RWMutex
	datasets map[string]entity.DatasetSummary
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		datasets: make(map[string]entity.DatasetSummary),
	}
}

func (s *InMemoryStore) SaveDataset(ctx context.Context, summary entity.DatasetSummary) error {
	if summary.ID == "" {
		return pkgerror.NewBusiness("dataset id is required", pkgerror.CodeInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.datasets[summary.ID] = summary.Clone()
	return nil
}

func (s *InMemoryStore) GetDataset(ctx context.Context, id string) (entity.DatasetSummary, error) {
	s.mu.RLock()
	summary, ok := s.datasets[id]
	s.mu.RUnlock()
	if !ok {
		return entity.DatasetSummary{}, pkgerror.ErrNotFound
	}

	return summary.Clone(), nil
}
