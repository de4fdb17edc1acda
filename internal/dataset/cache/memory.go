package cache

import (
	"context"
	"sync"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

type memoryEntry struct {
	summary   entity.DatasetSummary
	expiresAt time.Time
}

// Memory is a process-local layer. Entries are immutable; a put swaps the
// whole entry so readers never see a half-written value.
type Memory struct {
	entries sync.Map
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Name() string {
	return "memory"
}

func (m *Memory) Get(_ context.Context, key string) (entity.DatasetSummary, bool, error) {
	v, ok := m.entries.Load(key)
	if !ok {
		return entity.DatasetSummary{}, false, nil
	}

	entry := v.(*memoryEntry)
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.entries.CompareAndDelete(key, entry)
		return entity.DatasetSummary{}, false, nil
	}

	return entry.summary.Clone(), true, nil
}

func (m *Memory) Put(_ context.Context, key string, summary entity.DatasetSummary, ttl time.Duration) error {
	entry := &memoryEntry{summary: summary.Clone()}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.entries.Store(key, entry)
	return nil
}

func (m *Memory) Prune(_ context.Context, now time.Time) (int, error) {
	removed := 0
	m.entries.Range(func(key, value any) bool {
		entry := value.(*memoryEntry)
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			if m.entries.CompareAndDelete(key, entry) {
				removed++
			}
		}
		return true
	})
	return removed, nil
}
