package profile

import (
	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

// Engine runs the guard, parse and summarize steps for one input.
type Engine struct {
	ID       pkguid.StringID
	MaxBytes int64
}

func NewEngine(id pkguid.StringID, maxBytes int64) *Engine {
	if id == nil {
		id = pkguid.NewUUID()
	}
	return &Engine{ID: id, MaxBytes: maxBytes}
}

func (e *Engine) Profile(name string, data []byte) (entity.DatasetSummary, error) {
	if err := CheckSize(int64(len(data)), e.MaxBytes); err != nil {
		return entity.DatasetSummary{}, err
	}

	table, err := Parse(data)
	if err != nil {
		return entity.DatasetSummary{}, err
	}

	return Summarize(e.ID.Generate(), name, table), nil
}
