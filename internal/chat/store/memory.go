package store

import (
	"context"
	"sync"

	"github.com/phamm25/ai-chatbot/internal/chat/entity"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgerror"
)

// InMemoryStore holds sessions and image records. Each session has its own
// lock so updates to different sessions never contend.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
	images   sync.Map
}

type sessionRecord struct {
	mu      sync.Mutex
	session entity.Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*sessionRecord),
	}
}

func (s *InMemoryStore) CreateSession(ctx context.Context, session entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return pkgerror.NewBusiness("session already exists", pkgerror.CodeConflict)
	}

	s.sessions[session.ID] = &sessionRecord{session: session.Clone()}
	return nil
}

func (s *InMemoryStore) GetSession(ctx context.Context, id string) (entity.Session, error) {
	rec, err := s.get(id)
	if err != nil {
		return entity.Session{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return rec.session.Clone(), nil
}

// UpdateSession applies fn to a private copy of the session and stores the
// result atomically. fn may return an error to abort the update.
func (s *InMemoryStore) UpdateSession(ctx context.Context, id string, fn func(session *entity.Session) error) (entity.Session, error) {
	rec, err := s.get(id)
	if err != nil {
		return entity.Session{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	next := rec.session.Clone()
	if err := fn(&next); err != nil {
		return entity.Session{}, err
	}

	rec.session = next
	return next.Clone(), nil
}

func (s *InMemoryStore) SaveImage(ctx context.Context, img entity.Image) error {
	s.images.Store(img.ID, img)
	return nil
}

func (s *InMemoryStore) GetImage(ctx context.Context, id string) (entity.Image, error) {
	v, ok := s.images.Load(id)
	if !ok {
		return entity.Image{}, pkgerror.ErrNotFound
	}
	return v.(entity.Image), nil
}

func (s *InMemoryStore) get(id string) (*sessionRecord, error) {
	s.mu.RLock()
	rec, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
