package memory

import (
	"context"
	"sync"

	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*model.ChatSession
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionID]*model.ChatSession),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSession(ctx context.Context, session *model.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok, nil
}

// cloneSession deep-copies a session so callers never alias stored state.
// The slice fields are the only reference types in the aggregate.
func cloneSession(in *model.ChatSession) *model.ChatSession {
	out := *in
	out.Roster = make([]model.PlayerRecord, len(in.Roster))
	copy(out.Roster, in.Roster)
	out.Queries = make([]model.QueryLogEntry, len(in.Queries))
	copy(out.Queries, in.Queries)
	out.Transcript = make([]model.TranscriptMessage, len(in.Transcript))
	copy(out.Transcript, in.Transcript)
	return &out
}
