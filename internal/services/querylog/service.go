package querylog

import (
	"context"
	"log/slog"

	"github.com/wsentinels/sentinelchat/internal/dependencies/clock"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/storage"
)

// LiveUpdateNote is the fixed note attached to synthetic entries recorded
// by the live injury update path
const LiveUpdateNote = "Live injury update performed in demo UI."

// Service maintains the append-only query log of a session. Entries get
// strictly increasing IDs starting at 1; only the tail entry is mutable.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new query log Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Append records a question with status New and an empty note, attributed
// to the session's current user. Returns the assigned ID.
func (s *Service) Append(ctx context.Context, id model.SessionID, question string) (int, error) {
	return s.append(ctx, id, question, model.QueryStatusNew, "")
}

// AppendAnswered records a synthetic entry for an action already handled,
// e.g. a live injury update
func (s *Service) AppendAnswered(ctx context.Context, id model.SessionID, question, note string) (int, error) {
	return s.append(ctx, id, question, model.QueryStatusAnswered, note)
}

func (s *Service) append(ctx context.Context, id model.SessionID, question string, status model.QueryStatus, note string) (int, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return 0, err
	}

	entry := model.QueryLogEntry{
		ID:        session.NextQueryID,
		User:      session.QueryUser(),
		Role:      session.QueryRole(),
		Question:  question,
		Status:    status,
		Note:      note,
		CreatedAt: s.clock.Now(),
	}
	session.NextQueryID++
	session.Queries = append(session.Queries, entry)
	session.UpdatedAt = entry.CreatedAt

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return 0, err
	}

	s.logger.Info("query logged",
		slog.String("session_id", string(id)),
		slog.Int("query_id", entry.ID),
		slog.String("status", string(status)),
	)
	return entry.ID, nil
}

// UpdateTail sets the status and note of the most recently appended entry.
// A no-op (not an error) when the log is empty.
func (s *Service) UpdateTail(ctx context.Context, id model.SessionID, status model.QueryStatus, note string) error {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	tail := session.TailQuery()
	if tail == nil {
		return nil
	}

	tail.Status = status
	tail.Note = note
	session.UpdatedAt = s.clock.Now()

	return s.storage.SaveSession(ctx, session)
}

// Entries returns the full log in insertion order. Newest-first display is
// the presentation layer's job.
func (s *Service) Entries(ctx context.Context, id model.SessionID) ([]model.QueryLogEntry, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.Queries, nil
}
