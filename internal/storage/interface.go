package storage

import (
	"context"

	"github.com/wsentinels/sentinelchat/internal/model"
)

// Storage defines the interface for session persistence. Each chat session
// is stored as one aggregate under its session ID; there is no cross-session
// state.
type Storage interface {
	SaveSession(ctx context.Context, session *model.ChatSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.ChatSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)
}
