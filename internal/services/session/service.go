package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wsentinels/sentinelchat/internal/dependencies/clock"
	"github.com/wsentinels/sentinelchat/internal/dependencies/random"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/storage"
)

const (
	// SessionIDLength is the length of the random part of session IDs
	SessionIDLength = 24
	// SessionIDAlphabet is the characters used in session IDs
	SessionIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// CodeLength is the required length of a verification code
	CodeLength = 6
)

// WelcomeText is the fixed system message opening every transcript
const WelcomeText = "Welcome to the internal Sentinels chat platform. " +
	"This demo focuses on a 12-player injury report use case. " +
	"Ask something like \"List all injuries\" or \"Show the injury report.\""

// Service owns the session lifecycle and the authentication state machine:
// Login -> MFA -> Dashboard, with no back-transitions.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new session Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Begin creates a new session in the Login phase with a freshly seeded
// roster and the fixed welcome message
func (s *Service) Begin(ctx context.Context) (*model.ChatSession, error) {
	now := s.clock.Now()

	session := &model.ChatSession{
		ID:          model.SessionID("sess_" + s.random.String(SessionIDLength, SessionIDAlphabet)),
		Phase:       model.PhaseLogin,
		Roster:      model.SeedRoster(now),
		Queries:     []model.QueryLogEntry{},
		NextQueryID: 1,
		Transcript: []model.TranscriptMessage{
			{Sender: model.SenderSystem, Label: "Sentinel Chatbox", Text: WelcomeText},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session started", slog.String("session_id", string(session.ID)))
	return session, nil
}

// Get retrieves a session by ID
func (s *Service) Get(ctx context.Context, id model.SessionID) (*model.ChatSession, error) {
	return s.storage.GetSession(ctx, id)
}

// Login moves a session from Login to MFA. The password is only checked for
// non-emptiness; this is a demo, not a security control. On failure the
// session is unchanged and the caller may retry.
func (s *Service) Login(ctx context.Context, id model.SessionID, username, roleName, password string) (*model.ChatSession, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Phase != model.PhaseLogin {
		return nil, model.ErrInvalidTransition
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, model.ErrMissingCredentials
	}

	role, err := model.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session.User = model.SessionUser{
		Username:  username,
		Role:      role,
		LoginTime: now,
	}
	session.Phase = model.PhaseMFA
	session.UpdatedAt = now

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("login accepted",
		slog.String("session_id", string(id)),
		slog.String("username", username),
		slog.String("role", string(role)),
	)
	return session, nil
}

// VerifyCode moves a session from MFA to Dashboard. Any well-formed
// 6-digit code succeeds; there is no real secret to check against.
func (s *Service) VerifyCode(ctx context.Context, id model.SessionID, code string) (*model.ChatSession, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Phase != model.PhaseMFA {
		return nil, model.ErrInvalidTransition
	}

	if !wellFormedCode(code) {
		return nil, model.ErrMalformedCode
	}

	session.Phase = model.PhaseDashboard
	session.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("mfa verified", slog.String("session_id", string(id)))
	return session, nil
}

// wellFormedCode reports whether code is exactly 6 decimal digits
func wellFormedCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
