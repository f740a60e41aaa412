package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wsentinels/sentinelchat/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newSession(id string) *model.ChatSession {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.ChatSession{
		ID:          model.SessionID(id),
		Phase:       model.PhaseLogin,
		Roster:      model.SeedRoster(now),
		NextQueryID: 1,
		Transcript: []model.TranscriptMessage{
			{Sender: model.SenderSystem, Label: "Sentinel Chatbox", Text: "Welcome"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.newSession("sess-1")

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(model.PhaseLogin, retrieved.Phase)
	s.Len(retrieved.Roster, model.RosterSize)
	s.Len(retrieved.Transcript, 1)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, s.newSession("sess-1"))

	err := s.storage.DeleteSession(s.ctx, "sess-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, s.newSession("sess-1"))

	exists, err = s.storage.SessionExists(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestGetReturnsCopy() {
	session := s.newSession("sess-1")
	_ = s.storage.SaveSession(s.ctx, session)

	first, _ := s.storage.GetSession(s.ctx, "sess-1")
	first.Roster[0].Injury = "mutated"
	first.Transcript[0].Text = "mutated"

	second, _ := s.storage.GetSession(s.ctx, "sess-1")
	s.Equal("Right shoulder strain", second.Roster[0].Injury)
	s.Equal("Welcome", second.Transcript[0].Text)
}

func (s *StorageSuite) TestSaveDetachesCaller() {
	session := s.newSession("sess-1")
	_ = s.storage.SaveSession(s.ctx, session)

	// Mutating the caller's copy after save must not affect stored state
	session.Phase = model.PhaseDashboard
	session.Queries = append(session.Queries, model.QueryLogEntry{ID: 1})

	retrieved, _ := s.storage.GetSession(s.ctx, "sess-1")
	s.Equal(model.PhaseLogin, retrieved.Phase)
	s.Empty(retrieved.Queries)
}
