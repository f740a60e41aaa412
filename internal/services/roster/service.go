package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wsentinels/sentinelchat/internal/dependencies/clock"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/storage"
)

// TimeFormat is how record timestamps are rendered in reports
const TimeFormat = "2006-01-02 15:04"

// Service reads and mutates the per-session injury roster. It is
// role-agnostic: authorization is the caller's concern.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new roster Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Players returns a copy of the full roster in seed order
func (s *Service) Players(ctx context.Context, id model.SessionID) ([]model.PlayerRecord, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.Roster, nil
}

// Player returns a copy of the record at the given roster index
func (s *Service) Player(ctx context.Context, id model.SessionID, index int) (*model.PlayerRecord, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Roster) {
		return nil, model.ErrPlayerIndexOutOfRange
	}
	record := session.Roster[index]
	return &record, nil
}

// UpdatePlayer sets the injury and status of the record at the given index
// and refreshes its LastUpdated timestamp. Free text; no content validation.
func (s *Service) UpdatePlayer(ctx context.Context, id model.SessionID, index int, injury, status string) (*model.PlayerRecord, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.Roster) {
		return nil, model.ErrPlayerIndexOutOfRange
	}

	now := s.clock.Now()
	session.Roster[index].Injury = injury
	session.Roster[index].Status = status
	session.Roster[index].LastUpdated = now
	session.UpdatedAt = now

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	record := session.Roster[index]
	s.logger.Info("roster updated",
		slog.String("session_id", string(id)),
		slog.Int("player_number", record.Number),
		slog.String("player", record.Name),
	)
	return &record, nil
}

// FormatReport renders the current roster as a human-readable report in
// seed order, straight from stored state
func (s *Service) FormatReport(ctx context.Context, id model.SessionID) (string, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return "", err
	}
	return FormatRecords(session.Roster), nil
}

// FormatRecords renders a slice of player records as report text
func FormatRecords(records []model.PlayerRecord) string {
	var b strings.Builder
	b.WriteString("Here's the current Sentinels injury report (demo data):\n")
	for _, p := range records {
		fmt.Fprintf(&b, "\n- #%d %s (%s)\n  Injury: %s\n  Status: %s\n  Last updated: %s",
			p.Number, p.Name, p.Position, p.Injury, p.Status, p.LastUpdated.Format(TimeFormat))
	}
	return b.String()
}
