package response

import (
	"time"

	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/services/roster"
)

// Session represents a session in API responses
type Session struct {
	ID       string `json:"id"`
	Phase    string `json:"phase"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// SessionFromModel converts a model.ChatSession to a response Session
func SessionFromModel(s *model.ChatSession) Session {
	return Session{
		ID:       string(s.ID),
		Phase:    string(s.Phase),
		Username: s.User.Username,
		Role:     string(s.User.Role),
	}
}

// BeginResponse is the response for starting a session
type BeginResponse struct {
	Session Session  `json:"session"`
	Token   string   `json:"token"`
	Roles   []string `json:"roles"`
}

// BeginResponseFromModel creates a BeginResponse from a fresh session.
// The session id doubles as the bearer token.
func BeginResponseFromModel(s *model.ChatSession) BeginResponse {
	roles := make([]string, len(model.Roles))
	for i, r := range model.Roles {
		roles[i] = string(r)
	}
	return BeginResponse{
		Session: SessionFromModel(s),
		Token:   string(s.ID),
		Roles:   roles,
	}
}

// TranscriptMessage represents one chat transcript entry
type TranscriptMessage struct {
	Sender string `json:"sender"`
	Label  string `json:"label"`
	Text   string `json:"text"`
}

// TranscriptMessageFromModel converts model.TranscriptMessage
func TranscriptMessageFromModel(m model.TranscriptMessage) TranscriptMessage {
	return TranscriptMessage{
		Sender: string(m.Sender),
		Label:  m.Label,
		Text:   m.Text,
	}
}

// TranscriptResponse is the response for fetching the chat transcript
type TranscriptResponse struct {
	Messages []TranscriptMessage `json:"messages"`
}

// TranscriptResponseFromModel converts a transcript slice
func TranscriptResponseFromModel(messages []model.TranscriptMessage) TranscriptResponse {
	out := make([]TranscriptMessage, len(messages))
	for i, m := range messages {
		out[i] = TranscriptMessageFromModel(m)
	}
	return TranscriptResponse{Messages: out}
}

// PlayerRecord represents an injury roster entry
type PlayerRecord struct {
	Index       int    `json:"index"`
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Injury      string `json:"injury"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated"`
}

// PlayerRecordFromModel converts model.PlayerRecord
func PlayerRecordFromModel(index int, p model.PlayerRecord) PlayerRecord {
	return PlayerRecord{
		Index:       index,
		Number:      p.Number,
		Name:        p.Name,
		Position:    p.Position,
		Injury:      p.Injury,
		Status:      p.Status,
		LastUpdated: p.LastUpdated.Format(roster.TimeFormat),
	}
}

// RosterResponse is the response for fetching the roster
type RosterResponse struct {
	Players []PlayerRecord `json:"players"`
}

// RosterResponseFromModel converts a roster slice
func RosterResponseFromModel(players []model.PlayerRecord) RosterResponse {
	out := make([]PlayerRecord, len(players))
	for i, p := range players {
		out[i] = PlayerRecordFromModel(i, p)
	}
	return RosterResponse{Players: out}
}

// QueryLogEntry represents one query-log record
type QueryLogEntry struct {
	ID        int       `json:"id"`
	User      string    `json:"user"`
	Role      string    `json:"role"`
	Question  string    `json:"question"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryLogEntryFromModel converts model.QueryLogEntry
func QueryLogEntryFromModel(e model.QueryLogEntry) QueryLogEntry {
	return QueryLogEntry{
		ID:        e.ID,
		User:      e.User,
		Role:      e.Role,
		Question:  e.Question,
		Status:    string(e.Status),
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

// QueryLogResponse is the response for fetching the query log
type QueryLogResponse struct {
	Entries []QueryLogEntry `json:"entries"`
}

// QueryLogResponseFromModel converts a query-log slice
func QueryLogResponseFromModel(entries []model.QueryLogEntry) QueryLogResponse {
	out := make([]QueryLogEntry, len(entries))
	for i, e := range entries {
		out[i] = QueryLogEntryFromModel(e)
	}
	return QueryLogResponse{Entries: out}
}
