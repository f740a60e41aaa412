package model

import "time"

// SessionID uniquely identifies a chat session across the system
type SessionID string

// SessionPhase represents how far through authentication a session is
type SessionPhase string

const (
	PhaseLogin     SessionPhase = "login"     // Awaiting username/role/password
	PhaseMFA       SessionPhase = "mfa"       // Awaiting verification code
	PhaseDashboard SessionPhase = "dashboard" // Fully signed in
)

// Role is the staff role selected at login
type Role string

const (
	RoleTeamPhysician   Role = "Team Physician"
	RoleAthleticTrainer Role = "Athletic Trainer"
	RoleHeadCoach       Role = "Head Coach"
	RoleAssistantCoach  Role = "Assistant Coach"
	RoleFrontOffice     Role = "Front Office"
)

// Roles lists every selectable role in display order
var Roles = []Role{
	RoleTeamPhysician,
	RoleAthleticTrainer,
	RoleHeadCoach,
	RoleAssistantCoach,
	RoleFrontOffice,
}

// ParseRole validates a role string
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", ErrInvalidRole
}

// CanUpdateRoster reports whether this role may mutate player records.
// This is the single place the mutation policy lives.
func (r Role) CanUpdateRoster() bool {
	return r == RoleTeamPhysician
}

// SessionUser holds the identity stamped onto a session by a successful login.
// Zero value means nobody has logged in yet.
type SessionUser struct {
	Username  string
	Role      Role
	LoginTime time.Time
}

// Sender identifies who produced a transcript message
type Sender string

const (
	SenderSystem Sender = "system"
	SenderUser   Sender = "user"
	SenderBot    Sender = "bot"
)

// TranscriptMessage is one entry in the ordered chat transcript
type TranscriptMessage struct {
	Sender Sender
	Label  string
	Text   string
}

// ChatSession is the aggregate holding all session-scoped state: the
// authentication phase, the logged-in user, the live roster, the query log
// and the chat transcript. It is owned by exactly one session token and
// persisted as a unit.
type ChatSession struct {
	ID          SessionID
	Phase       SessionPhase
	User        SessionUser
	Roster      []PlayerRecord
	Queries     []QueryLogEntry
	NextQueryID int
	Transcript  []TranscriptMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QueryUser returns the username to attribute query-log entries to
func (s *ChatSession) QueryUser() string {
	if s.User.Username != "" {
		return s.User.Username
	}
	return "internal_user"
}

// QueryRole returns the role to attribute query-log entries to
func (s *ChatSession) QueryRole() string {
	if s.User.Role != "" {
		return string(s.User.Role)
	}
	return "Unknown"
}

// TailQuery returns the most recently appended query-log entry, or nil if
// the log is empty
func (s *ChatSession) TailQuery() *QueryLogEntry {
	if len(s.Queries) == 0 {
		return nil
	}
	return &s.Queries[len(s.Queries)-1]
}
