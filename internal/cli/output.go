package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case BeginResult:
		o.printBeginResult(v)
	case Transcript:
		o.printTranscript(v)
	case QueryLog:
		o.printQueryLog(v)
	case QueryLogEntry:
		o.printQueryLogEntry(v)
	case Roster:
		o.printRoster(v)
	case PlayerRecord:
		o.printPlayerRecord(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	ID       string `json:"id"`
	Phase    string `json:"phase"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// BeginResult is the response from starting a session
type BeginResult struct {
	Session Session  `json:"session"`
	Token   string   `json:"token"`
	Roles   []string `json:"roles"`
}

// TranscriptMessage response type
type TranscriptMessage struct {
	Sender string `json:"sender"`
	Label  string `json:"label"`
	Text   string `json:"text"`
}

// Transcript response type
type Transcript struct {
	Messages []TranscriptMessage `json:"messages"`
}

// QueryLogEntry response type
type QueryLogEntry struct {
	ID        int       `json:"id"`
	User      string    `json:"user"`
	Role      string    `json:"role"`
	Question  string    `json:"question"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryLog response type
type QueryLog struct {
	Entries []QueryLogEntry `json:"entries"`
}

// PlayerRecord response type
type PlayerRecord struct {
	Index       int    `json:"index"`
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Injury      string `json:"injury"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated"`
}

// Roster response type
type Roster struct {
	Players []PlayerRecord `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Phase: %s\n", s.Phase)
	if s.Username != "" {
		fmt.Printf("User: %s (%s)\n", s.Username, s.Role)
	}
}

func (o *Output) printBeginResult(b BeginResult) {
	o.printSession(b.Session)
	fmt.Printf("Token: %s\n", b.Token)
	fmt.Println("Roles:")
	for _, role := range b.Roles {
		fmt.Printf("  - %s\n", role)
	}
}

func (o *Output) printTranscript(t Transcript) {
	for _, m := range t.Messages {
		fmt.Printf("[%s] %s\n", m.Label, m.Text)
	}
}

func (o *Output) printQueryLog(q QueryLog) {
	fmt.Printf("Queries (%d):\n", len(q.Entries))
	for _, e := range q.Entries {
		o.printQueryLogEntry(e)
	}
}

func (o *Output) printQueryLogEntry(e QueryLogEntry) {
	fmt.Printf("  #%d [%s] %s (%s): %s\n", e.ID, e.Status, e.User, e.Role, e.Question)
	if e.Note != "" {
		fmt.Printf("      note: %s\n", e.Note)
	}
}

func (o *Output) printRoster(r Roster) {
	fmt.Printf("Roster (%d players):\n", len(r.Players))
	for _, p := range r.Players {
		o.printPlayerRecord(p)
	}
}

func (o *Output) printPlayerRecord(p PlayerRecord) {
	fmt.Printf("  [%d] #%d %s (%s)\n", p.Index, p.Number, p.Name, p.Position)
	fmt.Printf("      Injury: %s\n", p.Injury)
	fmt.Printf("      Status: %s\n", p.Status)
	fmt.Printf("      Last updated: %s\n", p.LastUpdated)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
