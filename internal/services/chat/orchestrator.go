package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wsentinels/sentinelchat/internal/dependencies/clock"
	"github.com/wsentinels/sentinelchat/internal/metrics"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/services/intent"
	"github.com/wsentinels/sentinelchat/internal/services/querylog"
	"github.com/wsentinels/sentinelchat/internal/services/roster"
	"github.com/wsentinels/sentinelchat/internal/storage"
)

// Transcript labels shown next to messages
const (
	LabelUser = "You"
	LabelBot  = "Chatbox"
)

// Orchestrator ties the session state, roster, classifier and query log
// together: it accepts questions, composes replies and records every
// interaction on the transcript and in the query log.
type Orchestrator struct {
	storage  storage.Storage
	roster   *roster.Service
	querylog *querylog.Service
	clock    clock.Clock
	logger   *slog.Logger
}

// NewOrchestrator creates a new chat Orchestrator
func NewOrchestrator(
	storage storage.Storage,
	rosterService *roster.Service,
	querylogService *querylog.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		storage:  storage,
		roster:   rosterService,
		querylog: querylogService,
		clock:    clock,
		logger:   logger,
	}
}

// Submit handles one question: it grows the transcript by exactly two
// messages (the question and the reply) and the query log by exactly one
// entry. A blank question is silently ignored and changes nothing.
func (o *Orchestrator) Submit(ctx context.Context, id model.SessionID, text string) error {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil
	}

	session, err := o.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	classified := intent.Classify(question)
	reply := o.composeReply(session, classified)

	session.Transcript = append(session.Transcript,
		model.TranscriptMessage{Sender: model.SenderUser, Label: LabelUser, Text: question},
		model.TranscriptMessage{Sender: model.SenderBot, Label: LabelBot, Text: reply},
	)
	session.UpdatedAt = o.clock.Now()

	if err := o.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	if _, err := o.querylog.Append(ctx, id, question); err != nil {
		return err
	}

	metrics.QuestionsTotal.WithLabelValues(string(classified)).Inc()
	o.logger.Info("question answered",
		slog.String("session_id", string(id)),
		slog.String("intent", string(classified)),
	)
	return nil
}

// SaveGuidedUpdate applies the guided review form to the latest query-log
// entry
func (o *Orchestrator) SaveGuidedUpdate(ctx context.Context, id model.SessionID, status model.QueryStatus, note string) error {
	return o.querylog.UpdateTail(ctx, id, status, note)
}

// UpdatePlayer performs a live injury update. Only the Team Physician role
// may reach this; every other role is refused before any state changes.
func (o *Orchestrator) UpdatePlayer(ctx context.Context, id model.SessionID, index int, injury, status string) (*model.PlayerRecord, error) {
	session, err := o.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.User.Role.CanUpdateRoster() {
		return nil, model.ErrRoleForbidden
	}

	record, err := o.roster.UpdatePlayer(ctx, id, index, injury, status)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf(
		"Updated injury report for #%d %s (%s):\n- Injury: %s\n- Status: %s\nLast updated: %s",
		record.Number, record.Name, record.Position,
		record.Injury, record.Status, record.LastUpdated.Format(roster.TimeFormat),
	)

	updated, err := o.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.Transcript = append(updated.Transcript,
		model.TranscriptMessage{Sender: model.SenderBot, Label: LabelBot, Text: summary},
	)
	updated.UpdatedAt = o.clock.Now()
	if err := o.storage.SaveSession(ctx, updated); err != nil {
		return nil, err
	}

	action := fmt.Sprintf("Doctor updated injury for #%d %s.", record.Number, record.Name)
	if _, err := o.querylog.AppendAnswered(ctx, id, action, querylog.LiveUpdateNote); err != nil {
		return nil, err
	}

	metrics.RosterUpdatesTotal.Inc()
	return record, nil
}

// composeReply builds the bot response for a classified question
func (o *Orchestrator) composeReply(session *model.ChatSession, classified intent.Intent) string {
	switch classified {
	case intent.IntentInjuryReport:
		report := roster.FormatRecords(session.Roster)
		if session.User.Role.CanUpdateRoster() {
			return report + "\n\nAs Team Physician, you'd be able to update these entries in the real system " +
				"directly from this interface (clearing players, changing phases, etc.). " +
				"Use the Live Injury Update panel to simulate that in this demo."
		}
		return report + "\n\nIn the full platform, this view would be filtered based on your role so that " +
			"non-clinical staff only see what they're allowed to see."

	case intent.IntentGreeting:
		return "Hey! This prototype is focused on the injury report use case. " +
			"Try asking me something like: \"List all injuries\" or \"Show the Sentinels injury report.\""

	case intent.IntentHelp:
		return "Right now this demo is centered on an injury report use case:\n" +
			"- I can list 12 fictional Washington Sentinels players and their current injuries.\n" +
			"- Every question you ask is logged into a query database for later analysis.\n" +
			"- If you're logged in as Team Physician, you can update injuries live from this screen."

	default:
		return "For this demo, my main job is to show the injury report for our 12 fictional Sentinels players. " +
			"Try asking: \"List all injuries\" or \"Show the current injury report.\""
	}
}
