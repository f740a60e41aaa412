package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wsentinels/sentinelchat/internal/api/middleware"
	"github.com/wsentinels/sentinelchat/internal/api/request"
	"github.com/wsentinels/sentinelchat/internal/api/response"
	"github.com/wsentinels/sentinelchat/internal/services/chat"
	"github.com/wsentinels/sentinelchat/internal/services/session"
)

// ChatHandler handles the conversational endpoint
type ChatHandler struct {
	orchestrator   *chat.Orchestrator
	sessionService *session.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(orchestrator *chat.Orchestrator, sessionService *session.Service) *ChatHandler {
	return &ChatHandler{
		orchestrator:   orchestrator,
		sessionService: sessionService,
	}
}

// Submit handles POST /api/v1/chat
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	// Blank input produces no transcript or log activity
	if strings.TrimSpace(req.Message) == "" {
		response.NoContent(w)
		return
	}

	current := middleware.MustGetChatSession(r.Context())
	if err := h.orchestrator.Submit(r.Context(), current.ID, req.Message); err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.sessionService.Get(r.Context(), current.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TranscriptResponseFromModel(updated.Transcript))
}
