package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wsentinels/sentinelchat/internal/api/middleware"
	"github.com/wsentinels/sentinelchat/internal/api/request"
	"github.com/wsentinels/sentinelchat/internal/api/response"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/services/chat"
	"github.com/wsentinels/sentinelchat/internal/services/roster"
)

// RosterHandler handles injury roster endpoints
type RosterHandler struct {
	rosterService *roster.Service
	orchestrator  *chat.Orchestrator
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *roster.Service, orchestrator *chat.Orchestrator) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		orchestrator:  orchestrator,
	}
}

// List handles GET /api/v1/roster
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	current := middleware.MustGetChatSession(r.Context())
	players, err := h.rosterService.Players(r.Context(), current.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterResponseFromModel(players))
}

// Update handles PATCH /api/v1/roster/{index}
func (h *RosterHandler) Update(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		WriteError(w, model.ErrPlayerIndexOutOfRange)
		return
	}

	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	current := middleware.MustGetChatSession(r.Context())
	player, err := h.orchestrator.UpdatePlayer(r.Context(), current.ID, index, req.Injury, req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerRecordFromModel(index, *player))
}
