package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wsentinels/sentinelchat/internal/api/middleware"
	"github.com/wsentinels/sentinelchat/internal/api/request"
	"github.com/wsentinels/sentinelchat/internal/api/response"
	"github.com/wsentinels/sentinelchat/internal/metrics"
	"github.com/wsentinels/sentinelchat/internal/services/session"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionService *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *session.Service) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Begin handles POST /api/v1/sessions
func (h *SessionHandler) Begin(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessionService.Begin(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	metrics.SessionsStartedTotal.Inc()
	response.JSON(w, http.StatusCreated, response.BeginResponseFromModel(s))
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	current := middleware.MustGetChatSession(r.Context())
	s, err := h.sessionService.Login(r.Context(), current.ID, req.Username, req.Role, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues(string(s.User.Role)).Inc()
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Verify handles POST /api/v1/session/verify
func (h *SessionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	current := middleware.MustGetChatSession(r.Context())
	s, err := h.sessionService.VerifyCode(r.Context(), current.ID, req.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := middleware.MustGetChatSession(r.Context())
	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Transcript handles GET /api/v1/transcript
func (h *SessionHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	s := middleware.MustGetChatSession(r.Context())
	response.JSON(w, http.StatusOK, response.TranscriptResponseFromModel(s.Transcript))
}
