package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wsentinels/sentinelchat/internal/api/handler"
	"github.com/wsentinels/sentinelchat/internal/api/middleware"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/services/chat"
	"github.com/wsentinels/sentinelchat/internal/services/querylog"
	"github.com/wsentinels/sentinelchat/internal/services/roster"
	"github.com/wsentinels/sentinelchat/internal/services/session"
	"github.com/wsentinels/sentinelchat/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Storage         storage.Storage
	SessionService  *session.Service
	RosterService   *roster.Service
	QueryLogService *querylog.Service
	Orchestrator    *chat.Orchestrator
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.SessionService)
	chatHandler := handler.NewChatHandler(cfg.Orchestrator, cfg.SessionService)
	rosterHandler := handler.NewRosterHandler(cfg.RosterService, cfg.Orchestrator)
	queryLogHandler := handler.NewQueryLogHandler(cfg.QueryLogService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Storage)
	dashboardMiddleware := middleware.RequirePhase(model.PhaseDashboard)
	rosterWriterMiddleware := middleware.RequireRosterWriter()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	metricsMiddleware := middleware.Metrics()

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(metricsMiddleware)

	// Starting a session needs no token
	api.HandleFunc("/sessions", sessionHandler.Begin).Methods(http.MethodPost)

	// Session routes require a token but no particular phase
	sess := api.PathPrefix("/session").Subrouter()
	sess.Use(authMiddleware)
	sess.HandleFunc("/login", sessionHandler.Login).Methods(http.MethodPost)
	sess.HandleFunc("/verify", sessionHandler.Verify).Methods(http.MethodPost)
	sess.HandleFunc("", sessionHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else is gated on a fully signed-in session. The subrouter
	// has no matcher of its own so it must stay registered last; mux does
	// not backtrack past it.
	dashboard := api.NewRoute().Subrouter()
	dashboard.Use(authMiddleware)
	dashboard.Use(dashboardMiddleware)
	dashboard.HandleFunc("/transcript", sessionHandler.Transcript).Methods(http.MethodGet)
	dashboard.HandleFunc("/chat", chatHandler.Submit).Methods(http.MethodPost)
	dashboard.HandleFunc("/queries", queryLogHandler.List).Methods(http.MethodGet)
	dashboard.HandleFunc("/queries/tail", queryLogHandler.UpdateTail).Methods(http.MethodPatch)
	dashboard.HandleFunc("/queries/export", queryLogHandler.Export).Methods(http.MethodGet)
	dashboard.HandleFunc("/roster", rosterHandler.List).Methods(http.MethodGet)

	// Roster mutation is additionally gated on role
	rosterWrite := dashboard.NewRoute().Subrouter()
	rosterWrite.Use(rosterWriterMiddleware)
	rosterWrite.HandleFunc("/roster/{index}", rosterHandler.Update).Methods(http.MethodPatch)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
