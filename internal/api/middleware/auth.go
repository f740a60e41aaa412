package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wsentinels/sentinelchat/internal/api/apierr"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/storage"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth creates authentication middleware. The bearer token is the session
// id issued when the session was started; the loaded session is stored in
// the request context.
func Auth(store storage.Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := store.GetSession(r.Context(), model.SessionID(token))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePhase rejects requests whose session has not reached the given
// phase. Applied after Auth.
func RequirePhase(phase model.SessionPhase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := MustGetChatSession(r.Context())
			if session.Phase != phase {
				apierr.WriteError(w, model.ErrInvalidTransition)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRosterWriter rejects requests from sessions whose role may not
// mutate player records. Applied after Auth.
func RequireRosterWriter() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := MustGetChatSession(r.Context())
			if !session.User.Role.CanUpdateRoster() {
				apierr.WriteError(w, model.ErrRoleForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetChatSession returns the session from the request context
func GetChatSession(ctx context.Context) *model.ChatSession {
	session, _ := ctx.Value(sessionContextKey).(*model.ChatSession)
	return session
}

// MustGetChatSession returns the session or panics
func MustGetChatSession(ctx context.Context) *model.ChatSession {
	session := GetChatSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
