package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wsentinels/sentinelchat/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeMalformedCode      = "MALFORMED_CODE"
	CodeRoleForbidden      = "ROLE_FORBIDDEN"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeSessionNotFound, "Session not found or expired"}}
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Operation not allowed in the current session phase"}}
	case errors.Is(err, model.ErrMissingCredentials):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingCredentials, "Username and password are required"}}
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, "Unknown role"}}
	case errors.Is(err, model.ErrMalformedCode):
		return &httpError{http.StatusBadRequest, APIError{CodeMalformedCode, "Verification code must be exactly 6 digits"}}
	case errors.Is(err, model.ErrRoleForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeRoleForbidden, "Your role does not permit this action"}}
	case errors.Is(err, model.ErrPlayerIndexOutOfRange):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidQueryStatus):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidStatus, "Unknown query status"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
