package handler

import (
	"net/http"

	"github.com/wsentinels/sentinelchat/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeSessionNotFound    = apierr.CodeSessionNotFound
	CodeInvalidTransition  = apierr.CodeInvalidTransition
	CodeMissingCredentials = apierr.CodeMissingCredentials
	CodeInvalidRole        = apierr.CodeInvalidRole
	CodeMalformedCode      = apierr.CodeMalformedCode
	CodeRoleForbidden      = apierr.CodeRoleForbidden
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeInvalidStatus      = apierr.CodeInvalidStatus
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
