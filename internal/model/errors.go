package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidTransition  = errors.New("operation not valid in current session phase")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidRole        = errors.New("unknown role")
	ErrMalformedCode      = errors.New("verification code must be 6 digits")

	// Authorization errors
	ErrRoleForbidden = errors.New("role is not permitted to update the roster")

	// Roster errors
	ErrPlayerIndexOutOfRange = errors.New("player index out of range")

	// Query log errors
	ErrInvalidQueryStatus = errors.New("unknown query status")
)
