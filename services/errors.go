package services

import "errors"

// Service-level errors, translated to HTTP statuses in handlers.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")

	ErrTradeForbidden = errors.New("trade belongs to another user")

	ErrTradeNotFound = errors.New("trade not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrUserNotFound  = errors.New("user not found")

	// Optional integrations that are not configured.
	ErrChatUnavailable   = errors.New("trade chat is not configured")
	ErrExportUnavailable = errors.New("trade export is not configured")
)
