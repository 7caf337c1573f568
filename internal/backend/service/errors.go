package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP layer maps these
// to status codes; nothing below the transport ever sees an http.Status.
var (
	ErrUserExists           = errors.New("service: email already registered")
	ErrUserNotFound         = errors.New("service: user not found")
	ErrInvalidCredentials   = errors.New("service: invalid credentials")
	ErrEmailNotVerified     = errors.New("service: email not verified")
	ErrEmailAlreadyVerified = errors.New("service: email already verified")
	ErrInvalidVerification  = errors.New("service: invalid or expired verification token")
	ErrAccessDenied         = errors.New("service: access denied")

	ErrNotFound       = errors.New("service: not found")
	ErrAlreadyExists  = errors.New("service: already exists")
	ErrCategoryInUse  = errors.New("service: category has arenas or teams attached")
	ErrBadTransition  = errors.New("service: invalid match state transition")
	ErrInvalidRequest = errors.New("service: invalid request")
)
