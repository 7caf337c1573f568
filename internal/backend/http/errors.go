package http

import (
	"errors"
	"net/http"

	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/pkg/slogx"
)

// writeServiceError maps the service sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500 with the detail kept out of the body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		httpxError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrBadTransition):
		httpxError(w, http.StatusBadRequest, "invalid_transition", err)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpxError(w, http.StatusUnauthorized, "invalid_credentials", err)
	case errors.Is(err, service.ErrInvalidVerification):
		httpxError(w, http.StatusUnauthorized, "invalid_token", err)
	case errors.Is(err, service.ErrEmailNotVerified):
		httpxError(w, http.StatusForbidden, "email_not_verified", err)
	case errors.Is(err, service.ErrAccessDenied):
		httpxError(w, http.StatusForbidden, "access_denied", err)
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNotFound):
		httpxError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrEmailAlreadyVerified),
		errors.Is(err, service.ErrCategoryInUse):
		httpxError(w, http.StatusConflict, "conflict", err)
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", slogx.Err(err))
		httpxError(w, http.StatusInternalServerError, "internal", nil)
	}
}
