package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the core flows. Services return these (possibly
// wrapped); handlers map them to HTTP statuses via Status.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailInUse         = errors.New("email already in use")
	ErrNotFound           = errors.New("not found")
	ErrSelfLike           = errors.New("cannot like yourself")
	ErrEmptyMessage       = errors.New("message body is empty")
	ErrNotParticipant     = errors.New("sender is not a participant of the conversation")
)

// Status maps service errors onto the HTTP surface. Referenced entities that
// are missing map to 404, auth failures to 403, bad input to 400, everything
// else is a store failure and stays a generic 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrEmailInUse),
		errors.Is(err, ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSelfLike), errors.Is(err, ErrEmptyMessage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
