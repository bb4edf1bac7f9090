// Package controllers holds the HTTP handlers. Controllers only decode,
// dispatch to a service, and encode; no matching logic lives here.
package controllers

import (
	"errors"
	"net/http"

	"songswipe_server/services"
)

// statusForError maps the service error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
