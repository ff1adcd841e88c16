package route

import (
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrUnauthenticated   = errors.New("unauthorized")
	ErrAccessDenied      = errors.New("access denied")
	ErrBadRequest        = errors.New("bad request")
	ErrComponentNotFound = errors.New("component not found")
	ErrDuplicateRoute    = errors.New("duplicate route")
)

// StatusCode maps an activation error to the HTTP status sent to the client.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// message is what the client sees; internal failures are not detailed.
func message(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return ErrUnauthenticated.Error()
	case errors.Is(err, ErrAccessDenied):
		return ErrAccessDenied.Error()
	case errors.Is(err, ErrBadRequest):
		return err.Error()
	default:
		return "internal error"
	}
}
