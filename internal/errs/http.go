package errs

import (
	"errors"
	"net/http"
)

// HTTPStatus maps an error to the status code the API layer should answer
// with. Unrecognized errors fall back to 500 so internal failures never
// masquerade as client mistakes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
