package category

import (
	"errors"
	"net/http"
)

var ErrCategoryNotFound = errors.New("category not found")

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
