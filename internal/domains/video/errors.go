package video

import (
	"errors"
	"net/http"
)

var ErrVideoNotFound = errors.New("video not found")

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrVideoNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
