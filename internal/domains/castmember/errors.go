package castmember

import (
	"errors"
	"net/http"
)

var ErrCastMemberNotFound = errors.New("cast member not found")

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCastMemberNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
