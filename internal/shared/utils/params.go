package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseUUIDList parses a comma-separated id list ("a,b,c") as used by
// bulk delete and relation filters.
func ParseUUIDList(s string) ([]uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseBoolPtr parses an optional boolean query parameter.
// Empty means absent (nil).
func ParseBoolPtr(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", s)
	}
	return &b, nil
}
