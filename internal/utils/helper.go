package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID accepts surrounding whitespace, as form and path values sometimes
// carry it.
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}
