package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a time-ordered UUIDv7 so ids sort by creation and never
// collide within a clock tick.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
