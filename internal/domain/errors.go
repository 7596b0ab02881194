package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized   = errors.New("component not initialized")
	ErrInvalidCandidate = errors.New("wishlist candidate requires a productId")
)

// NotInitializedError is raised when a component is used before it was wired.
// It indicates a bug in application setup, not a runtime condition.
type NotInitializedError struct {
	Component string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s: %s must be constructed at application start", ErrNotInitialized, e.Component)
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}

// MustBeInitialized panics with a NotInitializedError when ok is false.
func MustBeInitialized(ok bool, component string) {
	if !ok {
		panic(&NotInitializedError{Component: component})
	}
}
