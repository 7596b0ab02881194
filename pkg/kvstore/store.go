package kvstore

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// KeyValueStore defines durable string storage keyed by string
type KeyValueStore interface {
	// Get retrieves the value stored under key
	// Returns ErrNotFound if nothing is stored
	Get(key string) (string, error)

	// Set stores value under key, overwriting any prior value
	Set(key, value string) error
}
