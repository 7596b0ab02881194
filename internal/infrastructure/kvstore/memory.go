package kvstore

import (
	"lumiere-storefront/pkg/kvstore"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	store *gocache.Cache
}

// NewMemoryStore creates an in-process key-value store.
// Values never expire; the store lives as long as the process.
func NewMemoryStore() kvstore.KeyValueStore {
	return &memoryStore{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *memoryStore) Get(key string) (string, error) {
	val, found := s.store.Get(key)
	if !found {
		return "", kvstore.ErrNotFound
	}
	str, ok := val.(string)
	if !ok {
		return "", kvstore.ErrNotFound
	}
	return str, nil
}

func (s *memoryStore) Set(key, value string) error {
	s.store.Set(key, value, gocache.NoExpiration)
	return nil
}
