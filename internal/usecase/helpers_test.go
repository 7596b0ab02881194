package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lumiere-storefront/pkg/kvstore"
)

// recordingStore is an in-memory KeyValueStore that counts writes and can be
// told to fail them.
type recordingStore struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
	setErr error
	getErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string]string)}
}

func (s *recordingStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", kvstore.ErrNotFound
	}
	return v, nil
}

func (s *recordingStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *recordingStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

var errQuotaExceeded = errors.New("quota exceeded")

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
