package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lumiere-storefront/internal/domain"
	"lumiere-storefront/pkg/kvstore"
	"lumiere-storefront/pkg/logger"
	"lumiere-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

// WishlistStore owns the deduplicated, insertion-ordered list of saved
// products and mirrors it to a key-value store after every mutation.
type WishlistStore struct {
	mu    sync.Mutex
	kv    kvstore.KeyValueStore
	key   string
	items []domain.WishlistItem

	now   func() time.Time
	newID func() string
}

// NewWishlistStore creates the store and hydrates it from kv.
// An empty key falls back to domain.WishlistStorageKey.
func NewWishlistStore(kv kvstore.KeyValueStore, key string) (*WishlistStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("wishlist store: key-value store is nil: %w", domain.ErrNotInitialized)
	}
	if key == "" {
		key = domain.WishlistStorageKey
	}

	s := &WishlistStore{
		kv:    kv,
		key:   key,
		now:   time.Now,
		newID: utils.GenerateID,
	}
	s.Hydrate()
	return s, nil
}

// Hydrate replaces the in-memory list with the persisted payload.
// A missing or unreadable payload yields an empty list; it never fails.
func (s *WishlistStore) Hydrate() {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	raw, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logger.Warn().Err(err).Str("key", s.key).Msg("Failed to read wishlist, starting empty")
		}
		return
	}

	items, err := decodeWishlist(raw)
	if err != nil {
		logger.Warn().Err(err).Str("key", s.key).Msg("Failed to parse wishlist, starting empty")
		return
	}
	s.items = items
}

// Add saves a product unless one with the same ProductID is already saved.
// The first snapshot wins; a duplicate never updates it. Reports whether the
// list changed.
func (s *WishlistStore) Add(candidate domain.WishlistCandidate) bool {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(candidate.ProductID) >= 0 {
		return false
	}

	s.items = append(s.items, domain.WishlistItem{
		ID:        s.newID(),
		ProductID: candidate.ProductID,
		Name:      candidate.Name,
		Price:     candidate.Price,
		Image:     candidate.Image,
		AddedAt:   s.now(),
	})
	s.persist()
	return true
}

// Remove drops the item with the given ProductID. Removing an absent product
// is a no-op and skips the write-back.
func (s *WishlistStore) Remove(productID string) bool {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}

	items := make([]domain.WishlistItem, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)
	s.items = items
	s.persist()
	return true
}

func (s *WishlistStore) Contains(productID string) bool {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

// Clear empties the list and persists the empty state.
func (s *WishlistStore) Clear() {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

func (s *WishlistStore) Count() int {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the saved products, oldest first.
func (s *WishlistStore) Items() []domain.WishlistItem {
	s.mustInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *WishlistStore) indexOf(productID string) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// persist writes the full list back. Failures are logged, never returned:
// the in-memory change stands even when storage is unavailable.
func (s *WishlistStore) persist() {
	payload, err := encodeWishlist(s.items)
	if err != nil {
		logger.Error().Err(err).Str("key", s.key).Msg("Failed to encode wishlist")
		return
	}
	if err := s.kv.Set(s.key, payload); err != nil {
		logger.Error().Err(err).Str("key", s.key).Int("items", len(s.items)).Msg("Failed to persist wishlist")
	}
}

func (s *WishlistStore) mustInit() {
	domain.MustBeInitialized(s != nil && s.kv != nil, "wishlist store")
}

func encodeWishlist(items []domain.WishlistItem) (string, error) {
	if items == nil {
		items = []domain.WishlistItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeWishlist parses a persisted payload. Entries without a ProductID and
// repeated ProductIDs are dropped so a hand-edited payload cannot break the
// one-item-per-product rule.
func decodeWishlist(raw string) ([]domain.WishlistItem, error) {
	var decoded []domain.WishlistItem
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	items := make([]domain.WishlistItem, 0, len(decoded))
	seen := make(map[string]struct{}, len(decoded))
	for _, item := range decoded {
		if item.ProductID == "" {
			continue
		}
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}
