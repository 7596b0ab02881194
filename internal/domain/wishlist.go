package domain

import (
	"time"
)

// WishlistStorageKey is the single key the wishlist payload lives under.
const WishlistStorageKey = "lumiere-wishlist"

// WishlistItem is a saved product. Name, Price and Image are a snapshot taken
// when the product was saved and are never refreshed from the catalog.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	AddedAt   time.Time `json:"addedAt"`
}

// WishlistCandidate is what a caller submits when saving a product.
type WishlistCandidate struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Validate checks the fields required to save a product.
func (c WishlistCandidate) Validate() error {
	if c.ProductID == "" {
		return ErrInvalidCandidate
	}
	return nil
}
