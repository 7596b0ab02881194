package v1

import (
	"net/http"

	"lumiere-storefront/internal/domain"
	"lumiere-storefront/internal/usecase"
	"lumiere-storefront/pkg/logger"
	"lumiere-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

type WishlistHandler struct {
	wishlist     *usecase.WishlistStore
	notification *usecase.NotificationSignal
}

func NewWishlistHandler(wishlist *usecase.WishlistStore, notification *usecase.NotificationSignal) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, notification: notification}
}

// GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items := h.wishlist.Items()
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// GET /api/v1/wishlist/count
func (h *WishlistHandler) Count(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]int{"count": h.wishlist.Count()})
}

// GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"inWishlist": h.wishlist.Contains(productID)})
}

// POST /api/v1/wishlist
// Saving a product raises the "saved" notification whether or not it was
// already on the list.
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req domain.WishlistCandidate
	log := logger.WithContext(r.Context())
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid wishlist payload")
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("Rejected wishlist candidate")
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	added := h.wishlist.Add(req)
	h.notification.Show()
	log.Debug().Str("product_id", req.ProductID).Bool("added", added).Msg("Product saved to wishlist")

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, status, map[string]interface{}{
		"added": added,
		"count": h.wishlist.Count(),
	})
}

// DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	removed := h.wishlist.Remove(productID)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
		"count":   h.wishlist.Count(),
	})
}

// DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Clear()
	utils.WriteJSON(w, http.StatusOK, map[string]int{"count": 0})
}
