package v1

import (
	"net/http"

	"lumiere-storefront/internal/usecase"
)

// RegisterRoutes mounts the storefront session API on mux.
func RegisterRoutes(mux *http.ServeMux, wishlist *usecase.WishlistStore, analytics *usecase.AnalyticsLog, notification *usecase.NotificationSignal) {
	wishlistHandler := NewWishlistHandler(wishlist, notification)
	analyticsHandler := NewAnalyticsHandler(analytics)
	notificationHandler := NewNotificationHandler(notification)

	// Wishlist
	mux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.GetWishlist)
	mux.HandleFunc("GET /api/v1/wishlist/count", wishlistHandler.Count)
	mux.HandleFunc("GET /api/v1/wishlist/items/{productId}", wishlistHandler.Contains)
	mux.HandleFunc("POST /api/v1/wishlist", wishlistHandler.AddToWishlist)
	mux.HandleFunc("DELETE /api/v1/wishlist/items/{productId}", wishlistHandler.RemoveFromWishlist)
	mux.HandleFunc("DELETE /api/v1/wishlist", wishlistHandler.ClearWishlist)

	// Analytics
	mux.HandleFunc("POST /api/v1/analytics/events", analyticsHandler.Track)
	mux.HandleFunc("GET /api/v1/analytics/events", analyticsHandler.ListEvents)
	mux.HandleFunc("POST /api/v1/analytics/page-views", analyticsHandler.TrackPageView)
	mux.HandleFunc("POST /api/v1/analytics/purchases", analyticsHandler.TrackPurchase)
	mux.HandleFunc("GET /api/v1/analytics/summary", analyticsHandler.GetSummary)
	mux.HandleFunc("PUT /api/v1/analytics/user", analyticsHandler.SetUser)

	// Notification
	mux.HandleFunc("GET /api/v1/notification", notificationHandler.GetState)
	mux.HandleFunc("POST /api/v1/notification/show", notificationHandler.Show)
	mux.HandleFunc("POST /api/v1/notification/hide", notificationHandler.Hide)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)
}
