package app

import (
	"lumiere-storefront/internal/domain"
	"lumiere-storefront/internal/usecase"
)

// Core holds the session's state containers. Each is constructed once at
// startup and handed to whatever needs it.
type Core struct {
	wishlist     *usecase.WishlistStore
	analytics    *usecase.AnalyticsLog
	notification *usecase.NotificationSignal
}

func NewCore(wishlist *usecase.WishlistStore, analytics *usecase.AnalyticsLog, notification *usecase.NotificationSignal) *Core {
	return &Core{
		wishlist:     wishlist,
		analytics:    analytics,
		notification: notification,
	}
}

// Wishlist panics with a *domain.NotInitializedError if the store was never wired.
func (c *Core) Wishlist() *usecase.WishlistStore {
	domain.MustBeInitialized(c != nil && c.wishlist != nil, "wishlist store")
	return c.wishlist
}

// Analytics panics with a *domain.NotInitializedError if the log was never wired.
func (c *Core) Analytics() *usecase.AnalyticsLog {
	domain.MustBeInitialized(c != nil && c.analytics != nil, "analytics log")
	return c.analytics
}

// Notification panics with a *domain.NotInitializedError if the signal was never wired.
func (c *Core) Notification() *usecase.NotificationSignal {
	domain.MustBeInitialized(c != nil && c.notification != nil, "notification signal")
	return c.notification
}
