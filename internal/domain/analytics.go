package domain

import (
	"time"
)

// Conventional event names
const (
	EventPageView = "page_view"
	EventPurchase = "purchase"
)

// Purchase data keys
const (
	PurchaseKeyTransactionID = "transaction_id"
	PurchaseKeyValue         = "value"
	PurchaseKeyCurrency      = "currency"
	PurchaseKeyItems         = "items"
	PageViewKeyPage          = "page"
)

// ForwardKeyUserID carries the session user id on data handed to reporting
// sinks. Recorded events keep it in AnalyticsEvent.UserID instead.
const ForwardKeyUserID = "user_id"

// DefaultCurrency is attached to purchase events unless configured otherwise.
const DefaultCurrency = "USD"

// AnalyticsEvent is a single recorded user or business action.
type AnalyticsEvent struct {
	ID        string                 `json:"id"`
	Event     string                 `json:"event"`
	Timestamp time.Time              `json:"timestamp"`
	UserID    string                 `json:"userId,omitempty"`
	Data      map[string]interface{} `json:"data"`
}

// PurchaseItem is one line of a purchase event.
type PurchaseItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// AnalyticsSummary holds the aggregates derived from the event log.
type AnalyticsSummary struct {
	TotalEvents int     `json:"totalEvents"`
	PageViews   int     `json:"pageViews"`
	Purchases   int     `json:"purchases"`
	Revenue     float64 `json:"revenue"`
}

// Reporter forwards events to an external analytics backend.
type Reporter interface {
	Report(eventName string, data map[string]interface{}) error
}

// EventForwarder hands an event to an external sink without blocking.
type EventForwarder interface {
	Forward(eventName string, data map[string]interface{})
}
