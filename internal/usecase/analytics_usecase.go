package usecase

import (
	"math"
	"reflect"
	"sync"
	"time"

	"lumiere-storefront/internal/domain"
	"lumiere-storefront/pkg/logger"
	"lumiere-storefront/pkg/utils"
)

// AnalyticsLog is the session's append-only event history. Aggregates are
// computed from the full log on every call.
type AnalyticsLog struct {
	mu        sync.Mutex
	events    []domain.AnalyticsEvent
	userID    string
	currency  string
	forwarder domain.EventForwarder

	now   func() time.Time
	newID func() string
}

// NewAnalyticsLog creates an empty log. forwarder may be nil, in which case
// events stay local.
func NewAnalyticsLog(currency string, forwarder domain.EventForwarder) *AnalyticsLog {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &AnalyticsLog{
		currency:  currency,
		forwarder: forwarder,
		now:       time.Now,
		newID:     utils.GenerateID,
	}
}

// SetUserID attaches userID to events recorded from now on. Empty means anonymous.
func (l *AnalyticsLog) SetUserID(userID string) {
	l.mustInit()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.userID = userID
}

// Track records an event and hands a copy to the forwarder, if any.
// The forwarded copy carries the session user id under domain.ForwardKeyUserID.
func (l *AnalyticsLog) Track(eventName string, data map[string]interface{}) domain.AnalyticsEvent {
	l.mustInit()
	l.mu.Lock()
	event := domain.AnalyticsEvent{
		ID:        l.newID(),
		Event:     eventName,
		Timestamp: l.now(),
		UserID:    l.userID,
		Data:      copyData(data),
	}
	l.events = append(l.events, event)
	l.mu.Unlock()

	forwarded := copyData(event.Data)
	if event.UserID != "" {
		forwarded[domain.ForwardKeyUserID] = event.UserID
	}
	l.forward(eventName, forwarded)
	return copyEvent(event)
}

func (l *AnalyticsLog) TrackPageView(page string) domain.AnalyticsEvent {
	return l.Track(domain.EventPageView, map[string]interface{}{
		domain.PageViewKeyPage: page,
	})
}

func (l *AnalyticsLog) TrackPurchase(orderID string, amount float64, items []domain.PurchaseItem) domain.AnalyticsEvent {
	return l.Track(domain.EventPurchase, map[string]interface{}{
		domain.PurchaseKeyTransactionID: orderID,
		domain.PurchaseKeyValue:         amount,
		domain.PurchaseKeyCurrency:      l.currency,
		domain.PurchaseKeyItems:         append(make([]domain.PurchaseItem, 0, len(items)), items...),
	})
}

// Summary aggregates the log. A purchase whose value is missing or not a
// number still counts as a purchase but adds nothing to revenue.
func (l *AnalyticsLog) Summary() domain.AnalyticsSummary {
	l.mustInit()
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := domain.AnalyticsSummary{TotalEvents: len(l.events)}
	for _, e := range l.events {
		switch e.Event {
		case domain.EventPageView:
			summary.PageViews++
		case domain.EventPurchase:
			summary.Purchases++
			if v, ok := numericValue(e.Data[domain.PurchaseKeyValue]); ok {
				summary.Revenue += v
			}
		}
	}
	return summary
}

// Events returns a copy of the log in recording order.
func (l *AnalyticsLog) Events() []domain.AnalyticsEvent {
	l.mustInit()
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.AnalyticsEvent, len(l.events))
	for i, e := range l.events {
		out[i] = copyEvent(e)
	}
	return out
}

func (l *AnalyticsLog) forward(eventName string, data map[string]interface{}) {
	if l.forwarder == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Debug().Interface("panic", r).Str("event", eventName).Msg("Event forward panicked")
		}
	}()
	l.forwarder.Forward(eventName, data)
}

func (l *AnalyticsLog) mustInit() {
	domain.MustBeInitialized(l != nil, "analytics log")
}

// copyData deep-copies data so a recorded event shares no map or slice
// with its callers.
func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return cloneReflect(reflect.ValueOf(v)).Interface()
}

// cloneReflect copies maps, slices and the values behind interfaces
// recursively. Pointers and struct fields are not followed.
func cloneReflect(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneReflect(v.Index(i)))
		}
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneReflect(v.Elem()))
		return out
	}
	return v
}

func copyEvent(e domain.AnalyticsEvent) domain.AnalyticsEvent {
	e.Data = copyData(e.Data)
	return e
}

func numericValue(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case interface{ Float64() (float64, error) }:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
