package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"lumiere-storefront/internal/domain"

	"github.com/goccy/go-json"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serum = domain.WishlistCandidate{ProductID: "p1", Name: "Serum", Price: 68, Image: "/serum.png"}

func newTestWishlist(t *testing.T, kv *recordingStore) *WishlistStore {
	t.Helper()
	s, err := NewWishlistStore(kv, "")
	require.NoError(t, err)
	s.now = fixedClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.newID = sequentialIDs("wl")
	return s
}

func TestNewWishlistStore_NilStore(t *testing.T) {
	s, err := NewWishlistStore(nil, "")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestWishlistStore_NilReceiverPanics(t *testing.T) {
	var s *WishlistStore
	want := (&domain.NotInitializedError{Component: "wishlist store"}).Error()
	assert.PanicsWithError(t, want, func() { s.Count() })
	assert.PanicsWithError(t, want, func() { s.Add(serum) })
}

func TestWishlistStore_HydrateAbsentStartsEmpty(t *testing.T) {
	kv := newRecordingStore()
	s := newTestWishlist(t, kv)

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, kv.writes(), "hydration must not write")
}

func TestWishlistStore_HydrateMalformedPayload(t *testing.T) {
	payloads := map[string]string{
		"truncated":    `[{"productId":"p1"`,
		"object":       `{"productId":"p1"}`,
		"bad time":     `[{"id":"1","productId":"p1","addedAt":"yesterday"}]`,
		"wrong type":   `[{"id":"1","productId":"p1","price":"cheap"}]`,
		"plain string": `hello`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			kv := newRecordingStore()
			kv.values[domain.WishlistStorageKey] = payload

			s := newTestWishlist(t, kv)
			assert.Equal(t, 0, s.Count())
		})
	}
}

func TestWishlistStore_HydrateNullPayload(t *testing.T) {
	kv := newRecordingStore()
	kv.values[domain.WishlistStorageKey] = "null"

	s := newTestWishlist(t, kv)
	assert.Equal(t, 0, s.Count())
}

func TestWishlistStore_HydrateReadError(t *testing.T) {
	kv := newRecordingStore()
	kv.getErr = errors.New("storage unavailable")

	s := newTestWishlist(t, kv)
	assert.Equal(t, 0, s.Count())
}

func TestWishlistStore_HydrateDropsDuplicateProducts(t *testing.T) {
	kv := newRecordingStore()
	kv.values[domain.WishlistStorageKey] = `[
		{"id":"a","productId":"p1","name":"Serum","price":68,"image":"/serum.png","addedAt":"2026-03-01T09:00:00Z"},
		{"id":"b","productId":"p1","name":"Serum v2","price":70,"image":"/serum2.png","addedAt":"2026-03-01T09:00:01Z"},
		{"id":"c","productId":"","name":"ghost","price":0,"image":"","addedAt":"2026-03-01T09:00:02Z"},
		{"id":"d","productId":"p2","name":"Toner","price":32,"image":"/toner.png","addedAt":"2026-03-01T09:00:03Z"}
	]`

	s := newTestWishlist(t, kv)
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "Serum", items[0].Name)
	assert.Equal(t, "p2", items[1].ProductID)
	assert.True(t, items[0].AddedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
}

func TestWishlistStore_AddDuplicateKeepsFirstSnapshot(t *testing.T) {
	kv := newRecordingStore()
	s := newTestWishlist(t, kv)

	assert.True(t, s.Add(serum))
	assert.False(t, s.Add(domain.WishlistCandidate{ProductID: "p1", Name: "Serum Deluxe", Price: 99, Image: "/deluxe.png"}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Serum", items[0].Name)
	assert.Equal(t, 68.0, items[0].Price)
	assert.Equal(t, "/serum.png", items[0].Image)
	assert.Equal(t, "wl-1", items[0].ID)
	assert.Equal(t, 1, kv.writes(), "a duplicate add must not write")
}

func TestWishlistStore_AddPreservesInsertionOrder(t *testing.T) {
	s := newTestWishlist(t, newRecordingStore())

	for _, id := range []string{"p3", "p1", "p2"} {
		s.Add(domain.WishlistCandidate{ProductID: id})
	}

	var got []string
	for _, item := range s.Items() {
		got = append(got, item.ProductID)
	}
	assert.Equal(t, []string{"p3", "p1", "p2"}, got)
}

func TestWishlistStore_PayloadShape(t *testing.T) {
	kv := newRecordingStore()
	s := newTestWishlist(t, kv)
	s.Add(serum)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(kv.values[domain.WishlistStorageKey]), &raw))
	require.Len(t, raw, 1)

	for _, key := range []string{"id", "productId", "name", "price", "image", "addedAt"} {
		assert.Contains(t, raw[0], key)
	}
	addedAt, ok := raw[0]["addedAt"].(string)
	require.True(t, ok, "addedAt must be a string on the wire")
	_, err := time.Parse(time.RFC3339Nano, addedAt)
	assert.NoError(t, err)
}

func TestWishlistStore_RoundTrip(t *testing.T) {
	kv := newRecordingStore()
	first := newTestWishlist(t, kv)

	first.Add(serum)
	first.Add(domain.WishlistCandidate{ProductID: "p2", Name: "Toner", Price: 32, Image: "/toner.png"})
	first.Add(domain.WishlistCandidate{ProductID: "p3", Name: "Cleanser", Price: 24.5, Image: "/cleanser.png"})
	first.Remove("p2")
	want := first.Items()

	second, err := NewWishlistStore(kv, "")
	require.NoError(t, err)
	got := second.Items()

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].ProductID, got[i].ProductID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Price, got[i].Price)
		assert.Equal(t, want[i].Image, got[i].Image)
		assert.False(t, got[i].AddedAt.IsZero())
		assert.True(t, want[i].AddedAt.Equal(got[i].AddedAt))
	}
}

func TestWishlistStore_RemoveAbsentIsNoop(t *testing.T) {
	kv := newRecordingStore()
	s := newTestWishlist(t, kv)
	s.Add(serum)
	before := s.Items()

	assert.False(t, s.Remove("missing"))
	assert.Equal(t, before, s.Items())
	assert.Equal(t, 1, kv.writes())
}

func TestWishlistStore_RemoveAndContains(t *testing.T) {
	s := newTestWishlist(t, newRecordingStore())
	s.Add(serum)
	require.True(t, s.Contains("p1"))

	assert.True(t, s.Remove("p1"))
	assert.False(t, s.Contains("p1"))
	assert.Equal(t, 0, s.Count())
}

func TestWishlistStore_ClearPersistsEmptyList(t *testing.T) {
	kv := newRecordingStore()
	s := newTestWishlist(t, kv)
	s.Add(serum)

	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.JSONEq(t, `[]`, kv.values[domain.WishlistStorageKey])

	reloaded, err := NewWishlistStore(kv, "")
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Count())
}

func TestWishlistStore_WriteFailureKeepsMemoryState(t *testing.T) {
	kv := newRecordingStore()
	kv.setErr = errQuotaExceeded
	s := newTestWishlist(t, kv)

	assert.NotPanics(t, func() {
		assert.True(t, s.Add(serum))
		s.Clear()
		s.Add(serum)
	})
	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Contains("p1"))
	assert.Equal(t, 3, kv.writes())
}

func TestWishlistStore_CustomKey(t *testing.T) {
	kv := newRecordingStore()
	s, err := NewWishlistStore(kv, "guest-wishlist")
	require.NoError(t, err)
	s.Add(serum)

	assert.Contains(t, kv.values, "guest-wishlist")
	assert.NotContains(t, kv.values, domain.WishlistStorageKey)
}

// Property-based test: one item per distinct productId
func TestWishlistStore_PropertyDedup(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("count equals distinct productIds and survives reload", prop.ForAll(
		func(picks []int) bool {
			kv := newRecordingStore()
			s, err := NewWishlistStore(kv, "")
			if err != nil {
				return false
			}

			distinct := make(map[string]struct{})
			for _, p := range picks {
				id := fmt.Sprintf("p%d", p)
				distinct[id] = struct{}{}
				s.Add(domain.WishlistCandidate{ProductID: id, Name: id})
			}
			if s.Count() != len(distinct) {
				return false
			}

			reloaded, err := NewWishlistStore(kv, "")
			if err != nil {
				return false
			}
			return reloaded.Count() == len(distinct)
		},
		gen.SliceOf(gen.IntRange(0, 9)),
	))

	properties.TestingRun(t)
}
