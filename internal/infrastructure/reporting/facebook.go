package reporting

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lumiere-storefront/internal/domain"

	"github.com/goccy/go-json"
)

const defaultGraphURL = "https://graph.facebook.com"

// HashSHA256 returns a hex-encoded SHA256 hash of the normalized input string.
func HashSHA256(input string) string {
	if input == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// CAPIClient reports storefront events to the Facebook Conversions API.
type CAPIClient struct {
	pixelID     string
	accessToken string
	apiVersion  string
	baseURL     string
	httpClient  *http.Client
}

// NewCAPIClient creates a new Facebook CAPI client
func NewCAPIClient(pixelID, accessToken, apiVersion string, timeout time.Duration) (*CAPIClient, error) {
	if pixelID == "" || accessToken == "" {
		return nil, fmt.Errorf("facebook pixel id and access token are required")
	}
	return &CAPIClient{
		pixelID:     pixelID,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		baseURL:     defaultGraphURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// UserData represents the user information for event matching
type UserData struct {
	ExternalID string `json:"external_id,omitempty"` // SHA256 hashed user id
}

// CustomData carries the event payload Facebook understands
type CustomData struct {
	Currency    string        `json:"currency,omitempty"`
	Value       float64       `json:"value,omitempty"`
	ContentName string        `json:"content_name,omitempty"`
	ContentIDs  []string      `json:"content_ids,omitempty"`
	Contents    []ContentItem `json:"contents,omitempty"`
	NumItems    int           `json:"num_items,omitempty"`
	OrderID     string        `json:"order_id,omitempty"`
}

// ContentItem represents individual product in the order
type ContentItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"item_price,omitempty"`
}

// Event represents a single CAPI event
type Event struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	ActionSource   string     `json:"action_source"`
	EventSourceURL string     `json:"event_source_url,omitempty"`
	UserData       UserData   `json:"user_data"`
	CustomData     CustomData `json:"custom_data,omitempty"`
	EventID        string     `json:"event_id,omitempty"`
}

// EventPayload is the request body for CAPI
type EventPayload struct {
	Data []Event `json:"data"`
}

// Report implements domain.Reporter. It makes a single attempt; callers
// treat a failure as lost.
func (c *CAPIClient) Report(eventName string, data map[string]interface{}) error {
	return c.SendEvent(buildCAPIEvent(eventName, data, time.Now()))
}

// SendEvent sends a single event to Facebook CAPI
func (c *CAPIClient) SendEvent(event Event) error {
	payload := EventPayload{
		Data: []Event{event},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/events?access_token=%s",
		c.baseURL, c.apiVersion, c.pixelID, c.accessToken)

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("CAPI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("CAPI error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// buildCAPIEvent maps a storefront event onto the CAPI standard events.
// Unknown names are sent as custom events under their own name.
func buildCAPIEvent(eventName string, data map[string]interface{}, now time.Time) Event {
	event := Event{
		EventName:    capiEventName(eventName),
		EventTime:    now.Unix(),
		ActionSource: "website",
	}

	if page, ok := data[domain.PageViewKeyPage].(string); ok {
		event.EventSourceURL = page
	}
	if userID, ok := data[domain.ForwardKeyUserID].(string); ok {
		event.UserData.ExternalID = HashSHA256(userID)
	}

	if eventName == domain.EventPurchase {
		orderID, _ := data[domain.PurchaseKeyTransactionID].(string)
		currency, _ := data[domain.PurchaseKeyCurrency].(string)
		value, _ := data[domain.PurchaseKeyValue].(float64)
		items := contentItems(data[domain.PurchaseKeyItems])

		event.EventID = orderID
		event.CustomData = CustomData{
			Currency:   currency,
			Value:      value,
			OrderID:    orderID,
			Contents:   items,
			NumItems:   len(items),
			ContentIDs: extractContentIDs(items),
		}
	}
	return event
}

func capiEventName(eventName string) string {
	switch eventName {
	case domain.EventPageView:
		return "PageView"
	case domain.EventPurchase:
		return "Purchase"
	default:
		return eventName
	}
}

func contentItems(v interface{}) []ContentItem {
	items, ok := v.([]domain.PurchaseItem)
	if !ok {
		return nil
	}
	out := make([]ContentItem, len(items))
	for i, item := range items {
		out[i] = ContentItem{
			ID:       item.ProductID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return out
}

func extractContentIDs(items []ContentItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
