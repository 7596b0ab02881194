package v1

import (
	"net/http"
	"strings"

	"lumiere-storefront/internal/domain"
	"lumiere-storefront/internal/usecase"
	"lumiere-storefront/pkg/logger"
	"lumiere-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

type AnalyticsHandler struct {
	analytics *usecase.AnalyticsLog
}

func NewAnalyticsHandler(analytics *usecase.AnalyticsLog) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type TrackRequest struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

type PageViewRequest struct {
	Page string `json:"page"`
}

type PurchaseRequest struct {
	OrderID string                `json:"orderId"`
	Amount  float64               `json:"amount"`
	Items   []domain.PurchaseItem `json:"items"`
}

type UserRequest struct {
	UserID string `json:"userId"`
}

// POST /api/v1/analytics/events
func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid analytics payload")
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Event = strings.TrimSpace(req.Event)
	if req.Event == "" {
		utils.WriteError(w, http.StatusBadRequest, "event is required")
		return
	}

	event := h.analytics.Track(req.Event, req.Data)
	utils.WriteJSON(w, http.StatusCreated, event)
}

// POST /api/v1/analytics/page-views
func (h *AnalyticsHandler) TrackPageView(w http.ResponseWriter, r *http.Request) {
	var req PageViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid analytics payload")
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Page == "" {
		utils.WriteError(w, http.StatusBadRequest, "page is required")
		return
	}

	event := h.analytics.TrackPageView(req.Page)
	utils.WriteJSON(w, http.StatusCreated, event)
}

// POST /api/v1/analytics/purchases
func (h *AnalyticsHandler) TrackPurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid analytics payload")
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.OrderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	event := h.analytics.TrackPurchase(req.OrderID, req.Amount, req.Items)
	utils.WriteJSON(w, http.StatusCreated, event)
}

// GET /api/v1/analytics/summary
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.analytics.Summary())
}

// GET /api/v1/analytics/events?limit=50
// limit keeps the most recent events; 0 or absent returns the whole log.
func (h *AnalyticsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.analytics.Events()
	total := len(events)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 0)
	if limit > 0 && limit < len(events) {
		events = events[len(events)-limit:]
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  total,
	})
}

// PUT /api/v1/analytics/user
func (h *AnalyticsHandler) SetUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid analytics payload")
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	h.analytics.SetUserID(req.UserID)
	utils.WriteJSON(w, http.StatusOK, map[string]string{"userId": req.UserID})
}
