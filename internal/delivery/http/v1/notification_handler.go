package v1

import (
	"net/http"

	"lumiere-storefront/internal/usecase"
	"lumiere-storefront/pkg/utils"
)

type NotificationHandler struct {
	notification *usecase.NotificationSignal
}

func NewNotificationHandler(notification *usecase.NotificationSignal) *NotificationHandler {
	return &NotificationHandler{notification: notification}
}

// GET /api/v1/notification
func (h *NotificationHandler) GetState(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.notification.State())
}

// POST /api/v1/notification/show
func (h *NotificationHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.notification.Show()
	utils.WriteJSON(w, http.StatusOK, h.notification.State())
}

// POST /api/v1/notification/hide
func (h *NotificationHandler) Hide(w http.ResponseWriter, r *http.Request) {
	h.notification.Hide()
	utils.WriteJSON(w, http.StatusOK, h.notification.State())
}
