package usecase

import (
	"sync/atomic"

	"lumiere-storefront/internal/domain"
)

// NotificationSignal is the shared "show the acknowledgment" flag. Auto-hide
// timing belongs to the caller.
type NotificationSignal struct {
	visible atomic.Bool
}

func NewNotificationSignal() *NotificationSignal {
	return &NotificationSignal{}
}

func (n *NotificationSignal) Show() {
	n.mustInit()
	n.visible.Store(true)
}

func (n *NotificationSignal) Hide() {
	n.mustInit()
	n.visible.Store(false)
}

func (n *NotificationSignal) IsVisible() bool {
	n.mustInit()
	return n.visible.Load()
}

func (n *NotificationSignal) State() domain.NotificationState {
	return domain.NotificationState{Visible: n.IsVisible()}
}

func (n *NotificationSignal) mustInit() {
	domain.MustBeInitialized(n != nil, "notification signal")
}
