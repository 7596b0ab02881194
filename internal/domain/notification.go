package domain

// NotificationState is the visibility of the transient "saved" acknowledgment.
type NotificationState struct {
	Visible bool `json:"visible"`
}
