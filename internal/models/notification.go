// internal/models/notification.go
package models

// NotificationKind selects the toast styling.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

// Notification is a transient, non-blocking message shown once on the next render.
// Key is a localization key so the text follows the visitor's language.
type Notification struct {
	Kind   NotificationKind  `json:"kind"`
	Key    string            `json:"key"`
	Params map[string]string `json:"params,omitempty"`
}
