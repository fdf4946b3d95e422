// Package session keeps per-visitor UI state between requests.
//
// A session is a small set of named JSON fields (the wizard, the admin
// draft, a pending notification, the last recommendation result) stored
// under a random id carried in a cookie.
package session

import (
	"context"
	"time"
)

// Well-known session fields.
const (
	KeyMeta            = "meta"
	KeyWizard          = "wizard"
	KeyAdmin           = "admin"
	KeyNotification    = "notification"
	KeyRecommendations = "recommendations"
)

// Store persists session fields as opaque bytes.
type Store interface {
	// Load returns the field value; ok is false when the session or field is absent.
	Load(ctx context.Context, id, field string) (data []byte, ok bool, err error)
	Save(ctx context.Context, id, field string, data []byte) error
	Remove(ctx context.Context, id string, fields ...string) error

	// AcquirePending sets a marker for action unless one is already set.
	// It reports whether this caller now owns the marker.
	AcquirePending(ctx context.Context, id, action string, ttl time.Duration) (bool, error)
	ReleasePending(ctx context.Context, id, action string) error

	Ping(ctx context.Context) error
}
