package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "internmatch-web/internal/common/errors"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/models"

	"github.com/google/uuid"
)

// Config controls the session cookie and lifetimes.
type Config struct {
	CookieName string
	TTL        time.Duration // idle lifetime, refreshed on every visit; 0 keeps sessions until the store drops them
	PendingTTL time.Duration
	Secure     bool
}

// Manager binds requests to sessions in a Store.
type Manager struct {
	store  Store
	config Config
	logger logger.Logger
}

func NewManager(store Store, config Config, log logger.Logger) *Manager {
	if config.CookieName == "" {
		config.CookieName = "im_session"
	}
	if config.PendingTTL <= 0 {
		config.PendingTTL = 15 * time.Second
	}
	return &Manager{
		store:  store,
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// Store exposes the backing store for readiness checks.
func (m *Manager) Store() Store {
	return m.store
}

// Load returns the visitor's session, creating one (and setting the cookie) when
// the request carries no usable id.
func (m *Manager) Load(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Handle, error) {
	if c, err := r.Cookie(m.config.CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			h := m.handle(id.String())
			if err := h.touch(ctx); err != nil {
				return nil, err
			}
			if m.config.TTL > 0 {
				m.setCookie(w, h.id)
			}
			return h, nil
		}
	}

	id := uuid.NewString()
	h := m.handle(id)
	now := time.Now().UTC()
	if err := h.Set(ctx, KeyMeta, models.Session{ID: id, CreatedAt: now, LastActivity: now}); err != nil {
		return nil, err
	}

	m.setCookie(w, id)

	m.logger.Debug("Session created", map[string]interface{}{"sessionId": id})
	return h, nil
}

// setCookie issues the session cookie. With a TTL its MaxAge matches the
// store's idle expiry, so both are pushed forward together.
func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     m.config.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.config.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.config.TTL > 0 {
		cookie.MaxAge = int(m.config.TTL.Seconds())
	}
	http.SetCookie(w, cookie)
}

func (m *Manager) handle(id string) *Handle {
	return &Handle{id: id, store: m.store, pendingTTL: m.config.PendingTTL}
}

// Handle is one visitor's session for the duration of a request.
type Handle struct {
	id         string
	store      Store
	pendingTTL time.Duration
}

func (h *Handle) ID() string {
	return h.id
}

func (h *Handle) touch(ctx context.Context) error {
	var meta models.Session
	ok, err := h.Get(ctx, KeyMeta, &meta)
	if err != nil {
		return err
	}
	if !ok {
		meta = models.Session{ID: h.id, CreatedAt: time.Now().UTC()}
	}
	meta.UpdateActivity()
	return h.Set(ctx, KeyMeta, meta)
}

// Get decodes field into dst. ok is false when the field is absent.
func (h *Handle) Get(ctx context.Context, field string, dst interface{}) (bool, error) {
	data, ok, err := h.store.Load(ctx, h.id, field)
	if err != nil {
		return false, apperrors.NewSessionStoreError("load "+field, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, apperrors.NewSessionStoreError("decode "+field, err)
	}
	return true, nil
}

// Set replaces field with v.
func (h *Handle) Set(ctx context.Context, field string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewSessionStoreError("encode "+field, err)
	}
	if err := h.store.Save(ctx, h.id, field, data); err != nil {
		return apperrors.NewSessionStoreError("save "+field, err)
	}
	return nil
}

func (h *Handle) Clear(ctx context.Context, fields ...string) error {
	if err := h.store.Remove(ctx, h.id, fields...); err != nil {
		return apperrors.NewSessionStoreError("remove", err)
	}
	return nil
}

// Notify queues a notification for the next render, replacing any unread one.
func (h *Handle) Notify(ctx context.Context, kind models.NotificationKind, key string, params map[string]string) error {
	return h.Set(ctx, KeyNotification, models.Notification{Kind: kind, Key: key, Params: params})
}

// TakeNotification returns and clears the queued notification.
func (h *Handle) TakeNotification(ctx context.Context) (*models.Notification, error) {
	var n models.Notification
	ok, err := h.Get(ctx, KeyNotification, &n)
	if err != nil || !ok {
		return nil, err
	}
	if err := h.Clear(ctx, KeyNotification); err != nil {
		return nil, err
	}
	return &n, nil
}

// Guard marks action as in flight for this session. The returned release must
// be called once the action completes. A second Guard for the same action
// before release fails with a REQUEST_PENDING error.
func (h *Handle) Guard(ctx context.Context, action string) (func(), error) {
	ok, err := h.store.AcquirePending(ctx, h.id, action, h.pendingTTL)
	if err != nil {
		return nil, apperrors.NewSessionStoreError("acquire "+action, err)
	}
	if !ok {
		return nil, apperrors.NewRequestPendingError(action)
	}
	return func() {
		// release outlives a cancelled request context
		_ = h.store.ReleasePending(context.WithoutCancel(ctx), h.id, action)
	}, nil
}

type ctxKey struct{}

// WithContext attaches h to ctx.
func WithContext(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, ctxKey{}, h)
}

// FromContext returns the request's session.
func FromContext(ctx context.Context) (*Handle, error) {
	h, ok := ctx.Value(ctxKey{}).(*Handle)
	if !ok || h == nil {
		return nil, fmt.Errorf("no session in context")
	}
	return h, nil
}
