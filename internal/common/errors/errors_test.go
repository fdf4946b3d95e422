package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	errors []map[string]interface{}
	warns  []map[string]interface{}
}

func (r *recordingLogger) Error(_ string, fields map[string]interface{}) {
	r.errors = append(r.errors, fields)
}

func (r *recordingLogger) Warn(_ string, fields map[string]interface{}) {
	r.warns = append(r.warns, fields)
}

func TestStandardError_Wrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("list: %w", NewUpstreamUnavailableError("list_internships", cause))

	assert.True(t, HasCode(err, ErrCodeUpstreamUnavailable))
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "UPSTREAM_UNAVAILABLE")
}

func TestNewUpstreamStatusError_Retryable(t *testing.T) {
	assert.True(t, NewUpstreamStatusError("recommend", 503, "").Retryable)
	assert.False(t, NewUpstreamStatusError("recommend", 404, "").Retryable)
	assert.Equal(t, 404, NewUpstreamStatusError("recommend", 404, "").StatusCode)
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)

	std := NewRequestPendingError("delete")
	assert.Same(t, std, Normalize(fmt.Errorf("wrapped: %w", std)))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeUpstreamStatus))
	assert.Equal(t, "SESSION", GetErrorCategory(ErrCodeSessionStoreFailed))
	assert.Equal(t, "CONCURRENCY", GetErrorCategory(ErrCodeRequestPending))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestErrorHandler_HandleViewError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		actionKey string
		wantKey   string
		wantWarn  bool
	}{
		{
			name:      "upstream failure uses the action key",
			err:       NewUpstreamStatusError("add_internship", 500, `{"error":"db down"}`),
			actionKey: "notify.create_failed",
			wantKey:   "notify.create_failed",
		},
		{
			name:      "pending request is a warning",
			err:       NewRequestPendingError("delete"),
			actionKey: "notify.delete_failed",
			wantKey:   "notify.pending",
			wantWarn:  true,
		},
		{
			name:      "session failure has its own message",
			err:       NewSessionStoreError("save", stderrors.New("redis down")),
			actionKey: "notify.delete_failed",
			wantKey:   "notify.session_error",
		},
		{
			name:    "no action key falls back to generic",
			err:     stderrors.New("boom"),
			wantKey: "notify.generic_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			h := NewErrorHandler(log)

			key := h.HandleViewError(context.Background(), "admin", "act", tt.actionKey, tt.err)
			assert.Equal(t, tt.wantKey, key)
			if tt.wantWarn {
				assert.Len(t, log.warns, 1)
				assert.Empty(t, log.errors)
			} else {
				assert.Len(t, log.errors, 1)
				assert.Equal(t, "admin", log.errors[0]["view"])
			}
		})
	}
}
