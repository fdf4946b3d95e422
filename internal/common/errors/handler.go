// internal/common/errors/handler.go
package errors

import (
	"context"

	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/common/metrics"
)

// ErrorHandler turns view-level failures into a logged event plus the
// catalog key of the notification the visitor should see.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleViewError logs err and returns the notification key for the failed action.
// The action's own key wins for upstream failures so each view can say what failed.
func (h *ErrorHandler) HandleViewError(ctx context.Context, view, action, actionKey string, err error) string {
	stdErr := Normalize(err)

	var log Logger = h.logger
	if l := logger.FromContext(ctx, nil); l != nil {
		log = l
	}

	fields := map[string]interface{}{
		"view":          view,
		"action":        action,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if stdErr.StatusCode != 0 {
		fields["upstreamStatus"] = stdErr.StatusCode
	}

	metrics.ViewActionsFailed.WithLabelValues(view, action, string(stdErr.Code)).Inc()

	if stdErr.Code == ErrCodeRequestPending {
		log.Warn("Duplicate request ignored", fields)
		return "notify.pending"
	}

	log.Error("View action failed", fields)

	if stdErr.Code == ErrCodeSessionStoreFailed {
		return "notify.session_error"
	}
	if actionKey == "" {
		return "notify.generic_error"
	}
	return actionKey
}
