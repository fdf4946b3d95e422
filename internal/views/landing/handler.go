// internal/views/landing/handler.go
package landing

import (
	"net/http"

	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/session"
	"internmatch-web/internal/web/page"
)

const ViewName = "landing"

type Handler struct {
	config   *Config
	renderer page.Renderer
	logger   logger.Logger
}

func NewHandler(config *Config, renderer page.Renderer, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		renderer: renderer,
		logger:   log.WithFields(map[string]interface{}{"view": ViewName}),
	}
}

// Show renders the static landing page. It makes no upstream calls.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	p := page.New(r, page.RouteHome)
	p.Data = View{Features: Features}

	if sess, err := session.FromContext(r.Context()); err == nil {
		n, err := sess.TakeNotification(r.Context())
		if err != nil {
			h.logger.Warn("failed to read notification", map[string]interface{}{"error": err.Error()})
		}
		p.Notification = n
	}

	if err := h.renderer.Render(w, http.StatusOK, p); err != nil {
		h.logger.Error("render failed", map[string]interface{}{"error": err.Error()})
	}
}
