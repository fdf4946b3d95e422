// internal/views/recommendation-list/handler.go
package recommendationlist

import (
	"net/http"

	"internmatch-web/internal/admin"
	apperrors "internmatch-web/internal/common/errors"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/models"
	"internmatch-web/internal/session"
	"internmatch-web/internal/web/page"
)

const ViewName = "recommendation-list"

type Handler struct {
	config   *Config
	renderer page.Renderer
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, renderer page.Renderer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"view": ViewName})
	return &Handler{
		config:   config,
		renderer: renderer,
		errors:   apperrors.NewErrorHandler(l),
		logger:   l,
	}
}

// Show renders the last stored recommendation result. It never calls the
// recommendation service; a missing result is the empty state.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := session.FromContext(ctx)
	if err != nil {
		h.logger.Error("no session", map[string]interface{}{"error": err.Error()})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p := page.New(r, page.RouteRecommendations)
	if p.Notification, err = sess.TakeNotification(ctx); err != nil {
		h.logger.Warn("failed to read notification", map[string]interface{}{"error": err.Error()})
	}

	var stored models.RecommendationResponse
	found, err := sess.Get(ctx, session.KeyRecommendations, &stored)
	if err != nil {
		key := h.errors.HandleViewError(ctx, ViewName, "load", "", err)
		p.Notification = &models.Notification{Kind: models.NotificationError, Key: key}
		found = false
	}

	p.Data = h.buildView(&stored, found)
	if err := h.renderer.Render(w, http.StatusOK, p); err != nil {
		h.logger.Error("render failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Handler) buildView(resp *models.RecommendationResponse, found bool) View {
	if !found {
		return View{Empty: true}
	}
	pairs := resp.Pairs()
	cards := make([]Card, 0, len(pairs))
	for _, rec := range pairs {
		in := rec.Internship
		skills, more := admin.VisibleSkills(in.SkillsRequired, h.config.MaxSkills)
		cards = append(cards, Card{
			ID:          in.ID,
			Title:       in.Title,
			Department:  in.Department,
			Location:    in.Location,
			Stipend:     in.Stipend,
			Capacity:    in.Capacity,
			Description: in.Description,
			Percent:     rec.MatchPercent(),
			Skills:      skills,
			MoreSkills:  more,
		})
	}
	return View{Cards: cards, Empty: len(cards) == 0}
}
