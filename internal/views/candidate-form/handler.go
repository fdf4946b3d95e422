// internal/views/candidate-form/handler.go
package candidateform

import (
	"context"
	"net/http"
	"net/url"

	apperrors "internmatch-web/internal/common/errors"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/intake"
	"internmatch-web/internal/models"
	"internmatch-web/internal/session"
	"internmatch-web/internal/web/page"
)

const ViewName = "candidate-form"

type Handler struct {
	config      *Config
	recommender Recommender
	renderer    page.Renderer
	errors      *apperrors.ErrorHandler
	logger      logger.Logger
}

func NewHandler(config *Config, recommender Recommender, renderer page.Renderer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"view": ViewName})
	return &Handler{
		config:      config,
		recommender: recommender,
		renderer:    renderer,
		errors:      apperrors.NewErrorHandler(l),
		logger:      l,
	}
}

// Show renders the current wizard step.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := session.FromContext(ctx)
	if err != nil {
		h.logger.Error("no session", map[string]interface{}{"error": err.Error()})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p := page.New(r, page.RouteForm)

	wiz, err := h.loadWizard(ctx, sess)
	if err != nil {
		key := h.errors.HandleViewError(ctx, ViewName, "load", "", err)
		p.Notification = &models.Notification{Kind: models.NotificationError, Key: key}
		wiz = intake.New()
	} else if p.Notification, err = sess.TakeNotification(ctx); err != nil {
		h.logger.Warn("failed to read notification", map[string]interface{}{"error": err.Error()})
	}

	p.Data = newView(wiz)
	if err := h.renderer.Render(w, http.StatusOK, p); err != nil {
		h.logger.Error("render failed", map[string]interface{}{"error": err.Error()})
	}
}

// Submit applies one wizard action and redirects back (POST/redirect/GET).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := session.FromContext(ctx)
	if err != nil {
		h.logger.Error("no session", map[string]interface{}{"error": err.Error()})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	wiz, err := h.loadWizard(ctx, sess)
	if err != nil {
		h.notifyFailure(ctx, sess, "load", "", err)
		h.redirect(w, r, page.RouteForm)
		return
	}

	form := r.PostForm
	applyFields(wiz, form)

	switch {
	case form.Has(FieldSkill):
		wiz.ToggleSkill(form.Get(FieldSkill))
	case form.Has(FieldInterest):
		wiz.ToggleInterest(form.Get(FieldInterest))
	default:
		switch form.Get(FieldAction) {
		case ActionNext:
			wiz.Next()
		case ActionPrev:
			wiz.Prev()
		case ActionSubmit:
			h.submit(ctx, w, r, sess, wiz)
			return
		}
	}

	h.saveWizard(ctx, sess, wiz)
	h.redirect(w, r, page.RouteForm)
}

// submit issues exactly one recommendation request. On failure the wizard
// stays on the last step with everything the visitor entered.
func (h *Handler) submit(ctx context.Context, w http.ResponseWriter, r *http.Request, sess *session.Handle, wiz *intake.Wizard) {
	candidate, ok := wiz.Payload()
	if !wiz.IsLast() || !ok {
		h.saveWizard(ctx, sess, wiz)
		h.redirect(w, r, page.RouteForm)
		return
	}

	release, err := sess.Guard(ctx, pendingAction)
	if err != nil {
		h.notifyFailure(ctx, sess, "submit", "notify.recommend_failed", err)
		h.redirect(w, r, page.RouteForm)
		return
	}
	defer release()

	h.saveWizard(ctx, sess, wiz)

	callCtx, cancel := context.WithTimeout(ctx, h.config.SubmitTimeout)
	defer cancel()

	resp, err := h.recommender.Recommend(callCtx, candidate)
	if err == nil {
		err = sess.Set(ctx, session.KeyRecommendations, resp)
	}
	if err != nil {
		h.notifyFailure(ctx, sess, "submit", "notify.recommend_failed", err)
		h.redirect(w, r, page.RouteForm)
		return
	}

	if err := sess.Clear(ctx, session.KeyWizard); err != nil {
		h.logger.Warn("failed to reset wizard", map[string]interface{}{"error": err.Error()})
	}
	if err := sess.Notify(ctx, models.NotificationSuccess, "notify.recommend_success", nil); err != nil {
		h.logger.Warn("failed to queue notification", map[string]interface{}{"error": err.Error()})
	}

	h.logger.Info("recommendations received", map[string]interface{}{
		"sessionId": sess.ID(),
		"count":     len(resp.Internships),
	})
	h.redirect(w, r, page.RouteRecommendations)
}

// applyFields copies the inputs that belong to the current step.
func applyFields(wiz *intake.Wizard, form url.Values) {
	switch wiz.Step {
	case intake.StepBasics:
		if form.Has(FieldName) {
			wiz.SetName(form.Get(FieldName))
		}
		if form.Has(FieldEducation) {
			wiz.SetEducation(form.Get(FieldEducation))
		}
	case intake.StepPreferences:
		if form.Has(FieldLocation) {
			wiz.SetLocation(form.Get(FieldLocation))
		}
	}
}

func (h *Handler) loadWizard(ctx context.Context, sess *session.Handle) (*intake.Wizard, error) {
	wiz := intake.New()
	if _, err := sess.Get(ctx, session.KeyWizard, wiz); err != nil {
		return nil, err
	}
	wiz.Normalize()
	return wiz, nil
}

func (h *Handler) saveWizard(ctx context.Context, sess *session.Handle, wiz *intake.Wizard) {
	if err := sess.Set(ctx, session.KeyWizard, wiz); err != nil {
		h.notifyFailure(ctx, sess, "save", "", err)
	}
}

func (h *Handler) notifyFailure(ctx context.Context, sess *session.Handle, action, key string, err error) {
	key = h.errors.HandleViewError(ctx, ViewName, action, key, err)
	kind := models.NotificationError
	if apperrors.HasCode(err, apperrors.ErrCodeRequestPending) {
		kind = models.NotificationInfo
	}
	if nerr := sess.Notify(ctx, kind, key, nil); nerr != nil {
		h.logger.Warn("failed to queue notification", map[string]interface{}{"error": nerr.Error()})
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, route page.Route) {
	http.Redirect(w, r, route.Path(), http.StatusSeeOther)
}
