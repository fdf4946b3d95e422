// internal/views/admin-dashboard/handler.go
package admindashboard

import (
	"context"
	"net/http"

	"internmatch-web/internal/admin"
	apperrors "internmatch-web/internal/common/errors"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/models"
	"internmatch-web/internal/session"
	"internmatch-web/internal/web/page"
)

const ViewName = "admin-dashboard"

type Handler struct {
	config   *Config
	service  InternshipService
	renderer page.Renderer
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, service InternshipService, renderer page.Renderer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"view": ViewName})
	return &Handler{
		config:   config,
		service:  service,
		renderer: renderer,
		errors:   apperrors.NewErrorHandler(l),
		logger:   l,
	}
}

// Show fetches the internship list and renders it with the department filter
// applied. When the fetch fails the previously shown list stays on screen.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := session.FromContext(ctx)
	if err != nil {
		h.logger.Error("no session", map[string]interface{}{"error": err.Error()})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p := page.New(r, page.RouteAdmin)
	if p.Notification, err = sess.TakeNotification(ctx); err != nil {
		h.logger.Warn("failed to read notification", map[string]interface{}{"error": err.Error()})
	}

	state, err := h.loadState(ctx, sess)
	if err != nil {
		p.Notification = h.failure(ctx, "load", "", err)
	}

	switch r.URL.Query().Get(ParamDialog) {
	case DialogOpen:
		state.DialogOpen = true
	case DialogClose:
		state.DialogOpen = false
	}

	callCtx, cancel := context.WithTimeout(ctx, h.config.CallTimeout)
	list, err := h.service.ListInternships(callCtx)
	cancel()
	if err != nil {
		p.Notification = h.failure(ctx, "list", "notify.list_failed", err)
	} else {
		state.Internships = list
	}

	if err := sess.Set(ctx, session.KeyAdmin, state); err != nil {
		h.logger.Warn("failed to save dashboard state", map[string]interface{}{"error": err.Error()})
	}

	p.Data = h.buildView(state, normalizeFilter(r.URL.Query().Get(ParamDepartment)))
	if err := h.renderer.Render(w, http.StatusOK, p); err != nil {
		h.logger.Error("render failed", map[string]interface{}{"error": err.Error()})
	}
}

// Create submits the dialog. On failure the dialog stays open with the raw input.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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

	draft := admin.DraftFromForm(r.PostForm)
	filter := normalizeFilter(r.PostForm.Get(ParamFilter))

	state, err := h.loadState(ctx, sess)
	if err != nil {
		h.notify(ctx, sess, h.failure(ctx, "create", "notify.create_failed", err))
		http.Redirect(w, r, dashboardURL(filter, DialogOpen), http.StatusSeeOther)
		return
	}

	if err := h.create(ctx, sess, draft); err != nil {
		state.Draft = draft
		state.DialogOpen = true
		h.notify(ctx, sess, h.failure(ctx, "create", "notify.create_failed", err))
	} else {
		state.Draft = admin.Draft{}
		state.DialogOpen = false
		h.notify(ctx, sess, &models.Notification{Kind: models.NotificationSuccess, Key: "notify.create_success"})
	}

	if err := sess.Set(ctx, session.KeyAdmin, state); err != nil {
		h.logger.Warn("failed to save dashboard state", map[string]interface{}{"error": err.Error()})
	}
	http.Redirect(w, r, dashboardURL(filter, ""), http.StatusSeeOther)
}

func (h *Handler) create(ctx context.Context, sess *session.Handle, draft admin.Draft) error {
	release, err := sess.Guard(ctx, "create")
	if err != nil {
		return err
	}
	defer release()

	callCtx, cancel := context.WithTimeout(ctx, h.config.CallTimeout)
	defer cancel()

	res, err := h.service.AddInternship(callCtx, draft.Build())
	if err != nil {
		return err
	}
	h.logger.Info("internship created", map[string]interface{}{"id": res.ID})
	return nil
}

// Delete removes one internship. On failure the list is left as it was.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	id := r.PathValue("id")
	filter := normalizeFilter(r.PostForm.Get(ParamFilter))

	if err := h.delete(ctx, sess, id); err != nil {
		h.notify(ctx, sess, h.failure(ctx, "delete", "notify.delete_failed", err))
	} else {
		h.notify(ctx, sess, &models.Notification{Kind: models.NotificationSuccess, Key: "notify.delete_success"})
	}
	http.Redirect(w, r, dashboardURL(filter, ""), http.StatusSeeOther)
}

func (h *Handler) delete(ctx context.Context, sess *session.Handle, id string) error {
	release, err := sess.Guard(ctx, "delete:"+id)
	if err != nil {
		return err
	}
	defer release()

	callCtx, cancel := context.WithTimeout(ctx, h.config.CallTimeout)
	defer cancel()

	if _, err := h.service.DeleteInternship(callCtx, id); err != nil {
		return err
	}
	h.logger.Info("internship deleted", map[string]interface{}{"id": id})
	return nil
}

func (h *Handler) loadState(ctx context.Context, sess *session.Handle) (State, error) {
	var state State
	if _, err := sess.Get(ctx, session.KeyAdmin, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// failure logs err and returns the notification to show for it.
func (h *Handler) failure(ctx context.Context, action, key string, err error) *models.Notification {
	kind := models.NotificationError
	if apperrors.HasCode(err, apperrors.ErrCodeRequestPending) {
		kind = models.NotificationInfo
	}
	return &models.Notification{Kind: kind, Key: h.errors.HandleViewError(ctx, ViewName, action, key, err)}
}

func (h *Handler) notify(ctx context.Context, sess *session.Handle, n *models.Notification) {
	if err := sess.Notify(ctx, n.Kind, n.Key, n.Params); err != nil {
		h.logger.Warn("failed to queue notification", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Handler) buildView(state State, filter string) View {
	visible := admin.Filter(state.Internships, filter)

	cards := make([]Card, 0, len(visible))
	for _, in := range visible {
		skills, more := admin.VisibleSkills(in.SkillsRequired, h.config.MaxSkills)
		cards = append(cards, Card{
			ID:         in.ID,
			Title:      in.Title,
			Department: in.Department,
			Location:   in.Location,
			Stipend:    in.Stipend,
			Capacity:   in.Capacity,
			Skills:     skills,
			MoreSkills: more,
			DeleteURL:  deleteURL(in.ID),
		})
	}

	departments := make([]Option, 0, len(models.Departments))
	for _, d := range models.Departments {
		departments = append(departments, Option{Value: string(d), Selected: string(d) == filter})
	}

	return View{
		Filter:         filter,
		Departments:    departments,
		Cards:          cards,
		Empty:          len(cards) == 0,
		DialogOpen:     state.DialogOpen,
		Draft:          state.Draft,
		OpenDialogURL:  dashboardURL(filter, DialogOpen),
		CloseDialogURL: dashboardURL(filter, DialogClose),
	}
}

// normalizeFilter maps "all" and unknown values to the empty filter.
func normalizeFilter(value string) string {
	d, ok := admin.ParseFilter(value)
	if !ok {
		return ""
	}
	return string(d)
}
