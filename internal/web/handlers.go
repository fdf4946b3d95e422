// internal/web/handlers.go
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"internmatch-web/internal/i18n"
)

const readyTimeout = 2 * time.Second

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "healthy")
}

// ready reports whether the session store answers.
func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.sessions.Store().Ping(ctx); err != nil {
		s.logger.Warn("Readiness check failed", map[string]interface{}{"error": err.Error()})
		writeStatus(w, http.StatusServiceUnavailable, "unavailable")
		return
	}
	writeStatus(w, http.StatusOK, "ready")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// switchLanguage stores the chosen language and returns to the page it was
// chosen on. Only same-site paths are accepted as the return target.
func (s *Server) switchLanguage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if to := q.Get("to"); s.catalog.Has(to) {
		i18n.SetLanguageCookie(w, to)
	}
	http.Redirect(w, r, localPath(q.Get("next")), http.StatusSeeOther)
}

// localPath returns next when it is a same-site path, "/" otherwise. A ?lang=
// in next is dropped so it cannot override the new choice.
func localPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	q := u.Query()
	if q.Has(i18n.LangParam) {
		q.Del(i18n.LangParam)
		u.RawQuery = q.Encode()
	}
	return u.RequestURI()
}
