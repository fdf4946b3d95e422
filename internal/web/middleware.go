// internal/web/middleware.go
package web

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/common/metrics"
	"internmatch-web/internal/i18n"
	"internmatch-web/internal/session"
	"internmatch-web/internal/web/page"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// accessLog tags the request with an id, stores a request-scoped logger in the
// context and logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		log := s.logger.WithFields(map[string]interface{}{"requestId": id})

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context(), log)))

		fields := map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}
		switch {
		case rec.status >= 500:
			log.Error("Request failed", fields)
		case r.URL.Path == "/health" || r.URL.Path == "/metrics" || strings.HasPrefix(r.URL.Path, "/static/"):
			log.Debug("Request served", fields)
		default:
			log.Info("Request served", fields)
		}
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.logger.Error("Handler panicked", map[string]interface{}{
					"path":  r.URL.Path,
					"panic": fmt.Sprint(v),
					"stack": string(debug.Stack()),
				})
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func inFlight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveRequests.Inc()
		defer metrics.ActiveRequests.Dec()
		next.ServeHTTP(w, r)
	})
}

// withLanguage resolves the request language once and fixes it for the render.
func (s *Server) withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, persist := s.catalog.ResolveLanguage(r)
		if persist {
			i18n.SetLanguageCookie(w, lang)
		}
		ctx := page.WithTranslator(r.Context(), s.catalog.Translator(lang))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withSession attaches the visitor's session. Pages cannot work without one.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(r.Context(), w, r)
		if err != nil {
			logger.FromContext(r.Context(), s.logger).Error("Session unavailable", map[string]interface{}{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
	})
}
