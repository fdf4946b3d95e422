// internal/web/server.go
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/i18n"
	"internmatch-web/internal/session"
	admindashboard "internmatch-web/internal/views/admin-dashboard"
	candidateform "internmatch-web/internal/views/candidate-form"
	"internmatch-web/internal/views/landing"
	recommendationlist "internmatch-web/internal/views/recommendation-list"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//go:embed static
var staticFS embed.FS

// Views are the page handlers mounted by the server.
type Views struct {
	Landing         *landing.Handler
	Form            *candidateform.Handler
	Recommendations *recommendationlist.Handler
	Admin           *admindashboard.Handler
}

type Server struct {
	views    Views
	sessions *session.Manager
	catalog  *i18n.Catalog
	name     string
	logger   logger.Logger
}

func NewServer(name string, views Views, sessions *session.Manager, catalog *i18n.Catalog, log logger.Logger) *Server {
	return &Server{
		views:    views,
		sessions: sessions,
		catalog:  catalog,
		name:     name,
		logger:   log.WithFields(map[string]interface{}{"component": "web"}),
	}
}

// Handler returns the root handler with every route and middleware attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", s.page(s.views.Landing.Show))
	mux.Handle("GET /form", s.page(s.views.Form.Show))
	mux.Handle("POST /form", s.page(s.views.Form.Submit))
	mux.Handle("GET /recommendations", s.page(s.views.Recommendations.Show))
	mux.Handle("GET /admin", s.page(s.views.Admin.Show))
	mux.Handle("POST /admin/internships", s.page(s.views.Admin.Create))
	mux.Handle("POST /admin/internships/{id}/delete", s.page(s.views.Admin.Delete))
	mux.HandleFunc("GET /lang", s.switchLanguage)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /ready", s.ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	var h http.Handler = mux
	h = s.accessLog(h)
	h = s.recoverer(h)
	h = inFlight(h)
	return otelhttp.NewHandler(h, s.name)
}

// page wraps a view handler with language and session resolution.
func (s *Server) page(fn http.HandlerFunc) http.Handler {
	return s.withLanguage(s.withSession(fn))
}
