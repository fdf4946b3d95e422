package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/common/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer writes a page with the given status.
type Renderer interface {
	Render(w http.ResponseWriter, status int, p *Page) error
}

// Templates renders each route's template inside the shared layout.
type Templates struct {
	pages  map[Route]*template.Template
	logger logger.Logger
}

// NewTemplates parses the embedded layout and one content template per route.
func NewTemplates(log logger.Logger) (*Templates, error) {
	t := &Templates{
		pages:  make(map[Route]*template.Template, len(Routes)),
		logger: log.WithFields(map[string]interface{}{"component": "renderer"}),
	}
	for _, r := range Routes {
		tmpl, err := template.New("layout.html").ParseFS(templateFS,
			"templates/layout.html", "templates/"+r.Name()+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", r.Name(), err)
		}
		t.pages[r] = tmpl
	}
	return t, nil
}

// Render executes into a buffer first so a template failure never leaves a half-written page.
func (t *Templates) Render(w http.ResponseWriter, status int, p *Page) error {
	tmpl, ok := t.pages[p.Route]
	if !ok {
		return fmt.Errorf("no template for route %d", p.Route)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		t.logger.Error("Template execution failed", map[string]interface{}{
			"route": p.Route.Name(),
			"error": err.Error(),
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)

	metrics.PageRenders.WithLabelValues(p.Route.Name(), p.Lang()).Inc()
	return err
}
