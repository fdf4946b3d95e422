package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/i18n"
	"internmatch-web/internal/models"
	"internmatch-web/internal/session"
	admindashboard "internmatch-web/internal/views/admin-dashboard"
	candidateform "internmatch-web/internal/views/candidate-form"
	"internmatch-web/internal/views/landing"
	recommendationlist "internmatch-web/internal/views/recommendation-list"
	"internmatch-web/internal/web/page"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type stubAPI struct {
	list []models.Internship
}

func (s *stubAPI) Recommend(context.Context, models.Candidate) (*models.RecommendationResponse, error) {
	return &models.RecommendationResponse{Internships: s.list, MatchScores: make([]float64, len(s.list))}, nil
}

func (s *stubAPI) ListInternships(context.Context) ([]models.Internship, error) {
	return s.list, nil
}

func (s *stubAPI) AddInternship(context.Context, models.NewInternship) (*models.MutationResult, error) {
	return &models.MutationResult{Message: "ok"}, nil
}

func (s *stubAPI) DeleteInternship(context.Context, string) (*models.MutationResult, error) {
	return &models.MutationResult{Message: "ok"}, nil
}

// downStore fails every operation.
type downStore struct{}

var errDown = errors.New("store down")

func (downStore) Load(context.Context, string, string) ([]byte, bool, error) { return nil, false, errDown }
func (downStore) Save(context.Context, string, string, []byte) error        { return errDown }
func (downStore) Remove(context.Context, string, ...string) error           { return errDown }
func (downStore) AcquirePending(context.Context, string, string, time.Duration) (bool, error) {
	return false, errDown
}
func (downStore) ReleasePending(context.Context, string, string) error { return errDown }
func (downStore) Ping(context.Context) error                           { return errDown }

func newTestServer(t *testing.T, store session.Store) http.Handler {
	t.Helper()
	log := logger.NewTestLogger(t)

	templates, err := page.NewTemplates(log)
	require.NoError(t, err)

	api := &stubAPI{list: []models.Internship{{ID: "1", Title: "Backend Intern", Department: "IT"}}}
	views := Views{
		Landing:         landing.NewHandler(landing.LoadConfig(), templates, log),
		Form:            candidateform.NewHandler(candidateform.LoadConfig(), api, templates, log),
		Recommendations: recommendationlist.NewHandler(recommendationlist.LoadConfig(), templates, log),
		Admin:           admindashboard.NewHandler(admindashboard.LoadConfig(), api, templates, log),
	}
	manager := session.NewManager(store, session.Config{}, log)
	return NewServer("internmatch-web-test", views, manager, i18n.Default(), log).Handler()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func cookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ==========================
// Routing Tests
// ==========================

func TestServer_Pages(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))

	tests := []struct {
		path string
		want string
	}{
		{"/", "Find Your Perfect Internship"},
		{"/form", "Step 1 of 3"},
		{"/recommendations", "No internships found matching your criteria"},
		{"/admin", "Backend Intern"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := serve(h, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
			assert.NotNil(t, cookie(rr, "im_session"), "first visit starts a session")
		})
	}
}

func TestServer_UnknownPathIsNotFound(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_SessionCarriesAcrossRequests(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))

	form := url.Values{"name": {"Asha"}, "education": {"PhD"}, "action": {"next"}}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := serve(h, req)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	sc := cookie(rr, "im_session")
	require.NotNil(t, sc)

	req = httptest.NewRequest(http.MethodGet, "/form", nil)
	req.AddCookie(sc)
	rr = serve(h, req)
	assert.Contains(t, rr.Body.String(), "Step 2 of 3")
}

func TestServer_SessionStoreDown(t *testing.T) {
	h := newTestServer(t, downStore{})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/form", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code, "liveness does not depend on the store")
}

func TestServer_Static(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ==========================
// Language Tests
// ==========================

func TestServer_LanguageQueryPersists(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/?lang=hi", nil))
	assert.Contains(t, rr.Body.String(), `<html lang="hi">`)
	lc := cookie(rr, i18n.LangCookieName)
	require.NotNil(t, lc)
	assert.Equal(t, "hi", lc.Value)

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	req.AddCookie(lc)
	rr = serve(h, req)
	assert.Contains(t, rr.Body.String(), `<html lang="hi">`)
	assert.NotContains(t, rr.Body.String(), "Step 1 of 3")
}

func TestServer_SwitchLanguage(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/lang?to=hi&next=%2Fadmin%3Fdepartment%3DIT", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin?department=IT", rr.Header().Get("Location"))
	lc := cookie(rr, i18n.LangCookieName)
	require.NotNil(t, lc)
	assert.Equal(t, "hi", lc.Value)

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/lang?to=fr&next=/form", nil))
	assert.Equal(t, "/form", rr.Header().Get("Location"))
	assert.Nil(t, cookie(rr, i18n.LangCookieName), "unsupported language is ignored")
}

func TestLocalPath(t *testing.T) {
	tests := map[string]string{
		"":                             "/",
		"/form":                        "/form",
		"https://evil.test/x":          "/",
		"//evil.test":                  "/",
		"/\\evil.test":                 "/",
		"/form?lang=en":                "/form",
		"/admin?lang=hi&department=IT": "/admin?department=IT",
	}
	for in, want := range tests {
		assert.Equal(t, want, localPath(in), in)
	}
}

// ==========================
// Health Tests
// ==========================

func TestServer_HealthAndReady(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	down := newTestServer(t, downStore{})
	rr = serve(down, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestServer_Metrics(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "web_page_renders_total")
}

func TestRecoverer(t *testing.T) {
	s := &Server{logger: logger.NewTestLogger(t)}
	h := s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestServer_RequestID(t *testing.T) {
	h := newTestServer(t, session.NewMemoryStore(0))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "6f1c2f8e-3b7a-4d55-9a64-1f0b7c2d9e11")
	rr = serve(h, req)
	assert.Equal(t, "6f1c2f8e-3b7a-4d55-9a64-1f0b7c2d9e11", rr.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "not-an-id\nforged")
	rr = serve(h, req)
	assert.NotEqual(t, "not-an-id\nforged", rr.Header().Get(requestIDHeader))
}
