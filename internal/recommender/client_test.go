package recommender

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "internmatch-web/internal/common/errors"
	commonhttp "internmatch-web/internal/common/http"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/common/observability"
	"internmatch-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const internshipJSON = `{
  "id": "a1", "title": "Data Intern", "sector": "IT", "skills_required": ["Python", "SQL"],
  "location": "Pune", "stipend": 12000, "capacity": 3, "department": "IT",
  "description": null, "created_at": "Mon, 01 Jan 2024 00:00:00 GMT"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tracing, err := observability.NewTracing("test", "", false)
	require.NoError(t, err)

	return NewClient(server.URL+"/", commonhttp.NewClient(2*time.Second), logger.NewTestLogger(t),
		WithTracing(tracing))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestClient_ListInternships(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/internships", r.URL.Path)
		writeJSON(w, http.StatusOK, "["+internshipJSON+"]")
	})

	list, err := client.ListInternships(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Data Intern", list[0].Title)
	assert.Equal(t, []string{"Python", "SQL"}, list[0].SkillsRequired)
	assert.Equal(t, 12000, list[0].Stipend)
	assert.Empty(t, list[0].Description)
}

func TestClient_ListInternshipsDropsInvalidItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[
  {"id": "neg", "title": "Negative", "skills_required": [], "location": "", "stipend": -5, "capacity": 1, "department": "IT"},
  `+internshipJSON+`,
  {"id": "empty", "title": "No Seats", "skills_required": [], "location": "", "stipend": 0, "capacity": 0, "department": "IT"},
  {"id": "partial", "title": "Partial"}
]`)
	})

	list, err := client.ListInternships(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)
}

func TestClient_ListInternshipsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "[]")
	})

	list, err := client.ListInternships(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestClient_GetInternship(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internship/a%2Fb", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, internshipJSON)
	})

	got, err := client.GetInternship(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
}

func TestClient_AddInternship(t *testing.T) {
	var received map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/add_internship", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeJSON(w, http.StatusCreated, `{"message": "Internship added successfully", "id": "new-1"}`)
	})

	res, err := client.AddInternship(context.Background(), models.NewInternship{
		Title:          "Ops Intern",
		Sector:         "Operations",
		SkillsRequired: []string{"Excel"},
		Location:       "Delhi",
		Stipend:        0,
		Capacity:       1,
		Department:     "Operations",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", res.ID)
	assert.NotContains(t, received, "id", "the server assigns ids")
	assert.Equal(t, "Ops Intern", received["title"])
	assert.EqualValues(t, 0, received["stipend"])
}

func TestClient_DeleteInternship(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/delete_internship/a1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := client.DeleteInternship(context.Background(), "a1")
	assert.NoError(t, err)
}

func TestClient_Recommend(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var c models.Candidate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		assert.Equal(t, []string{"Python"}, c.Skills)
		writeJSON(w, http.StatusOK, `{"internships": [`+internshipJSON+`,`+internshipJSON+`], "match_scores": [0.92, 0.5]}`)
	})

	resp, err := client.Recommend(context.Background(), models.Candidate{
		Name: "Asha", Education: "PhD", Skills: []string{"Python"}, Interests: []string{"IT"}, Location: "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.92, 0.5}, resp.MatchScores)
	assert.True(t, resp.Consistent())
}

// ==========================
// Error Handling Tests
// ==========================

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		call      func(*Client) error
		wantCode  apperrors.ErrorCode
		wantInMsg string
	}{
		{
			name:      "server error body decoded",
			status:    http.StatusInternalServerError,
			body:      `{"error": "database is down"}`,
			call:      func(c *Client) error { _, err := c.ListInternships(context.Background()); return err },
			wantCode:  apperrors.ErrCodeUpstreamStatus,
			wantInMsg: "database is down",
		},
		{
			name:      "plain text error body",
			status:    http.StatusNotFound,
			body:      "not here",
			call:      func(c *Client) error { _, err := c.DeleteInternship(context.Background(), "x"); return err },
			wantCode:  apperrors.ErrCodeUpstreamStatus,
			wantInMsg: "not here",
		},
		{
			name:     "malformed json",
			status:   http.StatusOK,
			body:     `[{"id":`,
			call:     func(c *Client) error { _, err := c.ListInternships(context.Background()); return err },
			wantCode: apperrors.ErrCodeUpstreamDecodeFailed,
		},
		{
			name:      "schema violation",
			status:    http.StatusOK,
			body:      `{"id": "a", "title": "T"}`,
			call:      func(c *Client) error { _, err := c.ListInternships(context.Background()); return err },
			wantCode:  apperrors.ErrCodeUpstreamResponseInvalid,
			wantInMsg: "array",
		},
		{
			name:     "score out of range",
			status:   http.StatusOK,
			body:     `{"internships": [` + internshipJSON + `], "match_scores": [1.5]}`,
			call:     func(c *Client) error { _, err := c.Recommend(context.Background(), models.Candidate{}); return err },
			wantCode: apperrors.ErrCodeUpstreamResponseInvalid,
		},
		{
			name:      "parallel lists differ in length",
			status:    http.StatusOK,
			body:      `{"internships": [` + internshipJSON + `], "match_scores": [0.5, 0.4]}`,
			call:      func(c *Client) error { _, err := c.Recommend(context.Background(), models.Candidate{}); return err },
			wantCode:  apperrors.ErrCodeUpstreamResponseInvalid,
			wantInMsg: "1 internships but 2 match scores",
		},
		{
			name:     "empty body where data is required",
			status:   http.StatusOK,
			body:     "",
			call:     func(c *Client) error { _, err := c.Recommend(context.Background(), models.Candidate{}); return err },
			wantCode: apperrors.ErrCodeUpstreamDecodeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			err := tt.call(client)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
			if tt.wantInMsg != "" {
				assert.Contains(t, err.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestClient_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, commonhttp.NewClient(time.Second), logger.NewNoOpLogger())
	_, err := client.ListInternships(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUpstreamUnavailable))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Recommend(ctx, models.Candidate{})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUpstreamUnavailable))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage([]byte(`{"error":"boom"}`)))
	assert.Equal(t, `{"detail":"x"}`, errorMessage([]byte(`{"detail":"x"}`)))
	assert.Len(t, errorMessage([]byte(string(make([]byte, 1000)))), maxErrorBody)
}
