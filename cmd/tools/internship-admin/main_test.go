package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	apperrors "internmatch-web/internal/common/errors"
	"internmatch-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListInternships(ctx context.Context) ([]models.Internship, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Internship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) GetInternship(ctx context.Context, id string) (*models.Internship, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Internship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) AddInternship(ctx context.Context, in models.NewInternship) (*models.MutationResult, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*models.MutationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) DeleteInternship(ctx context.Context, id string) (*models.MutationResult, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.MutationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) Recommend(ctx context.Context, c models.Candidate) (*models.RecommendationResponse, error) {
	args := m.Called(ctx, c)
	if v := args.Get(0); v != nil {
		return v.(*models.RecommendationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRun_ListFiltersByDepartment(t *testing.T) {
	api := &mockAPI{}
	api.On("ListInternships", mock.Anything).Return([]models.Internship{
		{ID: "1", Title: "Ledger Intern", Department: "Finance"},
		{ID: "2", Title: "Backend Intern", Department: "IT"},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), api, &out, "list", []string{"-department", "Finance"}))
	assert.Contains(t, out.String(), "Ledger Intern")
	assert.NotContains(t, out.String(), "Backend Intern")
}

func TestRun_AddAppliesFallbacks(t *testing.T) {
	api := &mockAPI{}
	api.On("AddInternship", mock.Anything, mock.MatchedBy(func(in models.NewInternship) bool {
		return in.Title == "Data Intern" && in.Department == "IT" && in.Capacity == 1 &&
			len(in.SkillsRequired) == 2
	})).Return(&models.MutationResult{Message: "Internship added", ID: "7"}, nil).Once()

	var out bytes.Buffer
	err := run(context.Background(), api, &out, "add", []string{"-title", "Data Intern", "-skills", "Python, SQL", "-capacity", "x"})
	require.NoError(t, err)
	assert.Equal(t, "Added internship: 7\n", out.String())
	api.AssertExpectations(t)
}

func TestRun_Errors(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteInternship", mock.Anything, "9").
		Return(nil, apperrors.NewUpstreamStatusError("delete_internship", 404, "Internship not found"))

	var out bytes.Buffer
	assert.Error(t, run(context.Background(), api, &out, "delete", nil), "id required")
	assert.Error(t, run(context.Background(), api, &out, "show", nil), "id required")
	assert.Error(t, run(context.Background(), api, &out, "add", nil), "title required")
	assert.Error(t, run(context.Background(), api, &out, "delete", []string{"-id", "9"}))
	assert.Error(t, run(context.Background(), api, &out, "bogus", nil))
}

func TestRun_ShowPrintsJSON(t *testing.T) {
	api := &mockAPI{}
	api.On("GetInternship", mock.Anything, "3").Return(&models.Internship{ID: "3", Title: "Audit Intern"}, nil)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), api, &out, "show", []string{"-id", "3"}))
	assert.Contains(t, out.String(), `"title": "Audit Intern"`)
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &mockAPI{}, &out, "help", nil))
	assert.Contains(t, out.String(), "Usage: internship-admin <command> [flags]")
	assert.True(t, strings.HasSuffix(out.String(), "command.\n"))
}
