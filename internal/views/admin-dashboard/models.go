// internal/views/admin-dashboard/models.go
package admindashboard

import (
	"context"
	"net/url"

	"internmatch-web/internal/admin"
	"internmatch-web/internal/models"
)

// InternshipService is the slice of the recommendation API the dashboard uses.
type InternshipService interface {
	ListInternships(ctx context.Context) ([]models.Internship, error)
	AddInternship(ctx context.Context, in models.NewInternship) (*models.MutationResult, error)
	DeleteInternship(ctx context.Context, id string) (*models.MutationResult, error)
}

// Query and form parameters.
const (
	ParamDepartment = "department"
	ParamDialog     = "dialog"
	ParamFilter     = "filter"

	DialogOpen  = "new"
	DialogClose = "close"
)

// State is the dashboard's per-visitor state between requests.
type State struct {
	Internships []models.Internship `json:"internships"`
	DialogOpen  bool                `json:"dialogOpen"`
	Draft       admin.Draft         `json:"draft"`
}

type Option struct {
	Value    string
	Selected bool
}

type Card struct {
	ID         string
	Title      string
	Department string
	Location   string
	Stipend    int
	Capacity   int
	Skills     []string
	MoreSkills int
	DeleteURL  string
}

// View is the template model.
type View struct {
	Filter         string // empty means all departments
	Departments    []Option
	Cards          []Card
	Empty          bool
	DialogOpen     bool
	Draft          admin.Draft
	OpenDialogURL  string
	CloseDialogURL string
}

// dashboardURL builds /admin with the filter and dialog state.
func dashboardURL(filter, dialog string) string {
	q := url.Values{}
	if filter != "" {
		q.Set(ParamDepartment, filter)
	}
	if dialog != "" {
		q.Set(ParamDialog, dialog)
	}
	if len(q) == 0 {
		return "/admin"
	}
	return "/admin?" + q.Encode()
}

func deleteURL(id string) string {
	return "/admin/internships/" + url.PathEscape(id) + "/delete"
}
