// internal/views/candidate-form/models.go
package candidateform

import (
	"context"

	"internmatch-web/internal/intake"
	"internmatch-web/internal/models"
)

// Recommender submits a completed profile.
type Recommender interface {
	Recommend(ctx context.Context, candidate models.Candidate) (*models.RecommendationResponse, error)
}

// Form fields and actions posted by the wizard template.
const (
	FieldName      = "name"
	FieldEducation = "education"
	FieldLocation  = "location"
	FieldSkill     = "skill"
	FieldInterest  = "interest"
	FieldAction    = "action"

	ActionNext    = "next"
	ActionPrev    = "prev"
	ActionSubmit  = "submit"
	ActionRefresh = "refresh"
)

// pendingAction guards against a second submit while one is in flight.
const pendingAction = "recommend"

type Option struct {
	Value    string
	Selected bool
}

// View is the template model for one wizard step.
type View struct {
	Step     int
	Total    int
	Progress int

	Valid     bool
	CanGoBack bool
	IsLast    bool

	Name      string
	Education string
	Location  string

	EducationOptions   []Option
	SkillOptions       []Option
	InterestOptions    []Option
	LocationOptions    []Option
	SelectedSkillCount int
}

func newView(w *intake.Wizard) View {
	c := w.Candidate
	return View{
		Step:               int(w.Step),
		Total:              intake.TotalSteps,
		Progress:           w.Progress(),
		Valid:              w.Valid(),
		CanGoBack:          w.CanGoBack(),
		IsLast:             w.IsLast(),
		Name:               c.Name,
		Education:          c.Education,
		Location:           c.Location,
		EducationOptions:   options(models.EducationOptions, func(v string) bool { return v == c.Education }),
		SkillOptions:       options(models.SkillOptions, w.HasSkill),
		InterestOptions:    options(models.InterestOptions(), w.HasInterest),
		LocationOptions:    options(models.LocationOptions, func(v string) bool { return v == c.Location }),
		SelectedSkillCount: len(c.Skills),
	}
}

func options(values []string, selected func(string) bool) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Selected: selected(v)})
	}
	return out
}
