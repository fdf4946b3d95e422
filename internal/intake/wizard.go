// Package intake implements the three-step candidate intake wizard.
package intake

import (
	"strings"

	"internmatch-web/internal/models"
)

// Step is a wizard state.
type Step int

const (
	StepBasics      Step = 1 // name, education
	StepSkills      Step = 2
	StepPreferences Step = 3 // interests, location

	TotalSteps = 3
)

// Wizard is the form session: the current step plus the candidate being built.
// The zero value is not ready; use New.
type Wizard struct {
	Step      Step             `json:"step"`
	Candidate models.Candidate `json:"candidate"`
}

// New starts a fresh form session at step one.
func New() *Wizard {
	return &Wizard{
		Step: StepBasics,
		Candidate: models.Candidate{
			Skills:    []string{},
			Interests: []string{},
		},
	}
}

// Normalize repairs a wizard decoded from storage.
func (w *Wizard) Normalize() {
	if w.Step < StepBasics || w.Step > StepPreferences {
		w.Step = StepBasics
	}
	if w.Candidate.Skills == nil {
		w.Candidate.Skills = []string{}
	}
	if w.Candidate.Interests == nil {
		w.Candidate.Interests = []string{}
	}
}

// StepValid reports whether step's validity predicate holds for the current data.
func (w *Wizard) StepValid(step Step) bool {
	c := w.Candidate
	switch step {
	case StepBasics:
		return strings.TrimSpace(c.Name) != "" && models.Contains(models.EducationOptions, c.Education)
	case StepSkills:
		return len(c.Skills) > 0
	case StepPreferences:
		return len(c.Interests) > 0 && c.Location != ""
	default:
		return false
	}
}

// Valid reports whether the current step may move forward (or submit on the last step).
func (w *Wizard) Valid() bool {
	return w.StepValid(w.Step)
}

// CanGoBack is false only on the first step.
func (w *Wizard) CanGoBack() bool {
	return w.Step > StepBasics
}

// IsLast reports whether the forward action is submit.
func (w *Wizard) IsLast() bool {
	return w.Step == StepPreferences
}

// Next advances one step when the current step is valid. It reports whether it moved.
func (w *Wizard) Next() bool {
	if w.IsLast() || !w.Valid() {
		return false
	}
	w.Step++
	return true
}

// Prev goes back one step unless already on the first.
func (w *Wizard) Prev() bool {
	if !w.CanGoBack() {
		return false
	}
	w.Step--
	return true
}

// Progress is the completion percentage shown in the progress bar.
func (w *Wizard) Progress() int {
	return int(w.Step) * 100 / TotalSteps
}

func (w *Wizard) SetName(name string) {
	w.Candidate.Name = name
}

// SetEducation accepts only the fixed options.
func (w *Wizard) SetEducation(education string) bool {
	if !models.Contains(models.EducationOptions, education) {
		return false
	}
	w.Candidate.Education = education
	return true
}

// SetLocation accepts only the fixed options.
func (w *Wizard) SetLocation(location string) bool {
	if !models.Contains(models.LocationOptions, location) {
		return false
	}
	w.Candidate.Location = location
	return true
}

// ToggleSkill flips membership of skill; unknown skills are ignored.
func (w *Wizard) ToggleSkill(skill string) bool {
	if !models.Contains(models.SkillOptions, skill) {
		return false
	}
	w.Candidate.Skills = toggle(w.Candidate.Skills, skill)
	return true
}

// ToggleInterest flips membership of interest; unknown interests are ignored.
func (w *Wizard) ToggleInterest(interest string) bool {
	if !models.Contains(models.InterestOptions(), interest) {
		return false
	}
	w.Candidate.Interests = toggle(w.Candidate.Interests, interest)
	return true
}

// HasSkill and HasInterest drive the selected styling.
func (w *Wizard) HasSkill(skill string) bool {
	return models.Contains(w.Candidate.Skills, skill)
}

func (w *Wizard) HasInterest(interest string) bool {
	return models.Contains(w.Candidate.Interests, interest)
}

// Payload builds the submission body. ok is false unless every step is valid.
func (w *Wizard) Payload() (models.Candidate, bool) {
	for s := StepBasics; s <= StepPreferences; s++ {
		if !w.StepValid(s) {
			return models.Candidate{}, false
		}
	}
	c := w.Candidate.Clone()
	c.Name = strings.TrimSpace(c.Name)
	return c, true
}

// toggle removes item if present, otherwise appends it, preserving insertion order.
func toggle(set []string, item string) []string {
	for i, s := range set {
		if s == item {
			out := make([]string, 0, len(set)-1)
			out = append(out, set[:i]...)
			return append(out, set[i+1:]...)
		}
	}
	return append(append(make([]string, 0, len(set)+1), set...), item)
}
