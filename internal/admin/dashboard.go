// Package admin holds the admin dashboard's list filtering and create-form parsing.
package admin

import (
	"strconv"
	"strings"

	"internmatch-web/internal/models"
)

// FilterAll is the filter value that shows every internship.
const FilterAll = "all"

// Filter returns the internships whose department equals department, in their
// original relative order. FilterAll, an empty value or an unknown department
// return the list unchanged.
func Filter(list []models.Internship, department string) []models.Internship {
	d, ok := ParseFilter(department)
	if !ok {
		return list
	}
	out := make([]models.Internship, 0, len(list))
	for _, in := range list {
		if in.Department == string(d) {
			out = append(out, in)
		}
	}
	return out
}

// ParseFilter resolves a filter value; ok is false for the "all" filter.
func ParseFilter(value string) (models.Department, bool) {
	if value == "" || value == FilterAll {
		return "", false
	}
	return models.ParseDepartment(value)
}

// Draft is the create dialog's raw input, kept verbatim so a failed
// submission can redisplay exactly what was typed.
type Draft struct {
	Title          string `json:"title"`
	Sector         string `json:"sector"`
	SkillsRequired string `json:"skills_required"` // comma separated
	Location       string `json:"location"`
	Stipend        string `json:"stipend"`
	Capacity       string `json:"capacity"`
	Department     string `json:"department"`
	Description    string `json:"description"`
}

// Form field names shared with the template.
const (
	FieldTitle       = "title"
	FieldSector      = "sector"
	FieldSkills      = "skills_required"
	FieldLocation    = "location"
	FieldStipend     = "stipend"
	FieldCapacity    = "capacity"
	FieldDepartment  = "department"
	FieldDescription = "description"
)

// Values is the subset of url.Values the form parser reads.
type Values interface {
	Get(key string) string
}

// DraftFromForm captures the submitted fields.
func DraftFromForm(v Values) Draft {
	return Draft{
		Title:          v.Get(FieldTitle),
		Sector:         v.Get(FieldSector),
		SkillsRequired: v.Get(FieldSkills),
		Location:       v.Get(FieldLocation),
		Stipend:        v.Get(FieldStipend),
		Capacity:       v.Get(FieldCapacity),
		Department:     v.Get(FieldDepartment),
		Description:    v.Get(FieldDescription),
	}
}

// Build converts the draft into a create payload. An unparsable or negative
// stipend becomes 0, an unparsable or non-positive capacity becomes 1, a missing or unknown department becomes the
// first department and an empty sector takes the department's value.
// No other validation is applied.
func (d Draft) Build() models.NewInternship {
	dept, ok := models.ParseDepartment(strings.TrimSpace(d.Department))
	if !ok {
		dept = models.Departments[0]
	}

	sector := strings.TrimSpace(d.Sector)
	if sector == "" {
		sector = string(dept)
	}

	return models.NewInternship{
		Title:          strings.TrimSpace(d.Title),
		Sector:         sector,
		SkillsRequired: SplitSkills(d.SkillsRequired),
		Location:       strings.TrimSpace(d.Location),
		Stipend:        parseIntAtLeast(d.Stipend, 0, 0),
		Capacity:       parseIntAtLeast(d.Capacity, 1, 1),
		Department:     string(dept),
		Description:    strings.TrimSpace(d.Description),
	}
}

// SplitSkills splits a comma separated list, dropping blanks.
func SplitSkills(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseIntAtLeast returns fallback when raw is not an integer or is below min.
func parseIntAtLeast(raw string, min, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < min {
		return fallback
	}
	return n
}

// VisibleSkills returns the first limit skills and how many were left out.
func VisibleSkills(skills []string, limit int) ([]string, int) {
	if limit < 0 || len(skills) <= limit {
		return skills, 0
	}
	return skills[:limit], len(skills) - limit
}
