// internal/models/internship.go
package models

// Internship is a posting owned by the recommendation service.
type Internship struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Sector         string   `json:"sector"`
	SkillsRequired []string `json:"skills_required"`
	Location       string   `json:"location"`
	Stipend        int      `json:"stipend"`
	Capacity       int      `json:"capacity"`
	Department     string   `json:"department"`
	Description    string   `json:"description,omitempty"`
}

// NewInternship is the create payload: an Internship without its server-assigned id.
type NewInternship struct {
	Title          string   `json:"title"`
	Sector         string   `json:"sector"`
	SkillsRequired []string `json:"skills_required"`
	Location       string   `json:"location"`
	Stipend        int      `json:"stipend"`
	Capacity       int      `json:"capacity"`
	Department     string   `json:"department"`
	Description    string   `json:"description,omitempty"`
}

// MutationResult is the acknowledgement body of add/delete calls.
type MutationResult struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
