// internal/models/candidate.go
package models

// Candidate is the profile a visitor submits as the query for recommendations.
type Candidate struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Education string   `json:"education"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Location  string   `json:"location"`
}

// Clone returns a deep copy so callers can mutate the slices freely.
func (c Candidate) Clone() Candidate {
	out := c
	out.Skills = append([]string{}, c.Skills...)
	out.Interests = append([]string{}, c.Interests...)
	return out
}
