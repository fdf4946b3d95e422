// internal/models/recommendation.go
package models

import "math"

// RecommendationResponse pairs internships with match scores by index.
// Both lists always have the same length; never reorder one without the other.
type RecommendationResponse struct {
	Internships []Internship `json:"internships"`
	MatchScores []float64    `json:"match_scores"`
}

// Consistent reports whether the parallel lists line up.
func (r *RecommendationResponse) Consistent() bool {
	return r != nil && len(r.Internships) == len(r.MatchScores)
}

// Recommendation is one index-aligned pair, used for display.
type Recommendation struct {
	Internship Internship
	Score      float64
}

// MatchPercent is the display-only percentage round(score*100).
func (r Recommendation) MatchPercent() int {
	return int(math.Round(r.Score * 100))
}

// Pairs zips the parallel lists without reordering. Extra entries on either
// side are dropped, which only happens for inconsistent responses.
func (r *RecommendationResponse) Pairs() []Recommendation {
	if r == nil {
		return nil
	}
	n := len(r.Internships)
	if len(r.MatchScores) < n {
		n = len(r.MatchScores)
	}
	out := make([]Recommendation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Recommendation{Internship: r.Internships[i], Score: r.MatchScores[i]})
	}
	return out
}
