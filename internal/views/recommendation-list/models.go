// internal/views/recommendation-list/models.go
package recommendationlist

// Card is one recommended internship as displayed.
type Card struct {
	ID          string
	Title       string
	Department  string
	Location    string
	Stipend     int
	Capacity    int
	Description string
	Percent     int
	Skills      []string
	MoreSkills  int
}

type View struct {
	Cards []Card
	Empty bool
}
