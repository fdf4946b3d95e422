package recommender

import "internmatch-web/internal/common/validation"

const (
	schemaInternship     = "internship"
	schemaInternshipList = "internship_list"
	schemaRecommendation = "recommendation"
	schemaMutation       = "mutation"
)

const internshipSchema = `{
  "type": "object",
  "required": ["id", "title", "skills_required", "location", "stipend", "capacity", "department"],
  "properties": {
    "id":              {"type": "string"},
    "title":           {"type": "string"},
    "sector":          {"type": ["string", "null"]},
    "skills_required": {"type": "array", "items": {"type": "string"}},
    "location":        {"type": "string"},
    "stipend":         {"type": "integer", "minimum": 0},
    "capacity":        {"type": "integer", "minimum": 1},
    "department":      {"type": "string"},
    "description":     {"type": ["string", "null"]}
  }
}`

var schemas = validation.NewRegistry().
	MustRegister(schemaInternship, internshipSchema).
	MustRegister(schemaInternshipList, `{"type": "array"}`).
	MustRegister(schemaRecommendation, `{
  "type": "object",
  "required": ["internships", "match_scores"],
  "properties": {
    "internships":  {"type": "array", "items": `+internshipSchema+`},
    "match_scores": {"type": "array", "items": {"type": "number", "minimum": 0, "maximum": 1}}
  }
}`).
	MustRegister(schemaMutation, `{
  "type": "object",
  "properties": {
    "message": {"type": "string"},
    "id":      {"type": "string"}
  }
}`)
