// internal/models/options.go
package models

// Department is the closed classification of an internship.
type Department string

const (
	DepartmentIT         Department = "IT"
	DepartmentFinance    Department = "Finance"
	DepartmentHealthcare Department = "Healthcare"
	DepartmentEducation  Department = "Education"
	DepartmentMarketing  Department = "Marketing"
	DepartmentOperations Department = "Operations"
)

// Departments lists the enumeration in its canonical order.
var Departments = []Department{
	DepartmentIT,
	DepartmentFinance,
	DepartmentHealthcare,
	DepartmentEducation,
	DepartmentMarketing,
	DepartmentOperations,
}

// ParseDepartment returns the department matching s exactly.
func ParseDepartment(s string) (Department, bool) {
	for _, d := range Departments {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

var (
	EducationOptions = []string{
		"High School", "Diploma", "Bachelor's", "Master's", "PhD",
	}

	SkillOptions = []string{
		"JavaScript", "Python", "Java", "React", "Node.js", "SQL", "Excel",
		"PowerPoint", "Communication", "Leadership", "Project Management",
		"Data Analysis", "Marketing", "Finance", "Healthcare", "Teaching",
	}

	LocationOptions = []string{
		"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Pune", "Hyderabad", "Remote",
	}
)

// InterestOptions mirrors the department enumeration.
func InterestOptions() []string {
	out := make([]string, 0, len(Departments))
	for _, d := range Departments {
		out = append(out, string(d))
	}
	return out
}

// Contains reports whether v is one of options.
func Contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
