package models

import (
	"strings"
)

// Resume is the structured, ATS-friendly document the LLM produces and the
// renderer consumes. It is stored verbatim in jobs.generated_cv.
type Resume struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Github   string `json:"github,omitempty"`
	Location string `json:"location,omitempty"`

	Summary        string       `json:"summary,omitempty"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Volunteering   []Project    `json:"volunteering,omitempty"`
	Skills         []string     `json:"skills"`
	Education      []Education  `json:"education"`
	Courses        []Course     `json:"courses,omitempty"`
	Certifications []string     `json:"certifications"`
}

type Experience struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements"`
}

type Project struct {
	Role         string   `json:"role"`
	Organization string   `json:"organization"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements"`
}

type Education struct {
	Degree         string `json:"degree,omitempty"`
	Major          string `json:"major,omitempty"`
	Institution    string `json:"institution,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
	Location       string `json:"location,omitempty"`
	Achievements   string `json:"achievements,omitempty"`
}

type Course struct {
	Course         string `json:"course"`
	Institution    string `json:"institution,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
}

// ResumeFromMap maps a loosely shaped LLM payload into a Resume. The model
// does not always honour the schema exactly: projects may carry
// title/company instead of role/organization, skills may arrive as
// {"skill": ...} objects, and summary may be an object with a description
// field. All of those shapes are accepted here.
func ResumeFromMap(parsed map[string]interface{}) *Resume {
	r := &Resume{
		Name:     stringField(parsed, "name"),
		Email:    stringField(parsed, "email"),
		Phone:    stringField(parsed, "phone"),
		Linkedin: stringField(parsed, "linkedin"),
		Website:  stringField(parsed, "website"),
		Github:   stringField(parsed, "github"),
		Location: stringField(parsed, "location"),
		Summary:  summaryField(parsed),
	}

	if r.Name == "" {
		r.Name = stringField(parsed, "full_name")
	}
	if r.Name == "" {
		r.Name = "Unknown Name"
	}

	for _, item := range listField(parsed, "experience") {
		r.Experience = append(r.Experience, Experience{
			Role:         stringField(item, "role"),
			Company:      stringField(item, "company"),
			StartDate:    stringField(item, "start_date"),
			EndDate:      stringField(item, "end_date"),
			Location:     stringField(item, "location"),
			Achievements: achievementsField(item),
		})
	}

	r.Projects = projectsFromList(listField(parsed, "projects"))
	r.Volunteering = projectsFromList(listField(parsed, "volunteering"))

	for _, item := range listField(parsed, "education") {
		r.Education = append(r.Education, Education{
			Degree:         stringField(item, "degree"),
			Major:          stringField(item, "major"),
			Institution:    stringField(item, "institution"),
			GraduationYear: stringField(item, "graduation_year"),
			Location:       stringField(item, "location"),
			Achievements:   stringField(item, "achievements"),
		})
	}

	for _, item := range listField(parsed, "courses") {
		r.Courses = append(r.Courses, Course{
			Course:         stringField(item, "course"),
			Institution:    stringField(item, "institution"),
			GraduationYear: stringField(item, "graduation_year"),
		})
	}

	r.Skills = stringListField(parsed["skills"], "skill")
	r.Certifications = stringListField(parsed["certifications"], "title")

	return r
}

// projectsFromList normalizes project-shaped items, accepting the
// title/company aliases the LLM sometimes emits.
func projectsFromList(items []map[string]interface{}) []Project {
	var out []Project
	for _, item := range items {
		role := stringField(item, "role")
		if role == "" {
			role = stringField(item, "title")
		}
		org := stringField(item, "organization")
		if org == "" {
			org = stringField(item, "company")
		}

		out = append(out, Project{
			Role:         role,
			Organization: org,
			StartDate:    stringField(item, "start_date"),
			EndDate:      stringField(item, "end_date"),
			Location:     stringField(item, "location"),
			Achievements: achievementsField(item),
		})
	}
	return out
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func summaryField(m map[string]interface{}) string {
	switch v := m["summary"].(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		return stringField(v, "description")
	default:
		return ""
	}
}

func listField(m map[string]interface{}, key string) []map[string]interface{} {
	var out []map[string]interface{}

	switch v := m[key].(type) {
	case []interface{}:
		for _, item := range v {
			if entry, ok := item.(map[string]interface{}); ok {
				out = append(out, entry)
			}
		}
	case map[string]interface{}:
		// single item where a list was expected
		out = append(out, v)
	}

	return out
}

// achievementsField flattens bullet lists, stripping embedded newlines so
// each bullet renders on a single line.
func achievementsField(m map[string]interface{}) []string {
	items, ok := m["achievements"].([]interface{})
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// stringListField accepts either plain strings or objects holding the value
// under objectKey ({"skill": "Go"} style lists).
func stringListField(v interface{}, objectKey string) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(items))

	for _, item := range items {
		var s string
		switch t := item.(type) {
		case string:
			s = t
		case map[string]interface{}:
			s = stringField(t, objectKey)
		}

		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	return out
}
