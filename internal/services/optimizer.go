package services

import (
	"regexp"
	"sort"
	"strings"

	"resume-tailor/internal/models"
)

// ResumeOptimizer trims a generated resume down to one-page size while
// keeping the content most relevant to the target job description.
type ResumeOptimizer struct {
	maxContentLength  int
	maxBulletsPerRole int
	minBulletsPerRole int
	maxSkills         int
	maxProjects       int
}

func NewResumeOptimizer() *ResumeOptimizer {
	return &ResumeOptimizer{
		maxContentLength:  4000, // estimated chars for one page
		maxBulletsPerRole: 4,
		minBulletsPerRole: 2,
		maxSkills:         20,
		maxProjects:       3,
	}
}

var (
	techTermPattern = regexp.MustCompile(`(?i)\b(Python|Java|JavaScript|Go|Golang|React|Node\.?js|SQL|AWS|Azure|Docker|Kubernetes)\b`)
	softTermPattern = regexp.MustCompile(`(?i)\b(Agile|Scrum|Project Management|Leadership|Analytics|Machine Learning)\b`)
	capitalizedTerm = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*\b`)

	businessTerms = []string{
		"leadership", "management", "strategy", "analytics", "optimization",
		"collaboration", "communication", "problem solving", "innovation",
		"process improvement", "customer service", "sales", "marketing",
	}
)

// ExtractJobKeywords pulls key skills and technologies out of a job
// description.
func (o *ResumeOptimizer) ExtractJobKeywords(jobDescription string) []string {
	seen := make(map[string]bool)
	var keywords []string

	add := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && !seen[term] {
			seen[term] = true
			keywords = append(keywords, term)
		}
	}

	for _, pattern := range []*regexp.Regexp{techTermPattern, softTermPattern, capitalizedTerm} {
		for _, match := range pattern.FindAllString(jobDescription, -1) {
			add(match)
		}
	}

	jobLower := strings.ToLower(jobDescription)
	for _, term := range businessTerms {
		if strings.Contains(jobLower, term) {
			add(term)
		}
	}

	return keywords
}

// scoreRelevance scores text by the fraction of keywords it mentions.
func scoreRelevance(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}

	textLower := strings.ToLower(text)
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			matches++
		}
	}

	return float64(matches) / float64(len(keywords))
}

// OptimizeResume returns a trimmed copy of the resume: the most relevant
// bullets per role, the top skills and projects, and a staged cut-down when
// the estimated content still exceeds one page.
func (o *ResumeOptimizer) OptimizeResume(resume *models.Resume, jobDescription string) *models.Resume {
	keywords := o.ExtractJobKeywords(jobDescription)

	optimized := *resume
	optimized.Experience = o.optimizeExperience(resume.Experience, keywords)
	optimized.Skills = o.optimizeSkills(resume.Skills, keywords)
	optimized.Projects = o.optimizeProjects(resume.Projects, keywords, o.maxProjects)
	if len(resume.Volunteering) > 0 {
		optimized.Volunteering = o.optimizeProjects(resume.Volunteering, keywords, 2)
	}

	if o.estimateContentLength(&optimized) > o.maxContentLength {
		optimized.Volunteering = nil

		if len(optimized.Projects) > 2 {
			optimized.Projects = optimized.Projects[:2]
		}

		for i := range optimized.Experience {
			if len(optimized.Experience[i].Achievements) > 3 {
				optimized.Experience[i].Achievements = optimized.Experience[i].Achievements[:3]
			}
		}
	}

	return &optimized
}

// optimizeExperience keeps every role but trims each to its 2-4 most
// relevant achievements.
func (o *ResumeOptimizer) optimizeExperience(experience []models.Experience, keywords []string) []models.Experience {
	if len(experience) == 0 {
		return experience
	}

	out := make([]models.Experience, len(experience))
	for i, exp := range experience {
		out[i] = exp
		if len(exp.Achievements) == 0 {
			continue
		}

		ranked := rankByRelevance(exp.Achievements, keywords)

		keep := len(ranked)
		if keep > o.maxBulletsPerRole {
			keep = o.maxBulletsPerRole
		}
		if keep < o.minBulletsPerRole && len(ranked) >= o.minBulletsPerRole {
			keep = o.minBulletsPerRole
		}

		out[i].Achievements = ranked[:keep]
	}

	return out
}

// optimizeSkills filters skills to the ones matching the job, most relevant
// first.
func (o *ResumeOptimizer) optimizeSkills(skills []string, keywords []string) []string {
	if len(skills) == 0 {
		return nil
	}

	keywordText := strings.ToLower(strings.Join(keywords, " "))

	type scored struct {
		skill string
		score float64
	}

	ranked := make([]scored, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}

		score := scoreRelevance(skill, keywords)
		// skills named verbatim in the job description rank first
		if strings.Contains(keywordText, strings.ToLower(skill)) {
			score += 0.5
		}
		ranked = append(ranked, scored{skill: skill, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	keep := len(ranked)
	if keep > o.maxSkills {
		keep = o.maxSkills
	}

	out := make([]string, 0, keep)
	for _, s := range ranked[:keep] {
		out = append(out, s.skill)
	}
	return out
}

// optimizeProjects keeps the most relevant projects, each trimmed to its
// top 3 achievements.
func (o *ResumeOptimizer) optimizeProjects(projects []models.Project, keywords []string, maxProjects int) []models.Project {
	if len(projects) == 0 {
		return projects
	}

	type scored struct {
		project models.Project
		score   float64
	}

	ranked := make([]scored, 0, len(projects))
	for _, project := range projects {
		text := project.Role + " " + project.Organization + " " + strings.Join(project.Achievements, " ")
		ranked = append(ranked, scored{project: project, score: scoreRelevance(text, keywords)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	keep := len(ranked)
	if keep > maxProjects {
		keep = maxProjects
	}

	out := make([]models.Project, 0, keep)
	for _, s := range ranked[:keep] {
		project := s.project
		if len(project.Achievements) > 3 {
			project.Achievements = rankByRelevance(project.Achievements, keywords)[:3]
		}
		out = append(out, project)
	}
	return out
}

func rankByRelevance(items []string, keywords []string) []string {
	type scored struct {
		text  string
		score float64
	}

	ranked := make([]scored, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, scored{text: item, score: scoreRelevance(item, keywords)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.text)
	}
	return out
}

// estimateContentLength approximates the rendered character count of the
// resume body.
func (o *ResumeOptimizer) estimateContentLength(resume *models.Resume) int {
	total := len(resume.Name) + len(resume.Email) + len(resume.Phone) + len(resume.Summary)

	for _, exp := range resume.Experience {
		total += len(exp.Role) + len(exp.Company)
		for _, a := range exp.Achievements {
			total += len(a)
		}
	}

	for _, lists := range [][]models.Project{resume.Projects, resume.Volunteering} {
		for _, project := range lists {
			total += len(project.Role) + len(project.Organization)
			for _, a := range project.Achievements {
				total += len(a)
			}
		}
	}

	for _, skill := range resume.Skills {
		total += len(skill)
	}

	return total
}
