package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-tailor/internal/models"
)

const sampleJD = `We are hiring a Senior Backend Engineer.
Requirements: Python, Go, Docker, Kubernetes, SQL and AWS experience.
Strong leadership and communication skills. Agile environment.`

func TestExtractJobKeywords(t *testing.T) {
	o := NewResumeOptimizer()

	keywords := o.ExtractJobKeywords(sampleJD)
	require.NotEmpty(t, keywords)

	for _, expected := range []string{"python", "go", "docker", "kubernetes", "aws", "leadership", "communication", "agile"} {
		assert.Contains(t, keywords, expected, "keyword %q should be extracted", expected)
	}
}

func TestScoreRelevance(t *testing.T) {
	keywords := []string{"python", "docker"}

	assert.Zero(t, scoreRelevance("", keywords))
	assert.Zero(t, scoreRelevance("some text", nil))
	assert.InDelta(t, 0.5, scoreRelevance("Wrote Python services", keywords), 0.001)
	assert.InDelta(t, 1.0, scoreRelevance("Python apps in Docker", keywords), 0.001)
}

func TestOptimizeResumeTrimsBulletsAndSkills(t *testing.T) {
	o := NewResumeOptimizer()

	bullets := []string{
		"Migrated services to Docker and Kubernetes",
		"Organized the office party",
		"Led a team of five engineers",
		"Rewrote billing in Python",
		"Watered the plants",
		"Cut AWS spend by 40%",
	}

	skills := make([]string, 0, 30)
	skills = append(skills, "Python", "Docker")
	for i := 0; i < 28; i++ {
		skills = append(skills, fmt.Sprintf("Niche Skill %d", i))
	}

	resume := &models.Resume{
		Name: "Jane Doe",
		Experience: []models.Experience{
			{Role: "Engineer", Company: "Acme", Achievements: bullets},
		},
		Skills: skills,
	}

	optimized := o.OptimizeResume(resume, sampleJD)

	require.Len(t, optimized.Experience, 1)
	assert.LessOrEqual(t, len(optimized.Experience[0].Achievements), 4)
	assert.Contains(t, optimized.Experience[0].Achievements, "Migrated services to Docker and Kubernetes")
	assert.NotContains(t, optimized.Experience[0].Achievements, "Watered the plants")

	assert.LessOrEqual(t, len(optimized.Skills), 20)
	assert.Contains(t, optimized.Skills, "Python")
	assert.Contains(t, optimized.Skills, "Docker")

	// input is not mutated
	assert.Len(t, resume.Experience[0].Achievements, 6)
	assert.Len(t, resume.Skills, 30)
}

func TestOptimizeResumeKeepsTopProjects(t *testing.T) {
	o := NewResumeOptimizer()

	resume := &models.Resume{
		Name: "Jane Doe",
		Projects: []models.Project{
			{Role: "Author", Organization: "Cookbook club"},
			{Role: "Maintainer", Organization: "OSS", Achievements: []string{"Python tooling in Docker"}},
			{Role: "Gardener", Organization: "Community"},
			{Role: "Builder", Organization: "Homelab", Achievements: []string{"Kubernetes cluster on AWS"}},
		},
	}

	optimized := o.OptimizeResume(resume, sampleJD)

	require.Len(t, optimized.Projects, 3)
	assert.Equal(t, "Maintainer", optimized.Projects[0].Role)
	assert.Equal(t, "Builder", optimized.Projects[1].Role)
}

func TestOptimizeResumeCutsDownOversizedContent(t *testing.T) {
	o := NewResumeOptimizer()

	longBullet := strings.Repeat("delivered measurable results across Python platforms ", 20)
	resume := &models.Resume{
		Name: "Jane Doe",
		Experience: []models.Experience{
			{Role: "Engineer", Company: "Acme", Achievements: []string{longBullet, longBullet, longBullet, longBullet}},
			{Role: "Engineer", Company: "Beta", Achievements: []string{longBullet, longBullet, longBullet, longBullet}},
		},
		Projects: []models.Project{
			{Role: "A", Organization: "X", Achievements: []string{longBullet}},
			{Role: "B", Organization: "Y", Achievements: []string{longBullet}},
			{Role: "C", Organization: "Z", Achievements: []string{longBullet}},
		},
		Volunteering: []models.Project{
			{Role: "Helper", Organization: "Shelter", Achievements: []string{longBullet}},
		},
	}

	optimized := o.OptimizeResume(resume, sampleJD)

	assert.Empty(t, optimized.Volunteering, "volunteering is dropped first when over budget")
	assert.LessOrEqual(t, len(optimized.Projects), 2)
	for _, exp := range optimized.Experience {
		assert.LessOrEqual(t, len(exp.Achievements), 3)
	}
}
