package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-tailor/internal/models"
)

func newTestRenderer(t *testing.T) RendererService {
	t.Helper()

	renderer, err := NewRendererService("../../templates", "", 30*time.Second)
	require.NoError(t, err)
	return renderer
}

func TestNewRendererServiceMissingTemplate(t *testing.T) {
	_, err := NewRendererService(t.TempDir(), "", 30*time.Second)
	assert.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	renderer := newTestRenderer(t)

	resume := &models.Resume{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Summary: "Backend engineer with ten years of experience.",
		Experience: []models.Experience{
			{
				Role:         "Staff Engineer",
				Company:      "Acme Corp",
				StartDate:    "2019",
				EndDate:      "Present",
				Achievements: []string{"Cut p99 latency by 40%"},
			},
		},
		Skills:         []string{"Go", "PostgreSQL"},
		Certifications: []string{"Project Management Professional (PMP)"},
	}

	html, err := renderer.RenderHTML(resume)
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "jane@example.com")
	assert.Contains(t, html, "Staff Engineer")
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, "Cut p99 latency by 40%")
	assert.Contains(t, html, "Project Management Professional (PMP)")
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	renderer := newTestRenderer(t)

	resume := &models.Resume{Name: "<script>alert(1)</script>"}

	html, err := renderer.RenderHTML(resume)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
