package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"resume-tailor/internal/models"
	"resume-tailor/internal/repositories"
	"resume-tailor/internal/services"
)

type RenderHandler struct {
	jobRepo  repositories.JobRepository
	renderer services.RendererService
}

func NewRenderHandler(jobRepo repositories.JobRepository, renderer services.RendererService) *RenderHandler {
	return &RenderHandler{
		jobRepo:  jobRepo,
		renderer: renderer,
	}
}

// HandleDownloadPDF handles GET /jobs/:id/resume.pdf. The stored
// generated_cv document is rendered on demand.
func (h *RenderHandler) HandleDownloadPDF(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load job",
		})
	}

	if models.IsEmptyJSON(job.GeneratedCV) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "no resume generated for this job yet",
		})
	}

	var resume models.Resume
	if err := json.Unmarshal(job.GeneratedCV, &resume); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "stored resume is not valid",
		})
	}

	pdf, err := h.renderer.RenderPDF(c.Context(), &resume)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render PDF",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="Resume_%s_%d.pdf"`, job.UserID, job.JobID))

	return c.Send(pdf)
}
