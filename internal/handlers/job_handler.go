package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resume-tailor/internal/models"
	"resume-tailor/internal/repositories"
	"resume-tailor/internal/services"
)

type JobHandler struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	worker   services.Worker
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	worker services.Worker,
) *JobHandler {
	return &JobHandler{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		worker:   worker,
	}
}

// HandleCreateJob handles POST /jobs.
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	if req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	job := &models.Job{
		UserID:         req.UserID,
		JobDescription: req.JobDescription,
	}

	if err := h.jobRepo.Create(job); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleGetJob handles GET /jobs/:id.
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
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

	return c.JSON(job)
}

// HandleListJobs handles GET /users/:id/jobs, oldest first.
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	userID := c.Params("id")

	if _, err := h.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load user",
		})
	}

	jobs, err := h.jobRepo.FindByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list jobs",
		})
	}

	return c.JSON(fiber.Map{
		"user_id": userID,
		"jobs":    jobs,
	})
}

// HandleGenerate handles POST /jobs/:id/generate. Generation is queued and
// runs in the background; poll GET /jobs/:id until generated_cv appears.
func (h *JobHandler) HandleGenerate(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load job",
		})
	}

	if !h.worker.EnqueueJob(jobID) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "generation queue unavailable",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.GenerateResponse{
		JobID:  jobID,
		Status: "queued",
	})
}
