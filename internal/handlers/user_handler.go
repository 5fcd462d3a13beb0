package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"resume-tailor/internal/models"
	"resume-tailor/internal/repositories"
	"resume-tailor/internal/services"
)

type UserHandler struct {
	userRepo       repositories.UserRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewUserHandler(
	userRepo repositories.UserRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *UserHandler {
	return &UserHandler{
		userRepo:       userRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleCreateUser handles POST /users. Expects a multipart form with a
// user_id field plus resume and linkedin PDF files; the extracted text is
// what gets persisted.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	userID := c.FormValue("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	resumeText, err := h.extractUpload(form, "resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	linkedinText, err := h.extractUpload(form, "linkedin")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user := &models.User{
		UserID:      userID,
		ResumeTxt:   resumeText,
		LinkedinTxt: linkedinText,
		CreatedAt:   time.Now(),
	}

	if err := h.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": fmt.Sprintf("user %q already exists", userID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateUserResponse{
		UserID:    user.UserID,
		ResumeLen: len(user.ResumeTxt),
		LinkedLen: len(user.LinkedinTxt),
	})
}

// HandleGetUser handles GET /users/:id.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load user",
		})
	}

	return c.JSON(user)
}

// extractUpload saves the named PDF upload and returns its extracted text.
func (h *UserHandler) extractUpload(form *multipart.Form, field string) (string, error) {
	files, exists := form.File[field]
	if !exists || len(files) == 0 {
		return "", fmt.Errorf("%s PDF is required", field)
	}

	file := files[0]
	if file.Size > h.maxFileSize {
		return "", fmt.Errorf("%s file too large. Max size: %d bytes", field, h.maxFileSize)
	}

	filename, filePath, err := h.storageService.SaveFile(file, field)
	if err != nil {
		return "", fmt.Errorf("failed to save %s file: %v", field, err)
	}

	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return "", fmt.Errorf("failed to extract text from %s file: %v", field, err)
	}

	return text, nil
}
