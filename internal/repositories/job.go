package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resume-tailor/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(jobID int) (*models.Job, error)
	FindByUserID(userID string) ([]models.Job, error)
	Update(jobID int, data *JobUpdateData) error
}

// JobUpdateData carries the updatable job fields. Nil means "leave as is".
// last_modified is not here on purpose: every update refreshes it and
// callers cannot override that.
type JobUpdateData struct {
	GeneratedCV datatypes.JSON
	ChatHistory datatypes.JSON
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository. The job_id is assigned by the database
// sequence; generated_cv and chat_history start out NULL. A user_id that
// does not exist fails with ErrForeignKeyViolation and persists nothing.
func (r *jobRepository) Create(job *models.Job) error {
	now := time.Now()
	job.CreatedAt = now
	job.LastModified = now

	if err := r.db.Create(job).Error; err != nil {
		if translated := translateConstraintError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(jobID int) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// FindByUserID implements JobRepository. Results are ordered created_at
// ascending so listings are deterministic.
func (r *jobRepository) FindByUserID(userID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// Update implements JobRepository. Whatever subset of fields the caller
// supplies, last_modified is overwritten with the current time; on postgres
// the jobs trigger enforces the same rule inside the database.
func (r *jobRepository) Update(jobID int, data *JobUpdateData) error {
	updates := map[string]interface{}{
		"last_modified": time.Now(),
	}

	if data != nil {
		if data.GeneratedCV != nil {
			updates["generated_cv"] = data.GeneratedCV
		}
		if data.ChatHistory != nil {
			updates["chat_history"] = data.ChatHistory
		}
	}

	result := r.db.Model(&models.Job{}).
		Where("job_id = ?", jobID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}
