package repositories

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resume-tailor/internal/config"
	"resume-tailor/internal/models"
)

func createTestUser(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	require.NoError(t, NewUserRepository(db).Create(&models.User{UserID: userID}))
}

func TestCreateJobAssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "u1")
	repo := NewJobRepository(db)

	first := &models.Job{UserID: "u1", JobDescription: "Senior Engineer"}
	require.NoError(t, repo.Create(first))
	assert.Equal(t, 1, first.JobID)

	second := &models.Job{UserID: "u1", JobDescription: "Staff Engineer"}
	require.NoError(t, repo.Create(second))
	assert.Greater(t, second.JobID, first.JobID)

	// fresh jobs have no generated CV or chat history
	got, err := repo.FindByID(first.JobID)
	require.NoError(t, err)
	assert.True(t, models.IsEmptyJSON(got.GeneratedCV))
	assert.True(t, models.IsEmptyJSON(got.ChatHistory))
	assert.WithinDuration(t, got.CreatedAt, got.LastModified, time.Millisecond)
}

func TestCreateJobGhostUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRepository(db)

	err := repo.Create(&models.Job{UserID: "ghost", JobDescription: "anything"})
	require.ErrorIs(t, err, ErrForeignKeyViolation)

	// nothing persisted
	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateJobSetsGeneratedCV(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "u1")
	repo := NewJobRepository(db)

	job := &models.Job{UserID: "u1", JobDescription: "Senior Engineer"}
	require.NoError(t, repo.Create(job))
	require.Equal(t, 1, job.JobID)

	time.Sleep(20 * time.Millisecond)

	cv := datatypes.JSON(`{"name": "Jane Doe"}`)
	require.NoError(t, repo.Update(job.JobID, &JobUpdateData{GeneratedCV: cv}))

	got, err := repo.FindByID(job.JobID)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(got.GeneratedCV, &parsed))
	assert.Equal(t, "Jane Doe", parsed["name"])

	assert.True(t, got.LastModified.After(got.CreatedAt),
		"last_modified should move past created_at on update")
	assert.Equal(t, "Senior Engineer", got.JobDescription, "untouched fields survive updates")
}

func TestUpdateJobAlwaysRefreshesLastModified(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "u1")
	repo := NewJobRepository(db)

	job := &models.Job{UserID: "u1", JobDescription: "d"}
	require.NoError(t, repo.Create(job))

	before, err := repo.FindByID(job.JobID)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	// no fields supplied at all, last_modified is refreshed regardless
	require.NoError(t, repo.Update(job.JobID, nil))

	after, err := repo.FindByID(job.JobID)
	require.NoError(t, err)
	assert.True(t, after.LastModified.After(before.LastModified))
	assert.False(t, after.LastModified.Before(after.CreatedAt))
}

func TestUpdateJobNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRepository(db)

	err := repo.Update(404, &JobUpdateData{GeneratedCV: datatypes.JSON(`{}`)})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestFindJobNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRepository(db)

	_, err := repo.FindByID(404)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestListJobsOrderedByCreation(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "u1")
	createTestUser(t, db, "u2")
	repo := NewJobRepository(db)

	for _, desc := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(&models.Job{UserID: "u1", JobDescription: desc}))
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, repo.Create(&models.Job{UserID: "u2", JobDescription: "other user"}))

	jobs, err := repo.FindByUserID("u1")
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, "first", jobs[0].JobDescription)
	assert.Equal(t, "second", jobs[1].JobDescription)
	assert.Equal(t, "third", jobs[2].JobDescription)

	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i].CreatedAt.Before(jobs[i-1].CreatedAt))
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	// newTestDB already migrated once; a second run must be a no-op
	require.NoError(t, config.Migrate(db))

	createTestUser(t, db, "u1")
	repo := NewJobRepository(db)
	require.NoError(t, repo.Create(&models.Job{UserID: "u1", JobDescription: "still works"}))
}
