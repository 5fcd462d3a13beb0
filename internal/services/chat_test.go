package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-tailor/internal/models"
	"resume-tailor/internal/repositories"
)

func newChatFixture(t *testing.T) (repositories.JobRepository, *models.Job) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)

	require.NoError(t, userRepo.Create(&models.User{UserID: "u1"}))

	job := &models.Job{UserID: "u1", JobDescription: "Backend role"}
	require.NoError(t, jobRepo.Create(job))

	return jobRepo, job
}

func TestChatSendAppendsBothTurns(t *testing.T) {
	jobRepo, job := newChatFixture(t)

	gemini := &fakeGemini{responses: []string{"Add more metrics to your bullets."}}
	chat := NewChatService(jobRepo, gemini, "test-model", 3)

	resp, err := chat.Send(context.Background(), job.JobID, "How can I improve my resume?")
	require.NoError(t, err)

	assert.Equal(t, job.JobID, resp.JobID)
	assert.Equal(t, "Add more metrics to your bullets.", resp.Reply)
	require.Len(t, resp.History, 2)
	assert.Equal(t, models.ChatTurn{Role: models.ChatRoleUser, Content: "How can I improve my resume?"}, resp.History[0])
	assert.Equal(t, models.ChatTurn{Role: models.ChatRoleAssistant, Content: "Add more metrics to your bullets."}, resp.History[1])

	// persisted, not just returned
	history, err := chat.History(job.JobID)
	require.NoError(t, err)
	assert.Equal(t, resp.History, history)
}

func TestChatSendReplaysEarlierTurns(t *testing.T) {
	jobRepo, job := newChatFixture(t)

	gemini := &fakeGemini{responses: []string{"First answer.", "Second answer."}}
	chat := NewChatService(jobRepo, gemini, "test-model", 3)

	_, err := chat.Send(context.Background(), job.JobID, "first question")
	require.NoError(t, err)

	resp, err := chat.Send(context.Background(), job.JobID, "second question")
	require.NoError(t, err)
	require.Len(t, resp.History, 4)

	// the second prompt carried the first exchange
	require.Len(t, gemini.prompts, 2)
	assert.Contains(t, gemini.prompts[1], "user: first question")
	assert.Contains(t, gemini.prompts[1], "assistant: First answer.")
}

func TestChatSendIncludesGeneratedCV(t *testing.T) {
	jobRepo, job := newChatFixture(t)

	require.NoError(t, jobRepo.Update(job.JobID, &repositories.JobUpdateData{
		GeneratedCV: []byte(`{"name": "Jane Doe"}`),
	}))

	gemini := &fakeGemini{responses: []string{"Looks good."}}
	chat := NewChatService(jobRepo, gemini, "test-model", 3)

	_, err := chat.Send(context.Background(), job.JobID, "Any feedback?")
	require.NoError(t, err)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "CURRENT CV:")
	assert.Contains(t, gemini.prompts[0], `"Jane Doe"`)
}

func TestChatHistoryEmptyByDefault(t *testing.T) {
	jobRepo, job := newChatFixture(t)

	chat := NewChatService(jobRepo, &fakeGemini{}, "test-model", 3)

	history, err := chat.History(job.JobID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatUnknownJob(t *testing.T) {
	jobRepo, _ := newChatFixture(t)

	chat := NewChatService(jobRepo, &fakeGemini{}, "test-model", 3)

	_, err := chat.History(404)
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)

	_, err = chat.Send(context.Background(), 404, "hello")
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
}
