package services

import (
	"context"
	"fmt"

	"resume-tailor/internal/models"
	"resume-tailor/internal/repositories"
)

// ChatService answers questions about a job's generated resume and keeps
// the conversation in jobs.chat_history.
type ChatService interface {
	History(jobID int) ([]models.ChatTurn, error)
	Send(ctx context.Context, jobID int, message string) (*models.ChatResponse, error)
}

type chatService struct {
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	model         string
	maxRetries    int
}

func NewChatService(
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	model string,
	maxRetries int,
) ChatService {
	return &chatService{
		jobRepo:       jobRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		model:         model,
		maxRetries:    maxRetries,
	}
}

// History implements ChatService.
func (s *chatService) History(jobID int) ([]models.ChatTurn, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	return models.DecodeChatHistory(job.ChatHistory)
}

// Send implements ChatService. The user turn and the assistant reply are
// appended in order and the whole history is written back through the job
// store, which refreshes last_modified.
func (s *chatService) Send(ctx context.Context, jobID int, message string) (*models.ChatResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	history, err := models.DecodeChatHistory(job.ChatHistory)
	if err != nil {
		return nil, err
	}

	currentCV := ""
	if !models.IsEmptyJSON(job.GeneratedCV) {
		currentCV = string(job.GeneratedCV)
	}
	prompt := s.promptBuilder.BuildChatPrompt(history, message, currentCV)

	reply, err := s.geminiService.GenerateTextWithRetry(ctx, s.model, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("chat generation failed: %w", err)
	}

	history = append(history,
		models.ChatTurn{Role: models.ChatRoleUser, Content: message},
		models.ChatTurn{Role: models.ChatRoleAssistant, Content: reply},
	)

	encoded, err := models.EncodeChatHistory(history)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(job.JobID, &repositories.JobUpdateData{ChatHistory: encoded}); err != nil {
		return nil, fmt.Errorf("failed to persist chat history: %w", err)
	}

	return &models.ChatResponse{
		JobID:   job.JobID,
		Reply:   reply,
		History: history,
	}, nil
}
