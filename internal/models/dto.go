package models

type CreateUserResponse struct {
	UserID    string `json:"user_id"`
	ResumeLen int    `json:"resume_chars"`
	LinkedLen int    `json:"linkedin_chars"`
}

type CreateJobRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type GenerateResponse struct {
	JobID  int    `json:"job_id"`
	Status string `json:"status"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	JobID   int        `json:"job_id"`
	Reply   string     `json:"reply"`
	History []ChatTurn `json:"history"`
}
