package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gorm.io/datatypes"

	"resume-tailor/internal/models"
	"resume-tailor/internal/repositories"
)

// GeneratorService turns a job's description plus the owning user's
// documents into a structured resume and persists it on the job row.
type GeneratorService interface {
	GenerateResume(ctx context.Context, jobID int) (*models.Resume, error)
}

type generatorService struct {
	userRepo      repositories.UserRepository
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	optimizer     *ResumeOptimizer
	model         string
	maxRetries    int
}

func NewGeneratorService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	model string,
	maxRetries int,
) GeneratorService {
	return &generatorService{
		userRepo:      userRepo,
		jobRepo:       jobRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		optimizer:     NewResumeOptimizer(),
		model:         model,
		maxRetries:    maxRetries,
	}
}

// GenerateResume implements GeneratorService. The LLM call happens outside
// any database transaction; only the final Update touches the store.
func (g *generatorService) GenerateResume(ctx context.Context, jobID int) (*models.Resume, error) {
	job, err := g.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	user, err := g.userRepo.FindByID(job.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	log.Printf("🔄 Generating resume for job %d (user %s)\n", job.JobID, user.UserID)

	prompt := g.promptBuilder.BuildResumePrompt(user.ResumeTxt, user.LinkedinTxt, job.JobDescription)

	response, err := g.geminiService.GenerateTextWithRetry(ctx, g.model, prompt, 0.25, g.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("resume generation failed: %w", err)
	}

	var parsed map[string]interface{}
	if err := parseJSONResponse(response, &parsed); err != nil {
		return nil, err
	}

	resume := models.ResumeFromMap(parsed)
	resume.Certifications = mergeCertifications(
		resume.Certifications,
		detectCertifications(user.ResumeTxt),
		detectCertifications(user.LinkedinTxt),
	)

	resume = g.optimizer.OptimizeResume(resume, job.JobDescription)

	payload, err := json.Marshal(resume)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	update := &repositories.JobUpdateData{GeneratedCV: datatypes.JSON(payload)}
	if err := g.jobRepo.Update(job.JobID, update); err != nil {
		return nil, fmt.Errorf("failed to persist resume: %w", err)
	}

	log.Printf("✅ Resume generated for job %d\n", job.JobID)
	return resume, nil
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown
// or other formatting around the object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}

// knownCertifications maps a canonical title to substrings that indicate it
// in raw document text.
var knownCertifications = []struct {
	title string
	keys  []string
}{
	{"Project Management Professional (PMP)", []string{"pmp", "project management professional"}},
	{"Export Compliance Certification", []string{"export compliance", "citi program", "citi"}},
	{"Certified Scrum Master (CSM)", []string{"scrum master", "csm"}},
	{"Lean Six Sigma", []string{"six sigma", "lean six sigma"}},
}

// detectCertifications scans raw resume/LinkedIn text for certifications
// the LLM may have missed: the known table first, then short lines that
// mention a certificate.
func detectCertifications(text string) []string {
	if text == "" {
		return nil
	}

	var found []string
	lower := strings.ToLower(text)

	for _, cert := range knownCertifications {
		for _, key := range cert.keys {
			if strings.Contains(lower, key) {
				found = append(found, cert.title)
				break
			}
		}
	}

	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		line = strings.Trim(line, " -•*")
		low := strings.ToLower(line)
		if (strings.Contains(low, "cert") || strings.Contains(low, "certificate")) && len(line) < 120 && line != "" {
			found = append(found, line)
		}
	}

	return found
}

func mergeCertifications(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, list := range lists {
		for _, cert := range list {
			if cert != "" && !seen[cert] {
				seen[cert] = true
				out = append(out, cert)
			}
		}
	}

	return out
}
