package services

import (
	"fmt"
	"strings"

	"resume-tailor/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// resumeSchemaInstructions describes the JSON shape the generator expects
// back. Kept in one place so the parser and the prompt never drift.
const resumeSchemaInstructions = `Return ONLY a single JSON object, no markdown fences and no commentary, with this shape:
{
  "name": string,
  "email": string, "phone": string,
  "linkedin": string, "website": string, "github": string,
  "summary": string,
  "experience": [{"role": string, "company": string, "start_date": string, "end_date": string, "location": string, "achievements": [string]}],
  "projects": [{"role": string, "organization": string, "start_date": string, "end_date": string, "location": string, "achievements": [string]}],
  "skills": [string],
  "education": [{"degree": string, "major": string, "institution": string, "graduation_year": string, "location": string, "achievements": string}],
  "courses": [{"course": string, "institution": string, "graduation_year": string}],
  "certifications": [string]
}
Omit fields you have no data for.`

// BuildResumePrompt creates the prompt for tailored resume generation from
// the user's verified documents and the target job description.
func (pb *PromptBuilder) BuildResumePrompt(resumeText, linkedinText, jobDescription string) string {
	return fmt.Sprintf(`You are a professional career assistant.
Build a factual, concise, structured resume (JSON) based ONLY on the provided documents.
Use the resume text and LinkedIn text as authoritative sources.
Do NOT invent any information. If a field is missing, leave it empty.
Include all relevant roles, bullets, education, certifications, and contacts.

Here are the verified documents:

RESUME TEXT:
%s

LINKEDIN TEXT:
%s

JOB DESCRIPTION:
%s

%s

Requirements:
- Use the resume text and LinkedIn text to fill all fields: name, contacts, experience, education, skills, certifications
- Produce 1-5 concise bullets per role emphasizing accomplishments and outcomes
- Include all contact links present in the source (LinkedIn, website, GitHub)
- Keep the resume concise, one-page style
- Do NOT invent names, dates, companies, or bullets not present in the source`,
		resumeText, linkedinText, jobDescription, resumeSchemaInstructions)
}

// BuildChatPrompt creates the prompt for a chat turn about an already
// generated resume. History turns are replayed in order so the model keeps
// conversational context.
func (pb *PromptBuilder) BuildChatPrompt(history []models.ChatTurn, message, currentCV string) string {
	var sb strings.Builder

	sb.WriteString("You are a professional career assistant. Provide suggestions based on the user's CV.\n")
	sb.WriteString("Answer with plain text, no JSON.\n\n")

	if currentCV != "" {
		sb.WriteString("CURRENT CV:\n")
		sb.WriteString(currentCV)
		sb.WriteString("\n\n")
	}

	if len(history) > 0 {
		sb.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range history {
			sb.WriteString(turn.Role)
			sb.WriteString(": ")
			sb.WriteString(turn.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("user: ")
	sb.WriteString(message)

	return sb.String()
}
