package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	JobID          int            `gorm:"column:job_id;primary_key;autoIncrement" json:"job_id"`
	UserID         string         `gorm:"column:user_id;type:text" json:"user_id"`
	JobDescription string         `gorm:"column:job_description;type:text" json:"job_description"`
	GeneratedCV    datatypes.JSON `gorm:"column:generated_cv;type:jsonb" json:"generated_cv,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	LastModified   time.Time      `gorm:"column:last_modified;type:timestamptz;default:now()" json:"last_modified"`
	ChatHistory    datatypes.JSON `gorm:"column:chat_history;type:jsonb" json:"chat_history,omitempty"`

	// Relation: jobs.user_id references users.user_id
	User User `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatTurn is a single entry in a job's chat_history document.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IsEmptyJSON reports whether a stored document column holds no data.
// datatypes.JSON scans a SQL NULL as the literal "null" document, so both
// shapes count as empty.
func IsEmptyJSON(raw datatypes.JSON) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// DecodeChatHistory unmarshals the stored chat_history column. A NULL or
// empty column decodes to an empty history.
func DecodeChatHistory(raw datatypes.JSON) ([]ChatTurn, error) {
	if IsEmptyJSON(raw) {
		return []ChatTurn{}, nil
	}

	var turns []ChatTurn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}

	return turns, nil
}

// EncodeChatHistory marshals chat turns back into the jsonb document shape.
func EncodeChatHistory(turns []ChatTurn) (datatypes.JSON, error) {
	data, err := json.Marshal(turns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat history: %w", err)
	}

	return datatypes.JSON(data), nil
}
