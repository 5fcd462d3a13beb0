package models

import (
	"time"
)

type User struct {
	UserID      string    `gorm:"column:user_id;type:text;primary_key" json:"user_id"`
	ResumeTxt   string    `gorm:"column:resume_txt;type:text" json:"resume_txt"`
	LinkedinTxt string    `gorm:"column:linkedin_txt;type:text" json:"linkedin_txt"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
}

func (u *User) TableName() string {
	return "users"
}
