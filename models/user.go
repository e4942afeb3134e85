package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatarURL is used when signup does not include an avatar image
// or the upload fails.
const DefaultAvatarURL = "/icons/default-avatar.svg"

// User is an account. Email is the login identifier.
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Email       string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password    string         `json:"-" gorm:"size:255;not null"`
	DisplayName string         `json:"display_name" gorm:"size:100"`
	AvatarURL   string         `json:"avatar_url" gorm:"size:500"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
