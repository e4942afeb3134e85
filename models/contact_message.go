package models

import (
	"regexp"
	"time"

	"gorm.io/gorm"
)

// AnonymousUID marks contact messages submitted without a session.
const AnonymousUID = "anonymous"

// ContactMessage is a contact-form submission. Creating one triggers
// exactly one owner notification; the app never reads messages back.
type ContactMessage struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;not null"`
	Email    string `json:"email" gorm:"size:100;not null"`
	Message  string `json:"message" gorm:"size:2000;not null"`
	UID      string `json:"uid" gorm:"size:64;not null;default:anonymous"`
	Notified bool   `json:"notified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// emailPattern is intentionally loose: anything@anything.anything.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s passes the basic syntactic check.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Complete reports whether the three required text fields are present.
// Incomplete messages are dropped by the notifier without a send.
func (m *ContactMessage) Complete() bool {
	return m.Name != "" && m.Email != "" && m.Message != ""
}
