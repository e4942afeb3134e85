package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription is a recurring payment tracked by a user. Updates are a
// full overwrite of the mutable fields (name, amount, frequency).
type Subscription struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	UserID    uint    `json:"user_id" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"size:100;not null"`
	Amount    float64 `json:"amount" gorm:"type:decimal(10,2);not null"`
	Frequency string  `json:"frequency" gorm:"size:10;not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Subscription) TableName() string {
	return "subscriptions"
}

// Subscription frequencies.
const (
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// ValidFrequency reports whether f is monthly or yearly.
func ValidFrequency(f string) bool {
	return f == FrequencyMonthly || f == FrequencyYearly
}
