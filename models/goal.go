package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal is a savings goal. CurrentAmount may exceed TargetAmount; only
// the reported progress is capped. Deadline is validated against today
// at creation only and is stored as entered.
type Goal struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	UserID        uint    `json:"user_id" gorm:"index;not null"`
	Name          string  `json:"name" gorm:"size:100;not null"`
	TargetAmount  float64 `json:"target_amount" gorm:"type:decimal(10,2);not null"`
	CurrentAmount float64 `json:"current_amount" gorm:"type:decimal(10,2);not null;default:0"`
	Deadline      string  `json:"deadline" gorm:"size:10;not null"` // YYYY-MM-DD

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Goal) TableName() string {
	return "goals"
}

// Progress returns the completion percentage, clamped to [0, 100].
// A goal with a non-positive target reports 0.
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
