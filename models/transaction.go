package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is one ledger entry. Amount carries the sign: positive for
// income, negative for expense, and Type must agree with it. Entries are
// append-only; there are no update or delete operations.
type Transaction struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	UserID   uint    `json:"user_id" gorm:"index;not null"`
	Date     string  `json:"date" gorm:"size:10;not null;index"` // calendar date, YYYY-MM-DD
	Category string  `json:"category" gorm:"size:50;not null"`
	Amount   float64 `json:"amount" gorm:"type:decimal(10,2);not null"`
	Type     string  `json:"type" gorm:"size:10;not null"`
	Notes    string  `json:"notes" gorm:"size:255"`
	ImageURL string  `json:"image_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName sets the table name.
func (Transaction) TableName() string {
	return "transactions"
}

// Transaction categories. The set is closed: stored data with any other
// value is rejected at the validation boundary, not trusted.
const (
	CategoryFood          = "Food"
	CategoryRent          = "Rent"
	CategorySalary        = "Salary"
	CategoryEntertainment = "Entertainment"
	CategoryOther         = "Other"
)

// Transaction types.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// GetCategories returns all transaction categories.
func GetCategories() []string {
	return []string{
		CategoryFood,
		CategoryRent,
		CategorySalary,
		CategoryEntertainment,
		CategoryOther,
	}
}

// ValidCategory reports whether name is one of the closed category set.
func ValidCategory(name string) bool {
	switch name {
	case CategoryFood, CategoryRent, CategorySalary, CategoryEntertainment, CategoryOther:
		return true
	}
	return false
}

// ValidTransactionType reports whether t is Income or Expense.
func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// SignedAmount applies the sign convention to a positive magnitude:
// income stays positive, expense becomes negative.
func SignedAmount(magnitude float64, transactionType string) float64 {
	if transactionType == TypeIncome {
		return magnitude
	}
	return -magnitude
}
