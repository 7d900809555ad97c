package models

import "time"

// Transaction types. Amounts are stored positive regardless of type; the
// type carries the direction.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// ValidTransactionType reports whether s is one of the recognized types.
func ValidTransactionType(s string) bool {
	return s == TypeIncome || s == TypeExpense || s == TypeTransfer
}

// Transaction represents a single financial record owned by one user.
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	Amount          float64   `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"size:3;default:USD" json:"currency"`
	Description     string    `gorm:"size:255;not null" json:"description"`
	Category        string    `gorm:"size:100" json:"category"`
	TransactionType string    `gorm:"size:20;index;not null" json:"transaction_type"`
	Date            time.Time `gorm:"index;not null" json:"date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
