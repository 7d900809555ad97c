package models

import "time"

// Budget periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// ValidBudgetPeriod reports whether s is one of the recognized periods.
func ValidBudgetPeriod(s string) bool {
	return s == PeriodDaily || s == PeriodWeekly || s == PeriodMonthly || s == PeriodYearly
}

// Budget is a spending target. Progress is derived on read from matching
// expense transactions, never stored.
type Budget struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   uint    `gorm:"index;not null" json:"user_id"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:3;default:USD" json:"currency"`
	Period   string  `gorm:"size:20;default:monthly" json:"period"`

	// Category restricts which expenses count toward the budget; empty means
	// all expenses.
	Category string `gorm:"size:100" json:"category"`

	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  bool       `gorm:"default:true;not null" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
