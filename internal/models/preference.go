package models

import "time"

// UserPreference holds per-user display and localization settings.
// One row per user, created lazily with defaults on first access.
type UserPreference struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DefaultCurrency     string    `gorm:"size:3;default:USD" json:"default_currency"`
	Timezone            string    `gorm:"size:50;default:UTC" json:"timezone"`
	NotificationEnabled bool      `gorm:"default:true;not null" json:"notification_enabled"`
	Theme               string    `gorm:"size:20;default:light" json:"theme"`
	Language            string    `gorm:"size:10;default:en" json:"language"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// DefaultPreference returns the preference row created on first access.
func DefaultPreference(userID uint) UserPreference {
	return UserPreference{
		UserID:              userID,
		DefaultCurrency:     "USD",
		Timezone:            "UTC",
		NotificationEnabled: true,
		Theme:               "light",
		Language:            "en",
	}
}
