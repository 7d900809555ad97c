package models

import "time"

// RevokedToken is a denylist entry for a token revoked before its expiry
// (explicit logout). Keyed by the token's jti; rows past ExpiresAt no longer
// matter and may be cleaned up at leisure.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64" json:"jti"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
