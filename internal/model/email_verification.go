package model

import "time"

// EmailVerification is an ephemeral OTP record. At most one row exists per
// email: issuing a new code deletes the previous one, and successful signup
// consumes the verified row.
type EmailVerification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	OTP        string    `json:"-" gorm:"size:6;not null"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null"`
	IsVerified bool      `json:"isVerified" gorm:"default:false"`
	Attempts   int       `json:"attempts" gorm:"default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
