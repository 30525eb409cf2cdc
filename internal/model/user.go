package model

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered rider or driver.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	WalletAddress  *string   `json:"walletAddress,omitempty" gorm:"size:42;uniqueIndex"` // reserved for on-chain identity, unused by any flow
	ProfilePicture string    `json:"profilePicture,omitempty" gorm:"size:255"`
	PhoneNumber    string    `json:"phoneNumber,omitempty" gorm:"size:20"`
	Gender         string    `json:"gender,omitempty" gorm:"size:20"`
	Bio            string    `json:"bio,omitempty" gorm:"type:text"`
	// CancellationCount counts both rides the user cancelled as a driver and
	// rides the user left as a rider.
	CancellationCount int       `json:"cancellationCount" gorm:"default:0"`
	IsActive          bool      `json:"isActive" gorm:"default:true"`
	IsBanned          bool      `json:"isBanned" gorm:"default:false;index"`
	Role              string    `json:"role" gorm:"size:10;default:'user'"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// PublicProfile is the reduced user view exposed on unauthenticated payloads.
type PublicProfile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
}

// Public returns the reduced view of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		PhoneNumber:    u.PhoneNumber,
	}
}
