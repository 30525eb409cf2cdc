package model

import "time"

// SOSStatus represents the state of an emergency alert.
type SOSStatus string

const (
	SOSStatusActive     SOSStatus = "active"
	SOSStatusResolved   SOSStatus = "resolved"
	SOSStatusFalseAlarm SOSStatus = "false_alarm"
)

// SOSAlert is an emergency event raised by a user during a ride.
// Only admins resolve alerts.
type SOSAlert struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"not null;index"`
	RideID    uint       `json:"rideId" gorm:"not null;index"`
	Location  string     `json:"location,omitempty" gorm:"size:255"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Message   string     `json:"message,omitempty" gorm:"type:text"`
	Status    SOSStatus  `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Ride *Ride `json:"ride,omitempty" gorm:"foreignKey:RideID"`
}
