package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RideStatus represents the lifecycle state of a ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride represents a posted trip. AvailableSeats always equals TotalSeats
// minus the number of currently joined participants; it is only mutated
// through the ride repository's transactional seat operations.
type Ride struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	DriverID       uint            `json:"driverId" gorm:"not null;index"`
	StartLocation  string          `json:"startLocation" gorm:"size:255;not null"`
	EndLocation    string          `json:"endLocation" gorm:"size:255;not null"`
	StartLatitude  *float64        `json:"startLatitude,omitempty"`
	StartLongitude *float64        `json:"startLongitude,omitempty"`
	EndLatitude    *float64        `json:"endLatitude,omitempty"`
	EndLongitude   *float64        `json:"endLongitude,omitempty"`
	RideDateTime   time.Time       `json:"rideDateTime" gorm:"not null;index"`
	AvailableSeats int             `json:"availableSeats" gorm:"not null"`
	TotalSeats     int             `json:"totalSeats" gorm:"not null"`
	PricePerSeat   decimal.Decimal `json:"pricePerSeat" gorm:"type:decimal(10,2);default:0"`
	Tags           StringList      `json:"tags" gorm:"type:json"`
	VehicleInfo    JSONMap         `json:"vehicleInfo,omitempty" gorm:"type:json"`
	Notes          string          `json:"notes,omitempty" gorm:"type:text"`
	Status         RideStatus      `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`

	// Relations
	Driver       *User             `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Participants []RideParticipant `json:"participants,omitempty" gorm:"foreignKey:RideID"`
}

// HasTag reports whether the ride carries any of the given tags,
// case-insensitively. Used by the search post-filter.
func (r *Ride) HasTag(tags map[string]struct{}) bool {
	for _, t := range r.Tags {
		if _, ok := tags[strings.ToLower(strings.TrimSpace(t))]; ok {
			return true
		}
	}
	return false
}
