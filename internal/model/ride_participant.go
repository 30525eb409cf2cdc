package model

import "time"

// ParticipantStatus represents the state of a join record.
type ParticipantStatus string

const (
	ParticipantStatusJoined    ParticipantStatus = "joined"
	ParticipantStatusLeft      ParticipantStatus = "left"
	ParticipantStatusCompleted ParticipantStatus = "completed"
)

// RideParticipant links a rider to a ride. At most one joined record exists
// per (ride, rider) pair at a time; records are never deleted.
type RideParticipant struct {
	ID       uint              `json:"id" gorm:"primaryKey"`
	RideID   uint              `json:"rideId" gorm:"not null;index:idx_ride_rider"`
	RiderID  uint              `json:"riderId" gorm:"not null;index:idx_ride_rider;index"`
	Status   ParticipantStatus `json:"status" gorm:"type:varchar(20);not null;default:'joined';index"`
	JoinedAt time.Time         `json:"joinedAt"`
	LeftAt   *time.Time        `json:"leftAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Ride  *Ride `json:"ride,omitempty" gorm:"foreignKey:RideID"`
	Rider *User `json:"rider,omitempty" gorm:"foreignKey:RiderID"`
}
