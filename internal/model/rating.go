package model

import "time"

// Rating is one immutable feedback row from rater to ratee for a ride.
type Rating struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	RaterID uint   `json:"raterId" gorm:"not null;uniqueIndex:idx_rater_ratee_ride"`
	RateeID uint   `json:"rateeId" gorm:"not null;uniqueIndex:idx_rater_ratee_ride;index"`
	RideID  uint   `json:"rideId" gorm:"not null;uniqueIndex:idx_rater_ratee_ride"`
	Stars   int    `json:"stars" gorm:"not null"`
	Comment string `json:"comment,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Rater *User `json:"rater,omitempty" gorm:"foreignKey:RaterID"`
	Ratee *User `json:"ratee,omitempty" gorm:"foreignKey:RateeID"`
	Ride  *Ride `json:"ride,omitempty" gorm:"foreignKey:RideID"`
}
