package model

import "time"

// ComplaintStatus represents the review state of a complaint.
// resolved and dismissed are terminal.
type ComplaintStatus string

const (
	ComplaintStatusPending       ComplaintStatus = "pending"
	ComplaintStatusInvestigating ComplaintStatus = "investigating"
	ComplaintStatusResolved      ComplaintStatus = "resolved"
	ComplaintStatusDismissed     ComplaintStatus = "dismissed"
)

// Complaint categories.
const (
	ComplaintCategoryHarassment = "harassment"
	ComplaintCategorySafety     = "safety"
	ComplaintCategoryFraud      = "fraud"
	ComplaintCategoryOther      = "other"
)

// Complaint is a report from one user against another, optionally tied to a
// ride. Only admins transition its status.
type Complaint struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ComplainantID uint            `json:"complainantId" gorm:"not null;index"`
	AccusedID     uint            `json:"accusedId" gorm:"not null;index"`
	RideID        *uint           `json:"rideId,omitempty" gorm:"index"`
	Category      string          `json:"category" gorm:"size:20;not null"`
	Description   string          `json:"description" gorm:"type:text;not null"`
	Status        ComplaintStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes    string          `json:"adminNotes,omitempty" gorm:"type:text"`
	ResolvedAt    *time.Time      `json:"resolvedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Complainant *User `json:"complainant,omitempty" gorm:"foreignKey:ComplainantID"`
	Accused     *User `json:"accused,omitempty" gorm:"foreignKey:AccusedID"`
	Ride        *Ride `json:"ride,omitempty" gorm:"foreignKey:RideID"`
}

// ValidComplaintCategory reports whether category is one of the known values.
func ValidComplaintCategory(category string) bool {
	switch category {
	case ComplaintCategoryHarassment, ComplaintCategorySafety, ComplaintCategoryFraud, ComplaintCategoryOther:
		return true
	}
	return false
}

// ValidComplaintStatus reports whether status is one of the known values.
func ValidComplaintStatus(status ComplaintStatus) bool {
	switch status {
	case ComplaintStatusPending, ComplaintStatusInvestigating, ComplaintStatusResolved, ComplaintStatusDismissed:
		return true
	}
	return false
}

// Terminal reports whether the status closes the complaint.
func (s ComplaintStatus) Terminal() bool {
	return s == ComplaintStatusResolved || s == ComplaintStatusDismissed
}
