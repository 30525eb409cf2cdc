package repository

import (
	"context"

	"gorm.io/gorm"

	"campool/internal/model"
)

// ParticipantRepository answers read-side questions about join records.
// Mutations go through RideRepository's transactional path only.
type ParticipantRepository interface {
	ListByRider(ctx context.Context, riderID uint) ([]model.RideParticipant, error)
	FindByRideAndRider(ctx context.Context, rideID, riderID uint) (*model.RideParticipant, error)
	CountByRider(ctx context.Context, riderID uint) (int64, error)
}

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository.
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

// ListByRider lists a rider's participations with their rides and drivers,
// newest first.
func (r *participantRepository) ListByRider(ctx context.Context, riderID uint) ([]model.RideParticipant, error) {
	var participants []model.RideParticipant
	if err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Preload("Ride").
		Preload("Ride.Driver").
		Order("created_at DESC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// FindByRideAndRider finds a rider's record on a ride in any status.
func (r *participantRepository) FindByRideAndRider(ctx context.Context, rideID, riderID uint) (*model.RideParticipant, error) {
	var participant model.RideParticipant
	if err := r.db.WithContext(ctx).
		Where("ride_id = ? AND rider_id = ?", rideID, riderID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// CountByRider counts a user's participations across all rides.
func (r *participantRepository) CountByRider(ctx context.Context, riderID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RideParticipant{}).
		Where("rider_id = ?", riderID).Count(&count).Error
	return count, err
}
