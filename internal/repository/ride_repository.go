package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/model"
)

// RideSearchFilter narrows the public ride search.
type RideSearchFilter struct {
	StartLocation string
	EndLocation   string
	Date          *time.Time
	MinSeats      int
	MaxPrice      *decimal.Decimal
	Page          int
	Limit         int
}

// RideRepository defines ride persistence operations. It is the only writer
// of availableSeats and of participant rows: every seat mutation is a single
// guarded UPDATE executed inside WithTransaction, so a booked-but-unrecorded
// join (or the reverse) cannot happen and two racing joins for the last seat
// cannot both succeed.
type RideRepository interface {
	Create(ctx context.Context, ride *model.Ride) error
	FindByID(ctx context.Context, id uint) (*model.Ride, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Ride, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.Ride, error)
	Search(ctx context.Context, filter RideSearchFilter) ([]model.Ride, int64, error)
	ListByDriver(ctx context.Context, driverID uint) ([]model.Ride, error)
	List(ctx context.Context, status model.RideStatus, page, limit int) ([]model.Ride, int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.RideStatus) (int64, error)
	CountByDriver(ctx context.Context, driverID uint) (int64, error)

	// Transactional mutation path for the seat-count invariant.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RideRepository) error) error
	ReserveSeat(ctx context.Context, rideID uint) error
	ReleaseSeat(ctx context.Context, rideID uint) error
	UpdateStatus(ctx context.Context, rideID uint, from, to model.RideStatus) error
	CreateParticipant(ctx context.Context, participant *model.RideParticipant) error
	FindJoinedParticipant(ctx context.Context, rideID, riderID uint) (*model.RideParticipant, error)
	MarkParticipantLeft(ctx context.Context, participantID uint, leftAt time.Time) error
	CompleteJoinedParticipants(ctx context.Context, rideID uint) error
	IncrementCancellationCount(ctx context.Context, userID uint) error
}

type rideRepository struct {
	db *gorm.DB
}

// NewRideRepository creates a new ride repository.
func NewRideRepository(db *gorm.DB) RideRepository {
	return &rideRepository{db: db}
}

// Create creates a new ride.
func (r *rideRepository) Create(ctx context.Context, ride *model.Ride) error {
	return r.db.WithContext(ctx).Create(ride).Error
}

// FindByID finds a ride by ID.
func (r *rideRepository) FindByID(ctx context.Context, id uint) (*model.Ride, error) {
	var ride model.Ride
	if err := r.db.WithContext(ctx).First(&ride, id).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// FindByIDForUpdate finds a ride by ID with a row-level lock.
func (r *rideRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Ride, error) {
	var ride model.Ride
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		First(&ride, id).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// FindByIDWithDetails finds a ride with its driver and participants preloaded.
func (r *rideRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.Ride, error) {
	var ride model.Ride
	if err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Participants").
		Preload("Participants.Rider").
		First(&ride, id).Error; err != nil {
		return nil, err
	}
	return &ride, nil
}

// Search lists active rides matching the filter, ordered by departure time.
// Tag filtering happens in the service layer after the page is fetched.
func (r *rideRepository) Search(ctx context.Context, filter RideSearchFilter) ([]model.Ride, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Ride{}).
		Where("status = ?", model.RideStatusActive)

	if filter.StartLocation != "" {
		query = query.Where("start_location LIKE ?", "%"+filter.StartLocation+"%")
	}
	if filter.EndLocation != "" {
		query = query.Where("end_location LIKE ?", "%"+filter.EndLocation+"%")
	}
	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		query = query.Where("ride_date_time >= ? AND ride_date_time < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}
	if filter.MinSeats > 0 {
		query = query.Where("available_seats >= ?", filter.MinSeats)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_per_seat <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rides []model.Ride
	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("Driver").
		Preload("Participants", "status = ?", model.ParticipantStatusJoined).
		Preload("Participants.Rider").
		Order("ride_date_time ASC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&rides).Error; err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// ListByDriver lists a driver's rides, newest departure first.
func (r *rideRepository) ListByDriver(ctx context.Context, driverID uint) ([]model.Ride, error) {
	var rides []model.Ride
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Preload("Participants").
		Preload("Participants.Rider").
		Order("ride_date_time DESC").
		Find(&rides).Error; err != nil {
		return nil, err
	}
	return rides, nil
}

// List pages through all rides for the admin dashboard.
func (r *rideRepository) List(ctx context.Context, status model.RideStatus, page, limit int) ([]model.Ride, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Ride{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rides []model.Ride
	if err := query.
		Preload("Driver").
		Preload("Participants").
		Preload("Participants.Rider").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rides).Error; err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// CountAll counts all rides.
func (r *rideRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Ride{}).Count(&count).Error
	return count, err
}

// CountByStatus counts rides in the given status.
func (r *rideRepository) CountByStatus(ctx context.Context, status model.RideStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Ride{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountByDriver counts rides posted by a driver.
func (r *rideRepository) CountByDriver(ctx context.Context, driverID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Ride{}).
		Where("driver_id = ?", driverID).Count(&count).Error
	return count, err
}

// WithTransaction executes fn within a database transaction.
func (r *rideRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RideRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &rideRepository{db: tx})
	})
}

// ReserveSeat decrements availableSeats by one as a single conditional
// UPDATE. The guard runs in the WHERE clause, so a concurrent join racing for
// the last seat loses with ErrNoSeats instead of driving the counter negative.
func (r *rideRepository) ReserveSeat(ctx context.Context, rideID uint) error {
	res := r.db.WithContext(ctx).Model(&model.Ride{}).
		Where("id = ? AND status = ? AND available_seats > 0", rideID, model.RideStatusActive).
		UpdateColumn("available_seats", gorm.Expr("available_seats - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoSeats
	}
	return nil
}

// ReleaseSeat increments availableSeats by one, capped at totalSeats. A
// no-op when the ride is already at capacity.
func (r *rideRepository) ReleaseSeat(ctx context.Context, rideID uint) error {
	return r.db.WithContext(ctx).Model(&model.Ride{}).
		Where("id = ? AND available_seats < total_seats", rideID).
		UpdateColumn("available_seats", gorm.Expr("available_seats + 1")).Error
}

// UpdateStatus transitions a ride from one status to another. The source
// status is part of the WHERE clause, so transitions out of a terminal state
// never match a row.
func (r *rideRepository) UpdateStatus(ctx context.Context, rideID uint, from, to model.RideStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Ride{}).
		Where("id = ? AND status = ?", rideID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRideNotActive
	}
	return nil
}

// CreateParticipant creates a join record.
func (r *rideRepository) CreateParticipant(ctx context.Context, participant *model.RideParticipant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// FindJoinedParticipant finds the active join record for (ride, rider).
func (r *rideRepository) FindJoinedParticipant(ctx context.Context, rideID, riderID uint) (*model.RideParticipant, error) {
	var participant model.RideParticipant
	if err := r.db.WithContext(ctx).
		Where("ride_id = ? AND rider_id = ? AND status = ?", rideID, riderID, model.ParticipantStatusJoined).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// MarkParticipantLeft flips a join record to left.
func (r *rideRepository) MarkParticipantLeft(ctx context.Context, participantID uint, leftAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.RideParticipant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"status":  model.ParticipantStatusLeft,
			"left_at": leftAt,
		}).Error
}

// CompleteJoinedParticipants flips every joined record of a ride to completed.
func (r *rideRepository) CompleteJoinedParticipants(ctx context.Context, rideID uint) error {
	return r.db.WithContext(ctx).Model(&model.RideParticipant{}).
		Where("ride_id = ? AND status = ?", rideID, model.ParticipantStatusJoined).
		Update("status", model.ParticipantStatusCompleted).Error
}

// IncrementCancellationCount bumps a user's cancellation counter.
func (r *rideRepository) IncrementCancellationCount(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("cancellation_count", gorm.Expr("cancellation_count + 1")).Error
}
