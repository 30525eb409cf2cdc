package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"campool/internal/cache"
	apperrors "campool/internal/errors"
	"campool/internal/metrics"
	"campool/internal/model"
	"campool/internal/repository"
)

const rideCacheTTL = 5 * time.Minute

// Pagination is the envelope attached to paged listings.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the envelope for a page.
func NewPagination(total int64, page, limit int) *Pagination {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// CreateRideInput carries a validated ride posting.
type CreateRideInput struct {
	StartLocation  string
	EndLocation    string
	StartLatitude  *float64
	StartLongitude *float64
	EndLatitude    *float64
	EndLongitude   *float64
	RideDateTime   time.Time
	TotalSeats     int
	PricePerSeat   decimal.Decimal
	Tags           []string
	VehicleInfo    map[string]interface{}
	Notes          string
}

// UserRides is the driver/rider split of a user's ride history.
type UserRides struct {
	DriverRides []model.Ride `json:"driverRides"`
	RiderRides  []model.Ride `json:"riderRides"`
}

// RideService owns the ride state machine and the seat-count invariant:
// availableSeats always equals totalSeats minus the number of joined
// participants. Every transition runs inside one repository transaction.
type RideService interface {
	Create(ctx context.Context, driverID uint, input CreateRideInput) (*model.Ride, error)
	Search(ctx context.Context, filter repository.RideSearchFilter, tags []string) ([]model.Ride, *Pagination, error)
	Get(ctx context.Context, id uint) (*model.Ride, error)
	Join(ctx context.Context, rideID, riderID uint) (*model.Ride, error)
	Leave(ctx context.Context, rideID, riderID uint) (*model.Ride, error)
	Cancel(ctx context.Context, rideID, driverID uint) (*model.Ride, error)
	Complete(ctx context.Context, rideID, driverID uint) (*model.Ride, error)
	RidesForUser(ctx context.Context, userID uint, role string) (*UserRides, error)
}

type rideService struct {
	rideRepo        repository.RideRepository
	participantRepo repository.ParticipantRepository
	cache           *cache.Client
	metrics         *metrics.Metrics
}

// NewRideService creates a new ride service.
func NewRideService(
	rideRepo repository.RideRepository,
	participantRepo repository.ParticipantRepository,
	cache *cache.Client,
	metrics *metrics.Metrics,
) RideService {
	return &rideService{
		rideRepo:        rideRepo,
		participantRepo: participantRepo,
		cache:           cache,
		metrics:         metrics,
	}
}

func rideCacheKey(id uint) string {
	return fmt.Sprintf("ride:%d", id)
}

// Create posts a new ride with all seats available.
func (s *rideService) Create(ctx context.Context, driverID uint, input CreateRideInput) (*model.Ride, error) {
	ride := &model.Ride{
		DriverID:       driverID,
		StartLocation:  input.StartLocation,
		EndLocation:    input.EndLocation,
		StartLatitude:  input.StartLatitude,
		StartLongitude: input.StartLongitude,
		EndLatitude:    input.EndLatitude,
		EndLongitude:   input.EndLongitude,
		RideDateTime:   input.RideDateTime,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		PricePerSeat:   input.PricePerSeat,
		Tags:           model.StringList(input.Tags),
		VehicleInfo:    model.JSONMap(input.VehicleInfo),
		Notes:          input.Notes,
		Status:         model.RideStatusActive,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("create ride: %w", err)
	}

	s.metrics.RidesCreated.Inc()
	return ride, nil
}

// Search lists active rides matching the filter. Tag matching runs after the
// page is fetched, as a case-insensitive any-of check.
func (s *rideService) Search(ctx context.Context, filter repository.RideSearchFilter, tags []string) ([]model.Ride, *Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	rides, total, err := s.rideRepo.Search(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(tags) > 0 {
		wanted := make(map[string]struct{}, len(tags))
		for _, t := range tags {
			wanted[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
		filtered := rides[:0]
		for _, ride := range rides {
			if ride.HasTag(wanted) {
				filtered = append(filtered, ride)
			}
		}
		rides = filtered
	}

	return rides, NewPagination(total, filter.Page, filter.Limit), nil
}

// Get retrieves a ride with driver and participants, cached for reads.
func (s *rideService) Get(ctx context.Context, id uint) (*model.Ride, error) {
	var cached model.Ride
	if s.cache.GetJSON(ctx, rideCacheKey(id), &cached) {
		return &cached, nil
	}

	ride, err := s.rideRepo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, rideCacheKey(id), ride, rideCacheTTL)
	return ride, nil
}

// Join adds a rider to an active ride. The seat decrement and the participant
// record are committed in one transaction: both happen or neither does.
func (s *rideService) Join(ctx context.Context, rideID, riderID uint) (*model.Ride, error) {
	var ride *model.Ride
	err := s.rideRepo.WithTransaction(ctx, func(ctx context.Context, tx repository.RideRepository) error {
		r, err := tx.FindByIDForUpdate(ctx, rideID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRideNotFound
			}
			return err
		}

		if r.Status != model.RideStatusActive {
			return apperrors.ErrRideNotActive
		}
		if r.DriverID == riderID {
			return apperrors.ErrSelfJoin
		}
		if r.AvailableSeats <= 0 {
			return apperrors.ErrNoSeats
		}

		if _, err := tx.FindJoinedParticipant(ctx, rideID, riderID); err == nil {
			return apperrors.ErrAlreadyJoined
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Guarded decrement: under a concurrent race for the last seat the
		// loser gets ErrNoSeats here and the transaction rolls back.
		if err := tx.ReserveSeat(ctx, rideID); err != nil {
			return err
		}

		participant := &model.RideParticipant{
			RideID:   rideID,
			RiderID:  riderID,
			Status:   model.ParticipantStatusJoined,
			JoinedAt: time.Now(),
		}
		if err := tx.CreateParticipant(ctx, participant); err != nil {
			return err
		}

		r.AvailableSeats--
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RideJoins.Inc()
	_ = s.cache.Delete(ctx, rideCacheKey(rideID))
	return ride, nil
}

// Leave releases a rider's seat and bumps their cancellation count. The
// participant flip, the seat increment, and the counter bump commit together.
func (s *rideService) Leave(ctx context.Context, rideID, riderID uint) (*model.Ride, error) {
	var ride *model.Ride
	err := s.rideRepo.WithTransaction(ctx, func(ctx context.Context, tx repository.RideRepository) error {
		r, err := tx.FindByIDForUpdate(ctx, rideID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRideNotFound
			}
			return err
		}

		participant, err := tx.FindJoinedParticipant(ctx, rideID, riderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotAParticipant
			}
			return err
		}

		if err := tx.MarkParticipantLeft(ctx, participant.ID, time.Now()); err != nil {
			return err
		}
		// Capped at totalSeats inside the UPDATE's WHERE clause.
		if err := tx.ReleaseSeat(ctx, rideID); err != nil {
			return err
		}
		if err := tx.IncrementCancellationCount(ctx, riderID); err != nil {
			return err
		}

		if r.AvailableSeats < r.TotalSeats {
			r.AvailableSeats++
		}
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RideLeaves.Inc()
	_ = s.cache.Delete(ctx, rideCacheKey(rideID))
	return ride, nil
}

// Cancel moves an active ride to cancelled. Driver only; terminal.
func (s *rideService) Cancel(ctx context.Context, rideID, driverID uint) (*model.Ride, error) {
	ride, err := s.transition(ctx, rideID, driverID, model.RideStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.metrics.RidesCancelled.Inc()
	return ride, nil
}

// Complete moves an active ride to completed and flips every joined
// participant to completed in the same unit of work. Driver only; terminal.
func (s *rideService) Complete(ctx context.Context, rideID, driverID uint) (*model.Ride, error) {
	ride, err := s.transition(ctx, rideID, driverID, model.RideStatusCompleted)
	if err != nil {
		return nil, err
	}
	s.metrics.RidesCompleted.Inc()
	return ride, nil
}

func (s *rideService) transition(ctx context.Context, rideID, driverID uint, to model.RideStatus) (*model.Ride, error) {
	var ride *model.Ride
	err := s.rideRepo.WithTransaction(ctx, func(ctx context.Context, tx repository.RideRepository) error {
		r, err := tx.FindByIDForUpdate(ctx, rideID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRideNotFound
			}
			return err
		}

		if r.DriverID != driverID {
			return apperrors.ErrNotDriver
		}
		if r.Status != model.RideStatusActive {
			return apperrors.ErrRideNotActive
		}

		if err := tx.UpdateStatus(ctx, rideID, model.RideStatusActive, to); err != nil {
			return err
		}

		switch to {
		case model.RideStatusCancelled:
			if err := tx.IncrementCancellationCount(ctx, driverID); err != nil {
				return err
			}
		case model.RideStatusCompleted:
			if err := tx.CompleteJoinedParticipants(ctx, rideID); err != nil {
				return err
			}
		}

		r.Status = to
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, rideCacheKey(rideID))
	return ride, nil
}

// RidesForUser splits a user's rides by role. role is "driver", "rider", or
// "all". Rider rides include every participation regardless of status, so a
// left or completed ride stays in the history.
func (s *rideService) RidesForUser(ctx context.Context, userID uint, role string) (*UserRides, error) {
	result := &UserRides{
		DriverRides: []model.Ride{},
		RiderRides:  []model.Ride{},
	}

	if role == "driver" || role == "all" {
		rides, err := s.rideRepo.ListByDriver(ctx, userID)
		if err != nil {
			return nil, err
		}
		result.DriverRides = rides
	}

	if role == "rider" || role == "all" {
		participations, err := s.participantRepo.ListByRider(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, p := range participations {
			if p.Ride != nil {
				result.RiderRides = append(result.RiderRides, *p.Ride)
			}
		}
	}

	return result, nil
}
