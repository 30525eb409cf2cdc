package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/model"
	"campool/internal/repository"
)

// SubmitRatingInput carries a validated rating submission.
type SubmitRatingInput struct {
	RateeID uint
	RideID  uint
	Stars   int
	Comment string
}

// RatingStats summarizes the feedback a user has received. AverageRating is
// formatted to two decimals; "0.00" when unrated.
type RatingStats struct {
	AverageRating string `json:"averageRating"`
	TotalRatings  int    `json:"totalRatings"`
}

// RatingService handles peer feedback. One rating per (rater, ratee, ride);
// ratings are immutable once submitted.
type RatingService interface {
	Submit(ctx context.Context, raterID uint, input SubmitRatingInput) (*model.Rating, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Rating, *RatingStats, error)
	// CanRate runs the submission guards without writing. reason is empty when
	// canRate is true.
	CanRate(ctx context.Context, raterID, rateeID, rideID uint) (canRate bool, reason string, err error)
}

type ratingService struct {
	ratingRepo      repository.RatingRepository
	rideRepo        repository.RideRepository
	participantRepo repository.ParticipantRepository
	// requireCompletedRide additionally demands a completed ride with both
	// parties on it before accepting a rating.
	requireCompletedRide bool
}

// NewRatingService creates a new rating service.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	rideRepo repository.RideRepository,
	participantRepo repository.ParticipantRepository,
	requireCompletedRide bool,
) RatingService {
	return &ratingService{
		ratingRepo:           ratingRepo,
		rideRepo:             rideRepo,
		participantRepo:      participantRepo,
		requireCompletedRide: requireCompletedRide,
	}
}

// Submit records a rating after running the guard chain.
func (s *ratingService) Submit(ctx context.Context, raterID uint, input SubmitRatingInput) (*model.Rating, error) {
	if err := s.checkRatable(ctx, raterID, input.RateeID, input.RideID, input.Stars); err != nil {
		return nil, err
	}

	rating := &model.Rating{
		RaterID: raterID,
		RateeID: input.RateeID,
		RideID:  input.RideID,
		Stars:   input.Stars,
		Comment: input.Comment,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return rating, nil
}

// ListForUser lists ratings received by a user along with their aggregate.
func (s *ratingService) ListForUser(ctx context.Context, userID uint) ([]model.Rating, *RatingStats, error) {
	ratings, err := s.ratingRepo.ListByRatee(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	stats := &RatingStats{AverageRating: "0.00", TotalRatings: len(ratings)}
	if len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating.Stars
		}
		stats.AverageRating = fmt.Sprintf("%.2f", float64(sum)/float64(len(ratings)))
	}
	return ratings, stats, nil
}

// CanRate reports whether a submission with these parties would be accepted.
func (s *ratingService) CanRate(ctx context.Context, raterID, rateeID, rideID uint) (bool, string, error) {
	err := s.checkRatable(ctx, raterID, rateeID, rideID, 5)
	if err == nil {
		return true, "", nil
	}
	switch {
	case errors.Is(err, apperrors.ErrSelfRating),
		errors.Is(err, apperrors.ErrRideNotFound),
		errors.Is(err, apperrors.ErrRideNotCompleted),
		errors.Is(err, apperrors.ErrNotAParticipant),
		errors.Is(err, apperrors.ErrDuplicateRating):
		return false, err.Error(), nil
	}
	return false, "", err
}

func (s *ratingService) checkRatable(ctx context.Context, raterID, rateeID, rideID uint, stars int) error {
	if stars < 0 || stars > 5 {
		return apperrors.ErrInvalidStars
	}
	if raterID == rateeID {
		return apperrors.ErrSelfRating
	}

	ride, err := s.rideRepo.FindByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRideNotFound
		}
		return err
	}

	if s.requireCompletedRide {
		if ride.Status != model.RideStatusCompleted {
			return apperrors.ErrRideNotCompleted
		}
		for _, userID := range []uint{raterID, rateeID} {
			if err := s.checkOnRide(ctx, ride, userID); err != nil {
				return err
			}
		}
	}

	if _, err := s.ratingRepo.FindByTriple(ctx, raterID, rateeID, rideID); err == nil {
		return apperrors.ErrDuplicateRating
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// checkOnRide verifies the user drove the ride or rode on it.
func (s *ratingService) checkOnRide(ctx context.Context, ride *model.Ride, userID uint) error {
	if ride.DriverID == userID {
		return nil
	}
	if _, err := s.participantRepo.FindByRideAndRider(ctx, ride.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotAParticipant
		}
		return err
	}
	return nil
}
