package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/model"
)

func TestRatingService_Submit(t *testing.T) {
	input := SubmitRatingInput{RateeID: 2, RideID: 1, Stars: 4, Comment: "smooth ride"}

	tests := []struct {
		name          string
		raterID       uint
		input         SubmitRatingInput
		setupMock     func(*MockRatingRepository, *MockRideRepository)
		expectedError error
	}{
		{
			name:    "successful rating",
			raterID: 3,
			input:   input,
			setupMock: func(ratings *MockRatingRepository, rides *MockRideRepository) {
				rides.On("FindByID", mock.Anything, uint(1)).Return(activeRide(1, 2, 3, 3), nil)
				ratings.On("FindByTriple", mock.Anything, uint(3), uint(2), uint(1)).Return(nil, gorm.ErrRecordNotFound)
				ratings.On("Create", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(nil)
			},
		},
		{
			name:    "zero star rating accepted",
			raterID: 3,
			input:   SubmitRatingInput{RateeID: 2, RideID: 1, Stars: 0, Comment: "no-show"},
			setupMock: func(ratings *MockRatingRepository, rides *MockRideRepository) {
				rides.On("FindByID", mock.Anything, uint(1)).Return(activeRide(1, 2, 3, 3), nil)
				ratings.On("FindByTriple", mock.Anything, uint(3), uint(2), uint(1)).Return(nil, gorm.ErrRecordNotFound)
				ratings.On("Create", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(nil)
			},
		},
		{
			name:          "rating yourself",
			raterID:       2,
			input:         input,
			setupMock:     func(ratings *MockRatingRepository, rides *MockRideRepository) {},
			expectedError: apperrors.ErrSelfRating,
		},
		{
			name:          "stars out of range",
			raterID:       3,
			input:         SubmitRatingInput{RateeID: 2, RideID: 1, Stars: 6},
			setupMock:     func(ratings *MockRatingRepository, rides *MockRideRepository) {},
			expectedError: apperrors.ErrInvalidStars,
		},
		{
			name:    "ride not found",
			raterID: 3,
			input:   input,
			setupMock: func(ratings *MockRatingRepository, rides *MockRideRepository) {
				rides.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrRideNotFound,
		},
		{
			name:    "duplicate rating",
			raterID: 3,
			input:   input,
			setupMock: func(ratings *MockRatingRepository, rides *MockRideRepository) {
				rides.On("FindByID", mock.Anything, uint(1)).Return(activeRide(1, 2, 3, 3), nil)
				ratings.On("FindByTriple", mock.Anything, uint(3), uint(2), uint(1)).
					Return(&model.Rating{ID: 5, RaterID: 3, RateeID: 2, RideID: 1}, nil)
			},
			expectedError: apperrors.ErrDuplicateRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratings := new(MockRatingRepository)
			rides := new(MockRideRepository)
			participants := new(MockParticipantRepository)
			tt.setupMock(ratings, rides)

			service := NewRatingService(ratings, rides, participants, false)
			rating, err := service.Submit(context.Background(), tt.raterID, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, rating)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rating)
				assert.Equal(t, tt.input.Stars, rating.Stars)
			}

			ratings.AssertExpectations(t)
			rides.AssertExpectations(t)
		})
	}
}

func TestRatingService_SubmitRequiresCompletedRide(t *testing.T) {
	input := SubmitRatingInput{RateeID: 2, RideID: 1, Stars: 5}

	t.Run("active ride rejected", func(t *testing.T) {
		rides := new(MockRideRepository)
		rides.On("FindByID", mock.Anything, uint(1)).Return(activeRide(1, 2, 3, 3), nil)

		service := NewRatingService(new(MockRatingRepository), rides, new(MockParticipantRepository), true)
		_, err := service.Submit(context.Background(), 3, input)

		assert.Equal(t, apperrors.ErrRideNotCompleted, err)
	})

	t.Run("rater not on ride rejected", func(t *testing.T) {
		ride := activeRide(1, 2, 0, 3)
		ride.Status = model.RideStatusCompleted

		rides := new(MockRideRepository)
		rides.On("FindByID", mock.Anything, uint(1)).Return(ride, nil)
		participants := new(MockParticipantRepository)
		participants.On("FindByRideAndRider", mock.Anything, uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)

		service := NewRatingService(new(MockRatingRepository), rides, participants, true)
		_, err := service.Submit(context.Background(), 3, input)

		assert.Equal(t, apperrors.ErrNotAParticipant, err)
	})

	t.Run("completed participant rating the driver", func(t *testing.T) {
		ride := activeRide(1, 2, 0, 3)
		ride.Status = model.RideStatusCompleted

		rides := new(MockRideRepository)
		rides.On("FindByID", mock.Anything, uint(1)).Return(ride, nil)
		participants := new(MockParticipantRepository)
		participants.On("FindByRideAndRider", mock.Anything, uint(1), uint(3)).
			Return(&model.RideParticipant{ID: 9, RideID: 1, RiderID: 3, Status: model.ParticipantStatusCompleted}, nil)
		ratings := new(MockRatingRepository)
		ratings.On("FindByTriple", mock.Anything, uint(3), uint(2), uint(1)).Return(nil, gorm.ErrRecordNotFound)
		ratings.On("Create", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(nil)

		service := NewRatingService(ratings, rides, participants, true)
		rating, err := service.Submit(context.Background(), 3, input)

		assert.NoError(t, err)
		assert.NotNil(t, rating)
		ratings.AssertExpectations(t)
	})
}

func TestRatingService_ListForUser(t *testing.T) {
	t.Run("computes the average", func(t *testing.T) {
		ratings := new(MockRatingRepository)
		ratings.On("ListByRatee", mock.Anything, uint(2)).Return([]model.Rating{
			{ID: 1, RateeID: 2, Stars: 5},
			{ID: 2, RateeID: 2, Stars: 4},
			{ID: 3, RateeID: 2, Stars: 4},
		}, nil)

		service := NewRatingService(ratings, new(MockRideRepository), new(MockParticipantRepository), false)
		list, stats, err := service.ListForUser(context.Background(), 2)

		assert.NoError(t, err)
		assert.Len(t, list, 3)
		assert.Equal(t, "4.33", stats.AverageRating)
		assert.Equal(t, 3, stats.TotalRatings)
	})

	t.Run("unrated user", func(t *testing.T) {
		ratings := new(MockRatingRepository)
		ratings.On("ListByRatee", mock.Anything, uint(2)).Return([]model.Rating{}, nil)

		service := NewRatingService(ratings, new(MockRideRepository), new(MockParticipantRepository), false)
		_, stats, err := service.ListForUser(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, "0.00", stats.AverageRating)
		assert.Equal(t, 0, stats.TotalRatings)
	})
}

func TestRatingService_CanRate(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		rides := new(MockRideRepository)
		rides.On("FindByID", mock.Anything, uint(1)).Return(activeRide(1, 2, 3, 3), nil)
		ratings := new(MockRatingRepository)
		ratings.On("FindByTriple", mock.Anything, uint(3), uint(2), uint(1)).Return(nil, gorm.ErrRecordNotFound)

		service := NewRatingService(ratings, rides, new(MockParticipantRepository), false)
		canRate, reason, err := service.CanRate(context.Background(), 3, 2, 1)

		assert.NoError(t, err)
		assert.True(t, canRate)
		assert.Empty(t, reason)
	})

	t.Run("blocked with reason", func(t *testing.T) {
		service := NewRatingService(new(MockRatingRepository), new(MockRideRepository), new(MockParticipantRepository), false)
		canRate, reason, err := service.CanRate(context.Background(), 2, 2, 1)

		assert.NoError(t, err)
		assert.False(t, canRate)
		assert.Equal(t, apperrors.ErrSelfRating.Error(), reason)
	})
}
