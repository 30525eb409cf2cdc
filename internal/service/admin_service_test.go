package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/model"
	"campool/internal/repository"
)

func newTestAdminService(users *MockUserRepository, rides *MockRideRepository, participants *MockParticipantRepository, ratings *MockRatingRepository, complaints *MockComplaintRepository, sos *MockSOSRepository) AdminService {
	return NewAdminService(users, rides, participants, ratings, complaints, sos)
}

func TestAdminService_ToggleBan(t *testing.T) {
	tests := []struct {
		name           string
		user           *model.User
		findErr        error
		expectedError  error
		expectedBanned bool
	}{
		{
			name:           "ban a user",
			user:           &model.User{ID: 2, Role: model.RoleUser, IsBanned: false},
			expectedBanned: true,
		},
		{
			name:           "unban a user",
			user:           &model.User{ID: 2, Role: model.RoleUser, IsBanned: true},
			expectedBanned: false,
		},
		{
			name:          "cannot ban an admin",
			user:          &model.User{ID: 2, Role: model.RoleAdmin},
			expectedError: apperrors.ErrCannotBanAdmin,
		},
		{
			name:          "user not found",
			findErr:       gorm.ErrRecordNotFound,
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			if tt.findErr != nil {
				users.On("FindByID", mock.Anything, mock.AnythingOfType("uint")).Return(nil, tt.findErr)
			} else {
				users.On("FindByID", mock.Anything, tt.user.ID).Return(tt.user, nil)
				if tt.expectedError == nil {
					users.On("Update", mock.Anything, tt.user).Return(nil)
				}
			}

			service := newTestAdminService(users, new(MockRideRepository), new(MockParticipantRepository),
				new(MockRatingRepository), new(MockComplaintRepository), new(MockSOSRepository))

			user, err := service.ToggleBan(context.Background(), 2)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBanned, user.IsBanned)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	users := new(MockUserRepository)
	rides := new(MockRideRepository)
	participants := new(MockParticipantRepository)
	ratings := new(MockRatingRepository)
	complaints := new(MockComplaintRepository)

	users.On("List", mock.Anything, repository.UserListFilter{Page: 1, Limit: 20}).
		Return([]model.User{{ID: 2, Username: "asha"}}, int64(1), nil)
	rides.On("CountByDriver", mock.Anything, uint(2)).Return(int64(4), nil)
	participants.On("CountByRider", mock.Anything, uint(2)).Return(int64(7), nil)
	ratings.On("AverageByRatee", mock.Anything, uint(2)).Return(4.5, nil)
	complaints.On("CountByAccused", mock.Anything, uint(2)).Return(int64(0), nil)

	service := newTestAdminService(users, rides, participants, ratings, complaints, new(MockSOSRepository))
	list, pagination, err := service.ListUsers(context.Background(), repository.UserListFilter{})

	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].RidesOffered)
	assert.Equal(t, int64(7), list[0].RidesTaken)
	assert.Equal(t, "4.50", list[0].AverageRating)
	assert.Equal(t, int64(1), pagination.Total)
	users.AssertExpectations(t)
}

func TestAdminService_Stats(t *testing.T) {
	users := new(MockUserRepository)
	rides := new(MockRideRepository)
	ratings := new(MockRatingRepository)
	complaints := new(MockComplaintRepository)
	sos := new(MockSOSRepository)

	users.On("CountAll", mock.Anything).Return(int64(50), nil)
	users.On("CountActive", mock.Anything).Return(int64(45), nil)
	users.On("CountBanned", mock.Anything).Return(int64(5), nil)
	rides.On("CountAll", mock.Anything).Return(int64(120), nil)
	rides.On("CountByStatus", mock.Anything, model.RideStatusActive).Return(int64(20), nil)
	rides.On("CountByStatus", mock.Anything, model.RideStatusCompleted).Return(int64(90), nil)
	rides.On("CountByStatus", mock.Anything, model.RideStatusCancelled).Return(int64(10), nil)
	ratings.On("CountAll", mock.Anything).Return(int64(300), nil)
	complaints.On("CountAll", mock.Anything).Return(int64(8), nil)
	complaints.On("CountByStatus", mock.Anything, model.ComplaintStatusPending).Return(int64(3), nil)
	sos.On("CountAll", mock.Anything).Return(int64(2), nil)
	sos.On("CountByStatus", mock.Anything, model.SOSStatusActive).Return(int64(1), nil)

	service := newTestAdminService(users, rides, new(MockParticipantRepository), ratings, complaints, sos)
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(50), stats.TotalUsers)
	assert.Equal(t, int64(20), stats.ActiveRides)
	assert.Equal(t, int64(3), stats.PendingComplaints)
	assert.Equal(t, int64(1), stats.ActiveSOSAlerts)
}

func TestAdminService_ListRides(t *testing.T) {
	t.Run("unknown status rejected", func(t *testing.T) {
		service := newTestAdminService(new(MockUserRepository), new(MockRideRepository), new(MockParticipantRepository),
			new(MockRatingRepository), new(MockComplaintRepository), new(MockSOSRepository))
		_, _, err := service.ListRides(context.Background(), "paused", 1, 20)
		assert.Equal(t, apperrors.ErrInvalidStatus, err)
	})

	t.Run("paged listing", func(t *testing.T) {
		rides := new(MockRideRepository)
		rides.On("List", mock.Anything, model.RideStatusActive, 1, 20).
			Return([]model.Ride{*activeRide(1, 10, 2, 3)}, int64(21), nil)

		service := newTestAdminService(new(MockUserRepository), rides, new(MockParticipantRepository),
			new(MockRatingRepository), new(MockComplaintRepository), new(MockSOSRepository))
		list, pagination, err := service.ListRides(context.Background(), model.RideStatusActive, 1, 20)

		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 2, pagination.TotalPages)
		rides.AssertExpectations(t)
	})
}
