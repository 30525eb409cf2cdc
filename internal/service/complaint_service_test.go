package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/model"
)

func TestComplaintService_Submit(t *testing.T) {
	input := SubmitComplaintInput{
		AccusedID:   2,
		Category:    model.ComplaintCategorySafety,
		Description: "drove recklessly on the highway",
	}

	tests := []struct {
		name          string
		complainantID uint
		input         SubmitComplaintInput
		setupMock     func(*MockComplaintRepository, *MockUserRepository, *MockRideRepository)
		expectedError error
	}{
		{
			name:          "successful complaint",
			complainantID: 1,
			input:         input,
			setupMock: func(complaints *MockComplaintRepository, users *MockUserRepository, rides *MockRideRepository) {
				users.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2}, nil)
				complaints.On("Create", mock.Anything, mock.AnythingOfType("*model.Complaint")).Return(nil)
			},
		},
		{
			name:          "complaint against yourself",
			complainantID: 2,
			input:         input,
			setupMock:     func(complaints *MockComplaintRepository, users *MockUserRepository, rides *MockRideRepository) {},
			expectedError: apperrors.ErrSelfComplaint,
		},
		{
			name:          "unknown category",
			complainantID: 1,
			input:         SubmitComplaintInput{AccusedID: 2, Category: "vibes", Description: "bad vibes all around"},
			setupMock:     func(complaints *MockComplaintRepository, users *MockUserRepository, rides *MockRideRepository) {},
			expectedError: apperrors.ErrInvalidCategory,
		},
		{
			name:          "accused does not exist",
			complainantID: 1,
			input:         input,
			setupMock: func(complaints *MockComplaintRepository, users *MockUserRepository, rides *MockRideRepository) {
				users.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complaints := new(MockComplaintRepository)
			users := new(MockUserRepository)
			rides := new(MockRideRepository)
			tt.setupMock(complaints, users, rides)

			service := NewComplaintService(complaints, users, rides)
			complaint, err := service.Submit(context.Background(), tt.complainantID, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, complaint)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, complaint)
				assert.Equal(t, model.ComplaintStatusPending, complaint.Status)
			}

			complaints.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestComplaintService_UpdateStatus(t *testing.T) {
	t.Run("terminal status stamps resolvedAt", func(t *testing.T) {
		complaints := new(MockComplaintRepository)
		complaints.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Complaint{ID: 1, Status: model.ComplaintStatusPending}, nil)
		complaints.On("Update", mock.Anything, mock.AnythingOfType("*model.Complaint")).Return(nil)

		service := NewComplaintService(complaints, new(MockUserRepository), new(MockRideRepository))
		complaint, err := service.UpdateStatus(context.Background(), 1, model.ComplaintStatusResolved, "warned the driver")

		assert.NoError(t, err)
		assert.Equal(t, model.ComplaintStatusResolved, complaint.Status)
		assert.Equal(t, "warned the driver", complaint.AdminNotes)
		assert.NotNil(t, complaint.ResolvedAt)
		complaints.AssertExpectations(t)
	})

	t.Run("investigating leaves resolvedAt empty", func(t *testing.T) {
		complaints := new(MockComplaintRepository)
		complaints.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Complaint{ID: 1, Status: model.ComplaintStatusPending}, nil)
		complaints.On("Update", mock.Anything, mock.AnythingOfType("*model.Complaint")).Return(nil)

		service := NewComplaintService(complaints, new(MockUserRepository), new(MockRideRepository))
		complaint, err := service.UpdateStatus(context.Background(), 1, model.ComplaintStatusInvestigating, "")

		assert.NoError(t, err)
		assert.Nil(t, complaint.ResolvedAt)
	})

	t.Run("reopening clears resolvedAt", func(t *testing.T) {
		resolvedAt := time.Now()
		complaints := new(MockComplaintRepository)
		complaints.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Complaint{ID: 1, Status: model.ComplaintStatusResolved, ResolvedAt: &resolvedAt}, nil)
		complaints.On("Update", mock.Anything, mock.AnythingOfType("*model.Complaint")).Return(nil)

		service := NewComplaintService(complaints, new(MockUserRepository), new(MockRideRepository))
		complaint, err := service.UpdateStatus(context.Background(), 1, model.ComplaintStatusInvestigating, "")

		assert.NoError(t, err)
		assert.Nil(t, complaint.ResolvedAt)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		service := NewComplaintService(new(MockComplaintRepository), new(MockUserRepository), new(MockRideRepository))
		_, err := service.UpdateStatus(context.Background(), 1, "escalated", "")
		assert.Equal(t, apperrors.ErrInvalidStatus, err)
	})

	t.Run("complaint not found", func(t *testing.T) {
		complaints := new(MockComplaintRepository)
		complaints.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewComplaintService(complaints, new(MockUserRepository), new(MockRideRepository))
		_, err := service.UpdateStatus(context.Background(), 9, model.ComplaintStatusDismissed, "")
		assert.Equal(t, apperrors.ErrComplaintNotFound, err)
	})
}
