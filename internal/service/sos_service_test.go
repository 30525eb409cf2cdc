package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/metrics"
	"campool/internal/model"
)

const emergencyInbox = "security@iiitkottayam.ac.in"

func newTestSOSService(sosRepo *MockSOSRepository, rideRepo *MockRideRepository, userRepo *MockUserRepository, mailer *MockMailer) SOSService {
	return NewSOSService(sosRepo, rideRepo, userRepo, mailer, emergencyInbox, metrics.New(prometheus.NewRegistry()))
}

func TestSOSService_Trigger(t *testing.T) {
	input := TriggerSOSInput{RideID: 1, Location: "NH 183 near Pampady", Message: "driver taking unknown route"}

	t.Run("successful trigger with notification", func(t *testing.T) {
		sosRepo := new(MockSOSRepository)
		rideRepo := new(MockRideRepository)
		userRepo := new(MockUserRepository)
		mailer := new(MockMailer)

		rideRepo.On("FindByID", mock.Anything, uint(1)).Return(activeRide(1, 10, 2, 3), nil)
		sosRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.SOSAlert")).Return(nil)
		userRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, Username: "asha", PhoneNumber: "+911"}, nil)
		userRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.User{ID: 10, Username: "rahul", PhoneNumber: "+912"}, nil)
		mailer.On("SendSOSAlert", emergencyInbox, mock.AnythingOfType("mail.SOSDetails")).Return(nil)

		service := newTestSOSService(sosRepo, rideRepo, userRepo, mailer)
		alert, err := service.Trigger(context.Background(), 5, input)

		assert.NoError(t, err)
		assert.NotNil(t, alert)
		assert.Equal(t, model.SOSStatusActive, alert.Status)
		sosRepo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("mail failure does not fail the trigger", func(t *testing.T) {
		sosRepo := new(MockSOSRepository)
		rideRepo := new(MockRideRepository)
		userRepo := new(MockUserRepository)
		mailer := new(MockMailer)

		rideRepo.On("FindByID", mock.Anything, uint(1)).Return(activeRide(1, 10, 2, 3), nil)
		sosRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.SOSAlert")).Return(nil)
		userRepo.On("FindByID", mock.Anything, mock.AnythingOfType("uint")).Return(&model.User{ID: 5}, nil)
		mailer.On("SendSOSAlert", emergencyInbox, mock.AnythingOfType("mail.SOSDetails")).Return(assert.AnError)

		service := newTestSOSService(sosRepo, rideRepo, userRepo, mailer)
		alert, err := service.Trigger(context.Background(), 5, input)

		assert.NoError(t, err)
		assert.NotNil(t, alert)
	})

	t.Run("ride not found", func(t *testing.T) {
		rideRepo := new(MockRideRepository)
		rideRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		service := newTestSOSService(new(MockSOSRepository), rideRepo, new(MockUserRepository), new(MockMailer))
		alert, err := service.Trigger(context.Background(), 5, input)

		assert.Equal(t, apperrors.ErrRideNotFound, err)
		assert.Nil(t, alert)
	})
}

func TestSOSService_Resolve(t *testing.T) {
	t.Run("resolve stamps resolvedAt", func(t *testing.T) {
		sosRepo := new(MockSOSRepository)
		sosRepo.On("FindByID", mock.Anything, uint(1)).
			Return(&model.SOSAlert{ID: 1, Status: model.SOSStatusActive}, nil)
		sosRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.SOSAlert")).Return(nil)

		service := newTestSOSService(sosRepo, new(MockRideRepository), new(MockUserRepository), new(MockMailer))
		alert, err := service.Resolve(context.Background(), 1, model.SOSStatusFalseAlarm)

		assert.NoError(t, err)
		assert.Equal(t, model.SOSStatusFalseAlarm, alert.Status)
		assert.NotNil(t, alert.ResolvedAt)
		sosRepo.AssertExpectations(t)
	})

	t.Run("active is not a resolution", func(t *testing.T) {
		service := newTestSOSService(new(MockSOSRepository), new(MockRideRepository), new(MockUserRepository), new(MockMailer))
		_, err := service.Resolve(context.Background(), 1, model.SOSStatusActive)
		assert.Equal(t, apperrors.ErrInvalidStatus, err)
	})

	t.Run("alert not found", func(t *testing.T) {
		sosRepo := new(MockSOSRepository)
		sosRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := newTestSOSService(sosRepo, new(MockRideRepository), new(MockUserRepository), new(MockMailer))
		_, err := service.Resolve(context.Background(), 9, model.SOSStatusResolved)
		assert.Equal(t, apperrors.ErrAlertNotFound, err)
	})
}
