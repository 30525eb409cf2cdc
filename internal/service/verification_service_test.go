package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/metrics"
	"campool/internal/model"
)

const testDomain = "@iiitkottayam.ac.in"

func newTestVerificationService(repo *MockVerificationRepository, mailer *MockMailer) VerificationService {
	return NewVerificationService(repo, mailer, testDomain, metrics.New(prometheus.NewRegistry()))
}

func pendingVerification(email, code string, attempts int) *model.EmailVerification {
	return &model.EmailVerification{
		ID:        1,
		Email:     email,
		OTP:       code,
		ExpiresAt: time.Now().Add(5 * time.Minute),
		Attempts:  attempts,
	}
}

func TestVerificationService_SendOTP(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockVerificationRepository, *MockMailer)
		expectedError error
	}{
		{
			name:  "successful send",
			email: "student" + testDomain,
			setupMock: func(repo *MockVerificationRepository, mailer *MockMailer) {
				repo.On("DeleteByEmail", mock.Anything, "student"+testDomain).Return(nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.EmailVerification")).Return(nil)
				mailer.On("SendOTP", "student"+testDomain, mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:          "outside domain",
			email:         "someone@gmail.com",
			setupMock:     func(repo *MockVerificationRepository, mailer *MockMailer) {},
			expectedError: apperrors.ErrDomainNotAllowed,
		},
		{
			name:  "mail delivery failure propagates",
			email: "student" + testDomain,
			setupMock: func(repo *MockVerificationRepository, mailer *MockMailer) {
				repo.On("DeleteByEmail", mock.Anything, "student"+testDomain).Return(nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.EmailVerification")).Return(nil)
				mailer.On("SendOTP", "student"+testDomain, mock.AnythingOfType("string")).Return(assert.AnError)
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockVerificationRepository)
			mailer := new(MockMailer)
			tt.setupMock(repo, mailer)

			service := newTestVerificationService(repo, mailer)
			err := service.SendOTP(context.Background(), tt.email)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			mailer.AssertExpectations(t)
		})
	}
}

func TestVerificationService_VerifyOTP(t *testing.T) {
	email := "student" + testDomain

	t.Run("successful verification", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		verification := pendingVerification(email, "123456", 0)
		repo.On("FindPending", mock.Anything, email).Return(verification, nil)
		repo.On("Save", mock.Anything, verification).Return(nil)

		service := newTestVerificationService(repo, new(MockMailer))
		_, err := service.VerifyOTP(context.Background(), email, "123456")

		assert.NoError(t, err)
		assert.True(t, verification.IsVerified)
		repo.AssertExpectations(t)
	})

	t.Run("no pending record", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		repo.On("FindPending", mock.Anything, email).Return(nil, gorm.ErrRecordNotFound)

		service := newTestVerificationService(repo, new(MockMailer))
		_, err := service.VerifyOTP(context.Background(), email, "123456")

		assert.Equal(t, apperrors.ErrNoPendingOTP, err)
	})

	t.Run("expired code is dropped", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		verification := pendingVerification(email, "123456", 0)
		verification.ExpiresAt = time.Now().Add(-time.Minute)
		repo.On("FindPending", mock.Anything, email).Return(verification, nil)
		repo.On("DeleteByEmail", mock.Anything, email).Return(nil)

		service := newTestVerificationService(repo, new(MockMailer))
		_, err := service.VerifyOTP(context.Background(), email, "123456")

		assert.Equal(t, apperrors.ErrOTPExpired, err)
		repo.AssertExpectations(t)
	})

	t.Run("wrong code decrements the budget", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		verification := pendingVerification(email, "123456", 0)
		repo.On("FindPending", mock.Anything, email).Return(verification, nil)
		repo.On("Save", mock.Anything, verification).Return(nil)

		service := newTestVerificationService(repo, new(MockMailer))
		attemptsLeft, err := service.VerifyOTP(context.Background(), email, "999999")

		assert.Equal(t, apperrors.ErrInvalidOTP, err)
		assert.Equal(t, 2, attemptsLeft)
		assert.Equal(t, 1, verification.Attempts)
		repo.AssertExpectations(t)
	})

	t.Run("third wrong code drops the record", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		verification := pendingVerification(email, "123456", 2)
		repo.On("FindPending", mock.Anything, email).Return(verification, nil)
		repo.On("DeleteByEmail", mock.Anything, email).Return(nil)

		service := newTestVerificationService(repo, new(MockMailer))
		_, err := service.VerifyOTP(context.Background(), email, "999999")

		assert.Equal(t, apperrors.ErrTooManyAttempts, err)
		repo.AssertExpectations(t)
	})

	t.Run("verify after exhaustion finds nothing", func(t *testing.T) {
		// The record was deleted on the third failure, so the fourth attempt
		// behaves like no OTP was ever requested.
		repo := new(MockVerificationRepository)
		repo.On("FindPending", mock.Anything, email).Return(nil, gorm.ErrRecordNotFound)

		service := newTestVerificationService(repo, new(MockMailer))
		_, err := service.VerifyOTP(context.Background(), email, "123456")

		assert.Equal(t, apperrors.ErrNoPendingOTP, err)
	})
}

func TestVerificationService_IsVerified(t *testing.T) {
	email := "student" + testDomain

	repo := new(MockVerificationRepository)
	repo.On("FindVerified", mock.Anything, email).
		Return(&model.EmailVerification{Email: email, IsVerified: true}, nil).Once()
	repo.On("FindVerified", mock.Anything, "other"+testDomain).
		Return(nil, gorm.ErrRecordNotFound).Once()

	service := newTestVerificationService(repo, new(MockMailer))

	verified, err := service.IsVerified(context.Background(), email)
	assert.NoError(t, err)
	assert.True(t, verified)

	verified, err = service.IsVerified(context.Background(), "other"+testDomain)
	assert.NoError(t, err)
	assert.False(t, verified)

	repo.AssertExpectations(t)
}
