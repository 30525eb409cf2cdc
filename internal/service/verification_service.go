package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/mail"
	"campool/internal/metrics"
	"campool/internal/model"
	"campool/internal/repository"
)

const (
	otpTTL         = 10 * time.Minute
	maxOTPAttempts = 3
)

// VerificationService gates signup behind a short-lived email code. State per
// email: none -> pending -> verified, with expiry and attempt exhaustion
// dropping back to none.
type VerificationService interface {
	SendOTP(ctx context.Context, email string) error
	// VerifyOTP checks the code. On a mismatch it returns ErrInvalidOTP along
	// with the attempts remaining before the record is dropped.
	VerifyOTP(ctx context.Context, email, code string) (attemptsLeft int, err error)
	ResendOTP(ctx context.Context, email string) error
	IsVerified(ctx context.Context, email string) (bool, error)
}

type verificationService struct {
	repo          repository.EmailVerificationRepository
	mailer        mail.Sender
	allowedDomain string
	metrics       *metrics.Metrics
}

// NewVerificationService creates a new verification service. allowedDomain is
// the institutional email suffix signups are restricted to.
func NewVerificationService(
	repo repository.EmailVerificationRepository,
	mailer mail.Sender,
	allowedDomain string,
	metrics *metrics.Metrics,
) VerificationService {
	return &verificationService{
		repo:          repo,
		mailer:        mailer,
		allowedDomain: allowedDomain,
		metrics:       metrics,
	}
}

// generateOTP returns a uniformly random 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendOTP issues a fresh code, replacing any prior record for the email. A
// mail delivery failure fails the request: the caller must know the code
// never arrived.
func (s *verificationService) SendOTP(ctx context.Context, email string) error {
	if !strings.HasSuffix(email, s.allowedDomain) {
		return apperrors.ErrDomainNotAllowed
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	// At most one record per email.
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("delete prior verification: %w", err)
	}

	verification := &model.EmailVerification{
		Email:     email,
		OTP:       code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.repo.Create(ctx, verification); err != nil {
		return fmt.Errorf("create verification: %w", err)
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}

	s.metrics.OTPSent.Inc()
	return nil
}

// VerifyOTP consumes an attempt. Expired or exhausted records are deleted so
// the flow restarts from SendOTP. A successful match marks the record
// verified and leaves it for signup to consume.
func (s *verificationService) VerifyOTP(ctx context.Context, email, code string) (int, error) {
	verification, err := s.repo.FindPending(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrNoPendingOTP
		}
		return 0, err
	}

	if time.Now().After(verification.ExpiresAt) {
		_ = s.repo.DeleteByEmail(ctx, email)
		return 0, apperrors.ErrOTPExpired
	}

	if verification.Attempts >= maxOTPAttempts {
		_ = s.repo.DeleteByEmail(ctx, email)
		return 0, apperrors.ErrTooManyAttempts
	}

	if verification.OTP != code {
		verification.Attempts++
		if verification.Attempts >= maxOTPAttempts {
			// Budget exhausted: drop the record, the next verify sees no
			// pending OTP.
			_ = s.repo.DeleteByEmail(ctx, email)
			return 0, apperrors.ErrTooManyAttempts
		}
		if err := s.repo.Save(ctx, verification); err != nil {
			return 0, err
		}
		return maxOTPAttempts - verification.Attempts, apperrors.ErrInvalidOTP
	}

	verification.IsVerified = true
	if err := s.repo.Save(ctx, verification); err != nil {
		return 0, err
	}
	return 0, nil
}

// ResendOTP issues a fresh code with a reset attempt budget.
func (s *verificationService) ResendOTP(ctx context.Context, email string) error {
	return s.SendOTP(ctx, email)
}

// IsVerified reports whether the email holds a verified record.
func (s *verificationService) IsVerified(ctx context.Context, email string) (bool, error) {
	if _, err := s.repo.FindVerified(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
