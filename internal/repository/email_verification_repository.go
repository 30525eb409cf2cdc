package repository

import (
	"context"

	"gorm.io/gorm"

	"campool/internal/model"
)

// EmailVerificationRepository defines OTP record persistence operations.
type EmailVerificationRepository interface {
	Create(ctx context.Context, verification *model.EmailVerification) error
	Save(ctx context.Context, verification *model.EmailVerification) error
	FindPending(ctx context.Context, email string) (*model.EmailVerification, error)
	FindVerified(ctx context.Context, email string) (*model.EmailVerification, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type emailVerificationRepository struct {
	db *gorm.DB
}

// NewEmailVerificationRepository creates a new email verification repository.
func NewEmailVerificationRepository(db *gorm.DB) EmailVerificationRepository {
	return &emailVerificationRepository{db: db}
}

func (r *emailVerificationRepository) Create(ctx context.Context, verification *model.EmailVerification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}

func (r *emailVerificationRepository) Save(ctx context.Context, verification *model.EmailVerification) error {
	return r.db.WithContext(ctx).Save(verification).Error
}

// FindPending finds the unverified OTP record for an email.
func (r *emailVerificationRepository) FindPending(ctx context.Context, email string) (*model.EmailVerification, error) {
	var verification model.EmailVerification
	if err := r.db.WithContext(ctx).
		Where("email = ? AND is_verified = ?", email, false).
		First(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

// FindVerified finds the verified record an email holds before signup.
func (r *emailVerificationRepository) FindVerified(ctx context.Context, email string) (*model.EmailVerification, error) {
	var verification model.EmailVerification
	if err := r.db.WithContext(ctx).
		Where("email = ? AND is_verified = ?", email, true).
		First(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

// DeleteByEmail removes any OTP record for an email.
func (r *emailVerificationRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&model.EmailVerification{}).Error
}
