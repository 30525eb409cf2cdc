package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/model"
	"campool/internal/repository"
)

// SubmitComplaintInput carries a validated complaint.
type SubmitComplaintInput struct {
	AccusedID   uint
	RideID      *uint
	Category    string
	Description string
}

// ComplaintService handles user reports and their admin review.
type ComplaintService interface {
	Submit(ctx context.Context, complainantID uint, input SubmitComplaintInput) (*model.Complaint, error)
	ListForAdmin(ctx context.Context, status model.ComplaintStatus) ([]model.Complaint, error)
	ListForUser(ctx context.Context, userID uint) (filed, received []model.Complaint, err error)
	UpdateStatus(ctx context.Context, id uint, status model.ComplaintStatus, adminNotes string) (*model.Complaint, error)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	rideRepo      repository.RideRepository
}

// NewComplaintService creates a new complaint service.
func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	rideRepo repository.RideRepository,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		rideRepo:      rideRepo,
	}
}

// Submit files a complaint in pending status.
func (s *complaintService) Submit(ctx context.Context, complainantID uint, input SubmitComplaintInput) (*model.Complaint, error) {
	if complainantID == input.AccusedID {
		return nil, apperrors.ErrSelfComplaint
	}
	if !model.ValidComplaintCategory(input.Category) {
		return nil, apperrors.ErrInvalidCategory
	}

	if _, err := s.userRepo.FindByID(ctx, input.AccusedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if input.RideID != nil {
		if _, err := s.rideRepo.FindByID(ctx, *input.RideID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRideNotFound
			}
			return nil, err
		}
	}

	complaint := &model.Complaint{
		ComplainantID: complainantID,
		AccusedID:     input.AccusedID,
		RideID:        input.RideID,
		Category:      input.Category,
		Description:   input.Description,
		Status:        model.ComplaintStatusPending,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	return complaint, nil
}

// ListForAdmin lists complaints, optionally filtered by status.
func (s *complaintService) ListForAdmin(ctx context.Context, status model.ComplaintStatus) ([]model.Complaint, error) {
	if status != "" && !model.ValidComplaintStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.complaintRepo.List(ctx, status)
}

// ListForUser lists the complaints a user has filed and those filed
// against them.
func (s *complaintService) ListForUser(ctx context.Context, userID uint) (filed, received []model.Complaint, err error) {
	filed, err = s.complaintRepo.ListByComplainant(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	received, err = s.complaintRepo.ListByAccused(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return filed, received, nil
}

// UpdateStatus moves a complaint through its review flow. Entering a terminal
// status stamps resolvedAt; reopening clears it.
func (s *complaintService) UpdateStatus(ctx context.Context, id uint, status model.ComplaintStatus, adminNotes string) (*model.Complaint, error) {
	if !model.ValidComplaintStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	complaint, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrComplaintNotFound
		}
		return nil, err
	}

	complaint.Status = status
	if adminNotes != "" {
		complaint.AdminNotes = adminNotes
	}
	if status.Terminal() {
		if complaint.ResolvedAt == nil {
			now := time.Now()
			complaint.ResolvedAt = &now
		}
	} else {
		complaint.ResolvedAt = nil
	}

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("update complaint: %w", err)
	}
	return complaint, nil
}
