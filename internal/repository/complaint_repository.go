package repository

import (
	"context"

	"gorm.io/gorm"

	"campool/internal/model"
)

// ComplaintRepository defines complaint persistence operations.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	Update(ctx context.Context, complaint *model.Complaint) error
	FindByID(ctx context.Context, id uint) (*model.Complaint, error)
	List(ctx context.Context, status model.ComplaintStatus) ([]model.Complaint, error)
	ListByComplainant(ctx context.Context, userID uint) ([]model.Complaint, error)
	ListByAccused(ctx context.Context, userID uint) ([]model.Complaint, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.ComplaintStatus) (int64, error)
	CountByAccused(ctx context.Context, userID uint) (int64, error)
}

type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository.
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepository) Update(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

func (r *complaintRepository) FindByID(ctx context.Context, id uint) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := r.db.WithContext(ctx).First(&complaint, id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// List lists complaints for the admin view, newest first.
func (r *complaintRepository) List(ctx context.Context, status model.ComplaintStatus) ([]model.Complaint, error) {
	query := r.db.WithContext(ctx).
		Preload("Complainant").
		Preload("Accused").
		Preload("Ride")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var complaints []model.Complaint
	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) ListByComplainant(ctx context.Context, userID uint) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Where("complainant_id = ?", userID).
		Preload("Accused").
		Preload("Ride").
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) ListByAccused(ctx context.Context, userID uint) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := r.db.WithContext(ctx).
		Where("accused_id = ?", userID).
		Preload("Complainant").
		Preload("Ride").
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Complaint{}).Count(&count).Error
	return count, err
}

func (r *complaintRepository) CountByStatus(ctx context.Context, status model.ComplaintStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Complaint{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *complaintRepository) CountByAccused(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Complaint{}).
		Where("accused_id = ?", userID).Count(&count).Error
	return count, err
}
