package repository

import (
	"context"

	"gorm.io/gorm"

	"campool/internal/model"
)

// SOSRepository defines SOS alert persistence operations.
type SOSRepository interface {
	Create(ctx context.Context, alert *model.SOSAlert) error
	Update(ctx context.Context, alert *model.SOSAlert) error
	FindByID(ctx context.Context, id uint) (*model.SOSAlert, error)
	List(ctx context.Context, status model.SOSStatus) ([]model.SOSAlert, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.SOSStatus) (int64, error)
}

type sosRepository struct {
	db *gorm.DB
}

// NewSOSRepository creates a new SOS alert repository.
func NewSOSRepository(db *gorm.DB) SOSRepository {
	return &sosRepository{db: db}
}

func (r *sosRepository) Create(ctx context.Context, alert *model.SOSAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *sosRepository) Update(ctx context.Context, alert *model.SOSAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *sosRepository) FindByID(ctx context.Context, id uint) (*model.SOSAlert, error) {
	var alert model.SOSAlert
	if err := r.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// List lists alerts for the admin view, newest first.
func (r *sosRepository) List(ctx context.Context, status model.SOSStatus) ([]model.SOSAlert, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Ride").
		Preload("Ride.Driver")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var alerts []model.SOSAlert
	if err := query.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *sosRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SOSAlert{}).Count(&count).Error
	return count, err
}

func (r *sosRepository) CountByStatus(ctx context.Context, status model.SOSStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SOSAlert{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}
