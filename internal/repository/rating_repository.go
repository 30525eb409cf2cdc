package repository

import (
	"context"

	"gorm.io/gorm"

	"campool/internal/model"
)

// RatingRepository defines rating persistence operations. Ratings are
// append-only; there is no update or delete.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	FindByTriple(ctx context.Context, raterID, rateeID, rideID uint) (*model.Rating, error)
	ListByRatee(ctx context.Context, rateeID uint) ([]model.Rating, error)
	CountAll(ctx context.Context) (int64, error)
	CountByRatee(ctx context.Context, rateeID uint) (int64, error)
	AverageByRatee(ctx context.Context, rateeID uint) (float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// FindByTriple finds the rating for a (rater, ratee, ride) triple.
func (r *ratingRepository) FindByTriple(ctx context.Context, raterID, rateeID, rideID uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("rater_id = ? AND ratee_id = ? AND ride_id = ?", raterID, rateeID, rideID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByRatee lists ratings received by a user, newest first.
func (r *ratingRepository) ListByRatee(ctx context.Context, rateeID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	if err := r.db.WithContext(ctx).
		Where("ratee_id = ?", rateeID).
		Preload("Rater").
		Preload("Ride").
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&count).Error
	return count, err
}

func (r *ratingRepository) CountByRatee(ctx context.Context, rateeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("ratee_id = ?", rateeID).Count(&count).Error
	return count, err
}

// AverageByRatee returns the mean stars a user has received, 0 when unrated.
func (r *ratingRepository) AverageByRatee(ctx context.Context, rateeID uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("ratee_id = ?", rateeID).
		Select("COALESCE(AVG(stars), 0)").
		Scan(&avg).Error
	return avg, err
}
