package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/model"
	"campool/internal/repository"
)

// AdminUser is a user row in the admin listing, with activity counters.
type AdminUser struct {
	model.User
	RidesOffered      int64  `json:"ridesOffered"`
	RidesTaken        int64  `json:"ridesTaken"`
	AverageRating     string `json:"averageRating"`
	ComplaintsAgainst int64  `json:"complaintsAgainst"`
}

// DashboardStats is the aggregate snapshot behind the admin dashboard.
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveUsers       int64 `json:"activeUsers"`
	BannedUsers       int64 `json:"bannedUsers"`
	TotalRides        int64 `json:"totalRides"`
	ActiveRides       int64 `json:"activeRides"`
	CompletedRides    int64 `json:"completedRides"`
	CancelledRides    int64 `json:"cancelledRides"`
	TotalRatings      int64 `json:"totalRatings"`
	TotalComplaints   int64 `json:"totalComplaints"`
	PendingComplaints int64 `json:"pendingComplaints"`
	TotalSOSAlerts    int64 `json:"totalSosAlerts"`
	ActiveSOSAlerts   int64 `json:"activeSosAlerts"`
}

// AdminService backs the moderation dashboard.
type AdminService interface {
	ListUsers(ctx context.Context, filter repository.UserListFilter) ([]AdminUser, *Pagination, error)
	ListRides(ctx context.Context, status model.RideStatus, page, limit int) ([]model.Ride, *Pagination, error)
	ToggleBan(ctx context.Context, userID uint) (*model.User, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	userRepo        repository.UserRepository
	rideRepo        repository.RideRepository
	participantRepo repository.ParticipantRepository
	ratingRepo      repository.RatingRepository
	complaintRepo   repository.ComplaintRepository
	sosRepo         repository.SOSRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	rideRepo repository.RideRepository,
	participantRepo repository.ParticipantRepository,
	ratingRepo repository.RatingRepository,
	complaintRepo repository.ComplaintRepository,
	sosRepo repository.SOSRepository,
) AdminService {
	return &adminService{
		userRepo:        userRepo,
		rideRepo:        rideRepo,
		participantRepo: participantRepo,
		ratingRepo:      ratingRepo,
		complaintRepo:   complaintRepo,
		sosRepo:         sosRepo,
	}
}

// ListUsers pages through users with their activity counters attached.
func (s *adminService) ListUsers(ctx context.Context, filter repository.UserListFilter) ([]AdminUser, *Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	result := make([]AdminUser, 0, len(users))
	for _, user := range users {
		ridesOffered, err := s.rideRepo.CountByDriver(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}
		ridesTaken, err := s.participantRepo.CountByRider(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}
		avg, err := s.ratingRepo.AverageByRatee(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}
		complaints, err := s.complaintRepo.CountByAccused(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}

		result = append(result, AdminUser{
			User:              user,
			RidesOffered:      ridesOffered,
			RidesTaken:        ridesTaken,
			AverageRating:     fmt.Sprintf("%.2f", avg),
			ComplaintsAgainst: complaints,
		})
	}

	return result, NewPagination(total, filter.Page, filter.Limit), nil
}

// ListRides pages through all rides, optionally filtered by status.
func (s *adminService) ListRides(ctx context.Context, status model.RideStatus, page, limit int) ([]model.Ride, *Pagination, error) {
	if status != "" {
		switch status {
		case model.RideStatusActive, model.RideStatusCompleted, model.RideStatusCancelled:
		default:
			return nil, nil, apperrors.ErrInvalidStatus
		}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rides, total, err := s.rideRepo.List(ctx, status, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return rides, NewPagination(total, page, limit), nil
}

// ToggleBan flips a user's banned flag. Admin accounts cannot be banned.
func (s *adminService) ToggleBan(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role == model.RoleAdmin {
		return nil, apperrors.ErrCannotBanAdmin
	}

	user.IsBanned = !user.IsBanned
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("toggle ban: %w", err)
	}
	return user, nil
}

// Stats collects the dashboard aggregates.
func (s *adminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.TotalUsers, s.userRepo.CountAll},
		{&stats.ActiveUsers, s.userRepo.CountActive},
		{&stats.BannedUsers, s.userRepo.CountBanned},
		{&stats.TotalRides, s.rideRepo.CountAll},
		{&stats.TotalRatings, s.ratingRepo.CountAll},
		{&stats.TotalComplaints, s.complaintRepo.CountAll},
		{&stats.TotalSOSAlerts, s.sosRepo.CountAll},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	var err error
	if stats.ActiveRides, err = s.rideRepo.CountByStatus(ctx, model.RideStatusActive); err != nil {
		return nil, err
	}
	if stats.CompletedRides, err = s.rideRepo.CountByStatus(ctx, model.RideStatusCompleted); err != nil {
		return nil, err
	}
	if stats.CancelledRides, err = s.rideRepo.CountByStatus(ctx, model.RideStatusCancelled); err != nil {
		return nil, err
	}
	if stats.PendingComplaints, err = s.complaintRepo.CountByStatus(ctx, model.ComplaintStatusPending); err != nil {
		return nil, err
	}
	if stats.ActiveSOSAlerts, err = s.sosRepo.CountByStatus(ctx, model.SOSStatusActive); err != nil {
		return nil, err
	}

	return stats, nil
}
