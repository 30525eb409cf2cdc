package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	apperrors "campool/internal/errors"
	"campool/internal/mail"
	"campool/internal/metrics"
	"campool/internal/model"
	"campool/internal/repository"
)

// TriggerSOSInput carries a validated emergency report.
type TriggerSOSInput struct {
	RideID    uint
	Location  string
	Latitude  *float64
	Longitude *float64
	Message   string
}

// SOSService handles emergency alerts. The alert row is the source of truth;
// email notification is best effort and never fails the trigger.
type SOSService interface {
	Trigger(ctx context.Context, userID uint, input TriggerSOSInput) (*model.SOSAlert, error)
	ListForAdmin(ctx context.Context, status model.SOSStatus) ([]model.SOSAlert, error)
	Resolve(ctx context.Context, id uint, status model.SOSStatus) (*model.SOSAlert, error)
}

type sosService struct {
	sosRepo        repository.SOSRepository
	rideRepo       repository.RideRepository
	userRepo       repository.UserRepository
	mailer         mail.Sender
	emergencyEmail string
	metrics        *metrics.Metrics
}

// NewSOSService creates a new SOS service. emergencyEmail is the campus
// security inbox alerts are forwarded to; empty disables forwarding.
func NewSOSService(
	sosRepo repository.SOSRepository,
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	mailer mail.Sender,
	emergencyEmail string,
	metrics *metrics.Metrics,
) SOSService {
	return &sosService{
		sosRepo:        sosRepo,
		rideRepo:       rideRepo,
		userRepo:       userRepo,
		mailer:         mailer,
		emergencyEmail: emergencyEmail,
		metrics:        metrics,
	}
}

// Trigger records an active alert and forwards it to the emergency contact.
// The alert is persisted before any notification, so a mail outage never
// loses the report.
func (s *sosService) Trigger(ctx context.Context, userID uint, input TriggerSOSInput) (*model.SOSAlert, error) {
	ride, err := s.rideRepo.FindByID(ctx, input.RideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, err
	}

	alert := &model.SOSAlert{
		UserID:    userID,
		RideID:    input.RideID,
		Location:  input.Location,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Message:   input.Message,
		Status:    model.SOSStatusActive,
	}
	if err := s.sosRepo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("create sos alert: %w", err)
	}

	s.metrics.SOSAlerts.Inc()
	s.notify(ctx, alert, ride, userID)
	return alert, nil
}

func (s *sosService) notify(ctx context.Context, alert *model.SOSAlert, ride *model.Ride, userID uint) {
	if s.emergencyEmail == "" {
		return
	}

	details := mail.SOSDetails{
		AlertID:       alert.ID,
		StartLocation: ride.StartLocation,
		EndLocation:   ride.EndLocation,
		RideDateTime:  ride.RideDateTime,
		Location:      alert.Location,
		Message:       alert.Message,
	}
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		details.UserName = user.Username
		details.UserEmail = user.Email
		details.UserPhone = user.PhoneNumber
	}
	if driver, err := s.userRepo.FindByID(ctx, ride.DriverID); err == nil {
		details.DriverName = driver.Username
		details.DriverPhone = driver.PhoneNumber
	}

	if err := s.mailer.SendSOSAlert(s.emergencyEmail, details); err != nil {
		log.Printf("sos alert %d: emergency email failed: %v", alert.ID, err)
	}
}

// ListForAdmin lists alerts, optionally filtered by status.
func (s *sosService) ListForAdmin(ctx context.Context, status model.SOSStatus) ([]model.SOSAlert, error) {
	switch status {
	case "", model.SOSStatusActive, model.SOSStatusResolved, model.SOSStatusFalseAlarm:
	default:
		return nil, apperrors.ErrInvalidStatus
	}
	return s.sosRepo.List(ctx, status)
}

// Resolve closes an alert as resolved or false_alarm.
func (s *sosService) Resolve(ctx context.Context, id uint, status model.SOSStatus) (*model.SOSAlert, error) {
	if status != model.SOSStatusResolved && status != model.SOSStatusFalseAlarm {
		return nil, apperrors.ErrInvalidStatus
	}

	alert, err := s.sosRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAlertNotFound
		}
		return nil, err
	}

	alert.Status = status
	now := time.Now()
	alert.ResolvedAt = &now

	if err := s.sosRepo.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("update sos alert: %w", err)
	}
	return alert, nil
}
