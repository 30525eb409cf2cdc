package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campool/internal/mail"
	"campool/internal/model"
	"campool/internal/repository"
)

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mock.Mock
}

func (m *MockRideRepository) Create(ctx context.Context, ride *model.Ride) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockRideRepository) FindByID(ctx context.Context, id uint) (*model.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ride), args.Error(1)
}

func (m *MockRideRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ride), args.Error(1)
}

func (m *MockRideRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ride), args.Error(1)
}

func (m *MockRideRepository) Search(ctx context.Context, filter repository.RideSearchFilter) ([]model.Ride, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Ride), args.Get(1).(int64), args.Error(2)
}

func (m *MockRideRepository) ListByDriver(ctx context.Context, driverID uint) ([]model.Ride, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ride), args.Error(1)
}

func (m *MockRideRepository) List(ctx context.Context, status model.RideStatus, page, limit int) ([]model.Ride, int64, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Ride), args.Get(1).(int64), args.Error(2)
}

func (m *MockRideRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRideRepository) CountByStatus(ctx context.Context, status model.RideStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRideRepository) CountByDriver(ctx context.Context, driverID uint) (int64, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(int64), args.Error(1)
}

// WithTransaction executes fn against the mock itself, standing in for the
// transaction-bound repository.
func (m *MockRideRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RideRepository) error) error {
	return fn(ctx, m)
}

func (m *MockRideRepository) ReserveSeat(ctx context.Context, rideID uint) error {
	args := m.Called(ctx, rideID)
	return args.Error(0)
}

func (m *MockRideRepository) ReleaseSeat(ctx context.Context, rideID uint) error {
	args := m.Called(ctx, rideID)
	return args.Error(0)
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, rideID uint, from, to model.RideStatus) error {
	args := m.Called(ctx, rideID, from, to)
	return args.Error(0)
}

func (m *MockRideRepository) CreateParticipant(ctx context.Context, participant *model.RideParticipant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockRideRepository) FindJoinedParticipant(ctx context.Context, rideID, riderID uint) (*model.RideParticipant, error) {
	args := m.Called(ctx, rideID, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RideParticipant), args.Error(1)
}

func (m *MockRideRepository) MarkParticipantLeft(ctx context.Context, participantID uint, leftAt time.Time) error {
	args := m.Called(ctx, participantID, leftAt)
	return args.Error(0)
}

func (m *MockRideRepository) CompleteJoinedParticipants(ctx context.Context, rideID uint) error {
	args := m.Called(ctx, rideID)
	return args.Error(0)
}

func (m *MockRideRepository) IncrementCancellationCount(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockParticipantRepository is a mock implementation of ParticipantRepository.
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) ListByRider(ctx context.Context, riderID uint) ([]model.RideParticipant, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RideParticipant), args.Error(1)
}

func (m *MockParticipantRepository) FindByRideAndRider(ctx context.Context, rideID, riderID uint) (*model.RideParticipant, error) {
	args := m.Called(ctx, rideID, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RideParticipant), args.Error(1)
}

func (m *MockParticipantRepository) CountByRider(ctx context.Context, riderID uint) (int64, error) {
	args := m.Called(ctx, riderID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserListFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountBanned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockVerificationRepository is a mock implementation of EmailVerificationRepository.
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, verification *model.EmailVerification) error {
	args := m.Called(ctx, verification)
	return args.Error(0)
}

func (m *MockVerificationRepository) Save(ctx context.Context, verification *model.EmailVerification) error {
	args := m.Called(ctx, verification)
	return args.Error(0)
}

func (m *MockVerificationRepository) FindPending(ctx context.Context, email string) (*model.EmailVerification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmailVerification), args.Error(1)
}

func (m *MockVerificationRepository) FindVerified(ctx context.Context, email string) (*model.EmailVerification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmailVerification), args.Error(1)
}

func (m *MockVerificationRepository) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) FindByTriple(ctx context.Context, raterID, rateeID, rideID uint) (*model.Rating, error) {
	args := m.Called(ctx, raterID, rateeID, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByRatee(ctx context.Context, rateeID uint) ([]model.Rating, error) {
	args := m.Called(ctx, rateeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Rating), args.Error(1)
}

func (m *MockRatingRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) CountByRatee(ctx context.Context, rateeID uint) (int64, error) {
	args := m.Called(ctx, rateeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) AverageByRatee(ctx context.Context, rateeID uint) (float64, error) {
	args := m.Called(ctx, rateeID)
	return args.Get(0).(float64), args.Error(1)
}

// MockComplaintRepository is a mock implementation of ComplaintRepository.
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) Update(ctx context.Context, complaint *model.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) FindByID(ctx context.Context, id uint) (*model.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) List(ctx context.Context, status model.ComplaintStatus) ([]model.Complaint, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListByComplainant(ctx context.Context, userID uint) ([]model.Complaint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListByAccused(ctx context.Context, userID uint) ([]model.Complaint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplaintRepository) CountByStatus(ctx context.Context, status model.ComplaintStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplaintRepository) CountByAccused(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSOSRepository is a mock implementation of SOSRepository.
type MockSOSRepository struct {
	mock.Mock
}

func (m *MockSOSRepository) Create(ctx context.Context, alert *model.SOSAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockSOSRepository) Update(ctx context.Context, alert *model.SOSAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockSOSRepository) FindByID(ctx context.Context, id uint) (*model.SOSAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SOSAlert), args.Error(1)
}

func (m *MockSOSRepository) List(ctx context.Context, status model.SOSStatus) ([]model.SOSAlert, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SOSAlert), args.Error(1)
}

func (m *MockSOSRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSOSRepository) CountByStatus(ctx context.Context, status model.SOSStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Sender.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *MockMailer) SendSOSAlert(to string, details mail.SOSDetails) error {
	args := m.Called(to, details)
	return args.Error(0)
}
