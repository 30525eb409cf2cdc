package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserBanned is returned when a banned user tries to authenticate.
	ErrUserBanned = errors.New("your account has been banned")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is returned when the username is already in use.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailNotVerified is returned when signing up without a verified email.
	ErrEmailNotVerified = errors.New("email not verified, please verify your email first")

	// ErrRideNotFound is returned when a ride is not found.
	ErrRideNotFound = errors.New("ride not found")
	// ErrRideNotActive is returned for transitions on completed/cancelled rides.
	ErrRideNotActive = errors.New("ride is not active")
	// ErrSelfJoin is returned when a driver tries to join their own ride.
	ErrSelfJoin = errors.New("cannot join your own ride")
	// ErrNoSeats is returned when a ride has no available seats.
	ErrNoSeats = errors.New("no seats available")
	// ErrAlreadyJoined is returned when the rider already holds a seat.
	ErrAlreadyJoined = errors.New("already joined this ride")
	// ErrNotAParticipant is returned when leaving a ride never joined.
	ErrNotAParticipant = errors.New("not a participant of this ride")
	// ErrNotDriver is returned when a non-driver cancels or completes a ride.
	ErrNotDriver = errors.New("only the driver can perform this action")

	// ErrSelfRating is returned when a user rates themselves.
	ErrSelfRating = errors.New("cannot rate yourself")
	// ErrInvalidStars is returned when stars fall outside [0,5].
	ErrInvalidStars = errors.New("stars must be between 0 and 5")
	// ErrDuplicateRating is returned for a repeated (rater, ratee, ride) triple.
	ErrDuplicateRating = errors.New("already rated this user for this ride")
	// ErrRideNotCompleted is returned when rating a ride that has not finished
	// and the completed-ride policy is enabled.
	ErrRideNotCompleted = errors.New("ride is not completed yet")

	// ErrSelfComplaint is returned when a user files a complaint against themselves.
	ErrSelfComplaint = errors.New("cannot file complaint against yourself")
	// ErrInvalidCategory is returned for unknown complaint categories.
	ErrInvalidCategory = errors.New("invalid complaint category")
	// ErrComplaintNotFound is returned when a complaint is not found.
	ErrComplaintNotFound = errors.New("complaint not found")
	// ErrAlertNotFound is returned when an SOS alert is not found.
	ErrAlertNotFound = errors.New("sos alert not found")
	// ErrInvalidStatus is returned for disallowed status values.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrCannotBanAdmin is returned when an admin account is targeted by a ban.
	ErrCannotBanAdmin = errors.New("cannot ban admin users")

	// ErrDomainNotAllowed is returned for emails outside the allowed domain.
	ErrDomainNotAllowed = errors.New("email domain is not allowed")
	// ErrNoPendingOTP is returned when no verification is pending for an email.
	ErrNoPendingOTP = errors.New("no OTP found for this email")
	// ErrOTPExpired is returned when the code is past its expiry.
	ErrOTPExpired = errors.New("OTP has expired, please request a new one")
	// ErrTooManyAttempts is returned once the attempt budget is exhausted.
	ErrTooManyAttempts = errors.New("too many failed attempts, please request a new OTP")
	// ErrInvalidOTP is returned on a code mismatch.
	ErrInvalidOTP = errors.New("invalid OTP")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrRideNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RIDE_NOT_FOUND")
	case ErrComplaintNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMPLAINT_NOT_FOUND")
	case ErrAlertNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ALERT_NOT_FOUND")
	case ErrUserBanned:
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_BANNED")
	case ErrNotDriver:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_DRIVER")
	case ErrCannotBanAdmin:
		return NewHTTPError(http.StatusForbidden, err.Error(), "CANNOT_BAN_ADMIN")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case ErrEmailNotVerified:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_NOT_VERIFIED")
	case ErrRideNotActive:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RIDE_NOT_ACTIVE")
	case ErrSelfJoin:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_JOIN")
	case ErrNoSeats:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_SEATS")
	case ErrAlreadyJoined:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_JOINED")
	case ErrNotAParticipant:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_A_PARTICIPANT")
	case ErrSelfRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_RATING")
	case ErrInvalidStars:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STARS")
	case ErrDuplicateRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_RATING")
	case ErrRideNotCompleted:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RIDE_NOT_COMPLETED")
	case ErrSelfComplaint:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_COMPLAINT")
	case ErrInvalidCategory:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrDomainNotAllowed:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DOMAIN_NOT_ALLOWED")
	case ErrNoPendingOTP:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_PENDING_OTP")
	case ErrOTPExpired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OTP_EXPIRED")
	case ErrTooManyAttempts:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOO_MANY_ATTEMPTS")
	case ErrInvalidOTP:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OTP")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
