package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "campool/internal/errors"
	"campool/internal/service"
)

// VerificationHandler handles email OTP endpoints.
type VerificationHandler struct {
	verificationService service.VerificationService
}

// NewVerificationHandler creates a new verification handler.
func NewVerificationHandler(verificationService service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// SendOTPRequest represents an OTP issuance request.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest represents an OTP verification attempt.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// SendOTP godoc
// @Summary Send a verification code to an institutional email
// @Tags email-verification
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Target email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /email-verification/send-otp [post]
func (h *VerificationHandler) SendOTP(c echo.Context) error {
	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verificationService.SendOTP(c.Request().Context(), req.Email); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "OTP sent successfully",
	})
}

// VerifyOTP godoc
// @Summary Verify an emailed code
// @Tags email-verification
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Email and code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Router /email-verification/verify-otp [post]
func (h *VerificationHandler) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	attemptsLeft, err := h.verificationService.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		if err == apperrors.ErrInvalidOTP {
			// Mismatches report the remaining budget alongside the error.
			return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
				"error":        err.Error(),
				"code":         "INVALID_OTP",
				"attemptsLeft": attemptsLeft,
			})
		}
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "email verified successfully",
	})
}

// ResendOTP godoc
// @Summary Resend a verification code
// @Tags email-verification
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Target email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /email-verification/resend-otp [post]
func (h *VerificationHandler) ResendOTP(c echo.Context) error {
	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verificationService.ResendOTP(c.Request().Context(), req.Email); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "OTP resent successfully",
	})
}

// CheckStatus godoc
// @Summary Check whether an email has been verified
// @Tags email-verification
// @Produce json
// @Param email query string true "Email to check"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Router /email-verification/check [get]
func (h *VerificationHandler) CheckStatus(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "email query parameter is required",
			Code:  "MISSING_EMAIL",
		})
	}

	verified, err := h.verificationService.IsVerified(c.Request().Context(), email)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"verified": verified})
}
