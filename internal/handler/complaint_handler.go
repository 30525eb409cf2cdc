package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campool/internal/service"
)

// ComplaintHandler handles user report endpoints.
type ComplaintHandler struct {
	complaintService service.ComplaintService
}

// NewComplaintHandler creates a new complaint handler.
func NewComplaintHandler(complaintService service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// SubmitComplaintRequest represents a complaint submission.
type SubmitComplaintRequest struct {
	AccusedID   uint   `json:"accusedId" validate:"required"`
	RideID      *uint  `json:"rideId"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required,min=10,max=2000"`
}

// Submit godoc
// @Summary File a complaint against another user
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitComplaintRequest true "Complaint"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /complaints [post]
func (h *ComplaintHandler) Submit(c echo.Context) error {
	var req SubmitComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.complaintService.Submit(c.Request().Context(), currentUser(c).ID, service.SubmitComplaintInput{
		AccusedID:   req.AccusedID,
		RideID:      req.RideID,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "complaint submitted successfully",
		"complaint": complaint,
	})
}

// MyComplaints godoc
// @Summary List complaints the authenticated user has filed and received
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /complaints/user [get]
func (h *ComplaintHandler) MyComplaints(c echo.Context) error {
	filed, received, err := h.complaintService.ListForUser(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"complaintsFiled":    filed,
		"complaintsReceived": received,
	})
}
