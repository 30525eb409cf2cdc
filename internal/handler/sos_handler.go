package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campool/internal/service"
)

// SOSHandler handles emergency alert endpoints.
type SOSHandler struct {
	sosService service.SOSService
}

// NewSOSHandler creates a new SOS handler.
func NewSOSHandler(sosService service.SOSService) *SOSHandler {
	return &SOSHandler{sosService: sosService}
}

// TriggerSOSRequest represents an emergency report.
type TriggerSOSRequest struct {
	RideID    uint     `json:"rideId" validate:"required"`
	Location  string   `json:"location" validate:"omitempty,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Message   string   `json:"message" validate:"omitempty,max=1000"`
}

// Trigger godoc
// @Summary Trigger an SOS alert for a ride
// @Tags sos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TriggerSOSRequest true "Emergency details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sos [post]
func (h *SOSHandler) Trigger(c echo.Context) error {
	var req TriggerSOSRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	alert, err := h.sosService.Trigger(c.Request().Context(), currentUser(c).ID, service.TriggerSOSInput{
		RideID:    req.RideID,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Message:   req.Message,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "SOS alert triggered",
		"alert":   alert,
	})
}
