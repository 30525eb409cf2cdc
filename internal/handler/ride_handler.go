package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "campool/internal/errors"
	"campool/internal/repository"
	"campool/internal/service"
)

// RideHandler handles ride lifecycle endpoints.
type RideHandler struct {
	rideService service.RideService
}

// NewRideHandler creates a new ride handler.
func NewRideHandler(rideService service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRideRequest represents a ride posting.
type CreateRideRequest struct {
	StartLocation  string                 `json:"startLocation" validate:"required,max=255"`
	EndLocation    string                 `json:"endLocation" validate:"required,max=255"`
	StartLatitude  *float64               `json:"startLatitude" validate:"omitempty,latitude"`
	StartLongitude *float64               `json:"startLongitude" validate:"omitempty,longitude"`
	EndLatitude    *float64               `json:"endLatitude" validate:"omitempty,latitude"`
	EndLongitude   *float64               `json:"endLongitude" validate:"omitempty,longitude"`
	RideDateTime   time.Time              `json:"rideDateTime" validate:"required"`
	TotalSeats     int                    `json:"totalSeats" validate:"required,min=1,max=8"`
	PricePerSeat   decimal.Decimal        `json:"pricePerSeat"`
	Tags           []string               `json:"tags" validate:"omitempty,max=10,dive,max=30"`
	VehicleInfo    map[string]interface{} `json:"vehicleInfo"`
	Notes          string                 `json:"notes" validate:"omitempty,max=1000"`
}

// Create godoc
// @Summary Post a new ride
// @Tags rides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRideRequest true "Ride details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /rides [post]
func (h *RideHandler) Create(c echo.Context) error {
	var req CreateRideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PricePerSeat.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "pricePerSeat must not be negative",
			Code:  "INVALID_PRICE",
		})
	}

	ride, err := h.rideService.Create(c.Request().Context(), currentUser(c).ID, service.CreateRideInput{
		StartLocation:  req.StartLocation,
		EndLocation:    req.EndLocation,
		StartLatitude:  req.StartLatitude,
		StartLongitude: req.StartLongitude,
		EndLatitude:    req.EndLatitude,
		EndLongitude:   req.EndLongitude,
		RideDateTime:   req.RideDateTime,
		TotalSeats:     req.TotalSeats,
		PricePerSeat:   req.PricePerSeat,
		Tags:           req.Tags,
		VehicleInfo:    req.VehicleInfo,
		Notes:          req.Notes,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "ride created successfully",
		"ride":    ride,
	})
}

// Search godoc
// @Summary Search active rides
// @Tags rides
// @Produce json
// @Param startLocation query string false "Start location substring"
// @Param endLocation query string false "End location substring"
// @Param date query string false "Departure day (YYYY-MM-DD)"
// @Param minSeats query int false "Minimum available seats"
// @Param maxPrice query number false "Maximum price per seat"
// @Param tags query string false "Comma-separated tags, any-of match"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /rides/search [get]
func (h *RideHandler) Search(c echo.Context) error {
	filter := repository.RideSearchFilter{
		StartLocation: c.QueryParam("startLocation"),
		EndLocation:   c.QueryParam("endLocation"),
	}

	if raw := c.QueryParam("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "date must be YYYY-MM-DD",
				Code:  "INVALID_DATE",
			})
		}
		filter.Date = &date
	}
	if raw := c.QueryParam("minSeats"); raw != "" {
		minSeats, err := strconv.Atoi(raw)
		if err != nil || minSeats < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "minSeats must be a positive integer",
				Code:  "INVALID_MIN_SEATS",
			})
		}
		filter.MinSeats = minSeats
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil || maxPrice.IsNegative() {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "maxPrice must be a non-negative number",
				Code:  "INVALID_MAX_PRICE",
			})
		}
		filter.MaxPrice = &maxPrice
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	var tags []string
	if raw := c.QueryParam("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	rides, pagination, err := h.rideService.Search(c.Request().Context(), filter, tags)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"rides":      rides,
		"pagination": pagination,
	})
}

// UserRides godoc
// @Summary List the authenticated user's rides
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param role query string false "driver, rider, or all" default(all)
// @Success 200 {object} service.UserRides
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /rides/user [get]
func (h *RideHandler) UserRides(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		role = "all"
	}
	if role != "driver" && role != "rider" && role != "all" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "role must be driver, rider, or all",
			Code:  "INVALID_ROLE",
		})
	}

	rides, err := h.rideService.RidesForUser(c.Request().Context(), currentUser(c).ID, role)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, rides)
}

// Get godoc
// @Summary Get a ride with driver and participants
// @Tags rides
// @Produce json
// @Param id path int true "Ride ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rides/{id} [get]
func (h *RideHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ride, err := h.rideService.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ride": ride})
}

// Join godoc
// @Summary Join a ride
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ride ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rides/{id}/join [post]
func (h *RideHandler) Join(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ride, err := h.rideService.Join(c.Request().Context(), id, currentUser(c).ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "joined ride successfully",
		"ride":    ride,
	})
}

// Leave godoc
// @Summary Leave a joined ride
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ride ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rides/{id}/leave [post]
func (h *RideHandler) Leave(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ride, err := h.rideService.Leave(c.Request().Context(), id, currentUser(c).ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "left ride successfully",
		"ride":    ride,
	})
}

// Cancel godoc
// @Summary Cancel a ride (driver only)
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ride ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rides/{id}/cancel [post]
func (h *RideHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ride, err := h.rideService.Cancel(c.Request().Context(), id, currentUser(c).ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "ride cancelled successfully",
		"ride":    ride,
	})
}

// Complete godoc
// @Summary Complete a ride (driver only)
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ride ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rides/{id}/complete [post]
func (h *RideHandler) Complete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ride, err := h.rideService.Complete(c.Request().Context(), id, currentUser(c).ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "ride completed successfully",
		"ride":    ride,
	})
}
