package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "campool/internal/errors"
	"campool/internal/model"
	"campool/internal/service"
)

// RatingHandler handles peer rating endpoints.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRatingRequest represents a rating submission.
type SubmitRatingRequest struct {
	RateeID uint   `json:"rateeId" validate:"required"`
	RideID  uint   `json:"rideId" validate:"required"`
	// Stars has no required tag: zero stars is a valid submission.
	Stars   int    `json:"stars" validate:"min=0,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// Submit godoc
// @Summary Rate another user for a ride
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRatingRequest true "Rating"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.ratingService.Submit(c.Request().Context(), currentUser(c).ID, service.SubmitRatingInput{
		RateeID: req.RateeID,
		RideID:  req.RideID,
		Stars:   req.Stars,
		Comment: req.Comment,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "rating submitted successfully",
		"rating":  rating,
	})
}

// RatingView is a rating row with the rater reduced to their public profile.
// The listing endpoint is unauthenticated, so the full user record stays out
// of the payload.
type RatingView struct {
	model.Rating
	Rater *model.PublicProfile `json:"rater,omitempty"`
}

// ListForUser godoc
// @Summary List ratings a user has received
// @Tags ratings
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /ratings/user/{userId} [get]
func (h *RatingHandler) ListForUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	ratings, stats, err := h.ratingService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return mapError(err)
	}

	views := make([]RatingView, 0, len(ratings))
	for i := range ratings {
		view := RatingView{Rating: ratings[i]}
		if ratings[i].Rater != nil {
			profile := ratings[i].Rater.Public()
			view.Rater = &profile
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ratingsReceived": views,
		"statistics":      stats,
	})
}

// CanRate godoc
// @Summary Check whether a rating would be accepted
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param rateeId query int true "User to rate"
// @Param rideId query int true "Ride"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ratings/can-rate [get]
func (h *RatingHandler) CanRate(c echo.Context) error {
	rateeID, err := strconv.ParseUint(c.QueryParam("rateeId"), 10, 32)
	if err != nil || rateeID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "rateeId query parameter is required",
			Code:  "INVALID_ID",
		})
	}
	rideID, err := strconv.ParseUint(c.QueryParam("rideId"), 10, 32)
	if err != nil || rideID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "rideId query parameter is required",
			Code:  "INVALID_ID",
		})
	}

	canRate, reason, err := h.ratingService.CanRate(c.Request().Context(), currentUser(c).ID, uint(rateeID), uint(rideID))
	if err != nil {
		return mapError(err)
	}

	resp := map[string]interface{}{"canRate": canRate}
	if reason != "" {
		resp["reason"] = reason
	}
	return c.JSON(http.StatusOK, resp)
}
