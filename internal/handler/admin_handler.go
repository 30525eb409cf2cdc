package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"campool/internal/model"
	"campool/internal/repository"
	"campool/internal/service"
)

// AdminHandler handles the moderation dashboard endpoints.
type AdminHandler struct {
	adminService     service.AdminService
	complaintService service.ComplaintService
	sosService       service.SOSService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	adminService service.AdminService,
	complaintService service.ComplaintService,
	sosService service.SOSService,
) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		complaintService: complaintService,
		sosService:       sosService,
	}
}

// UpdateComplaintRequest represents an admin complaint review update.
type UpdateComplaintRequest struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"adminNotes" validate:"omitempty,max=2000"`
}

// ResolveSOSRequest represents an admin alert resolution.
type ResolveSOSRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved false_alarm"`
}

// ListUsers godoc
// @Summary List users with activity counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match username, email, or wallet address"
// @Param status query string false "active or banned"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := repository.UserListFilter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	users, pagination, err := h.adminService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users":      users,
		"pagination": pagination,
	})
}

// ListRides godoc
// @Summary List all rides
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, completed, or cancelled"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/rides [get]
func (h *AdminHandler) ListRides(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	rides, pagination, err := h.adminService.ListRides(
		c.Request().Context(), model.RideStatus(c.QueryParam("status")), page, limit)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"rides":      rides,
		"pagination": pagination,
	})
}

// ToggleBan godoc
// @Summary Toggle a user's ban flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/ban [put]
func (h *AdminHandler) ToggleBan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.adminService.ToggleBan(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}

	message := "user unbanned successfully"
	if user.IsBanned {
		message = "user banned successfully"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": message,
		"user":    user,
	})
}

// Stats godoc
// @Summary Get the dashboard aggregates
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListComplaints godoc
// @Summary List complaints for review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, investigating, resolved, or dismissed"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /complaints [get]
func (h *AdminHandler) ListComplaints(c echo.Context) error {
	complaints, err := h.complaintService.ListForAdmin(
		c.Request().Context(), model.ComplaintStatus(c.QueryParam("status")))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"complaints": complaints})
}

// UpdateComplaint godoc
// @Summary Update a complaint's review status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param request body UpdateComplaintRequest true "New status and notes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /complaints/{id} [put]
func (h *AdminHandler) UpdateComplaint(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.complaintService.UpdateStatus(
		c.Request().Context(), id, model.ComplaintStatus(req.Status), req.AdminNotes)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "complaint updated successfully",
		"complaint": complaint,
	})
}

// ListSOSAlerts godoc
// @Summary List SOS alerts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, resolved, or false_alarm"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /sos [get]
func (h *AdminHandler) ListSOSAlerts(c echo.Context) error {
	alerts, err := h.sosService.ListForAdmin(
		c.Request().Context(), model.SOSStatus(c.QueryParam("status")))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"alerts": alerts})
}

// ResolveSOS godoc
// @Summary Close an SOS alert
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Alert ID"
// @Param request body ResolveSOSRequest true "Resolution"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sos/{id} [put]
func (h *AdminHandler) ResolveSOS(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ResolveSOSRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	alert, err := h.sosService.Resolve(c.Request().Context(), id, model.SOSStatus(req.Status))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "alert updated successfully",
		"alert":   alert,
	})
}
