package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"campool/internal/errors"
	"campool/internal/handler"
	"campool/internal/model"
	"campool/internal/repository"
)

// LoadUser resolves the JWT claims set by echo-jwt into a database user and
// stores it on the context. Banned users are rejected here, so a ban takes
// effect on the next request regardless of token validity.
func LoadUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token",
					Code:  "INVALID_TOKEN",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token claims",
					Code:  "INVALID_TOKEN",
				})
			}
			userID, ok := claims["user_id"].(float64)
			if !ok || userID <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token claims",
					Code:  "INVALID_TOKEN",
				})
			}

			user, err := userRepo.FindByID(c.Request().Context(), uint(userID))
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
						Error: "user not found",
						Code:  "USER_NOT_FOUND",
					})
				}
				return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
					Error: "failed to load user",
					Code:  "INTERNAL_ERROR",
				})
			}
			if user.IsBanned {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: errors.ErrUserBanned.Error(),
					Code:  "USER_BANNED",
				})
			}

			c.Set(handler.CurrentUserKey, user)
			return next(c)
		}
	}
}

// AdminOnly rejects requests from non-admin users. Must run after LoadUser.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(handler.CurrentUserKey).(*model.User)
		if !ok || user.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin access required",
				Code:  "ADMIN_ONLY",
			})
		}
		return next(c)
	}
}
