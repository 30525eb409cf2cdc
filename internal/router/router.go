package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"campool/internal/config"
	"campool/internal/handler"
	"campool/internal/repository"
)

// Handlers bundles everything Register wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Verification *handler.VerificationHandler
	Ride         *handler.RideHandler
	Rating       *handler.RatingHandler
	Complaint    *handler.ComplaintHandler
	SOS          *handler.SOSHandler
	Admin        *handler.AdminHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, userRepo repository.UserRepository, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/check-email", h.Auth.CheckEmail)
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	api.POST("/email-verification/send-otp", h.Verification.SendOTP)
	api.POST("/email-verification/verify-otp", h.Verification.VerifyOTP)
	api.POST("/email-verification/resend-otp", h.Verification.ResendOTP)
	api.GET("/email-verification/check", h.Verification.CheckStatus)

	api.GET("/rides/search", h.Ride.Search)
	api.GET("/rides/:id", h.Ride.Get)
	api.GET("/ratings/user/:userId", h.Rating.ListForUser)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), LoadUser(userRepo))

	secured.GET("/me", h.Auth.Me)
	secured.PUT("/me", h.Auth.UpdateProfile)

	secured.POST("/rides", h.Ride.Create)
	secured.GET("/rides/user", h.Ride.UserRides)
	secured.POST("/rides/:id/join", h.Ride.Join)
	secured.POST("/rides/:id/leave", h.Ride.Leave)
	secured.POST("/rides/:id/cancel", h.Ride.Cancel)
	secured.POST("/rides/:id/complete", h.Ride.Complete)

	secured.POST("/ratings", h.Rating.Submit)
	secured.GET("/ratings/can-rate", h.Rating.CanRate)

	secured.POST("/complaints", h.Complaint.Submit)
	secured.GET("/complaints/user", h.Complaint.MyComplaints)
	secured.GET("/complaints", h.Admin.ListComplaints, AdminOnly)
	secured.PUT("/complaints/:id", h.Admin.UpdateComplaint, AdminOnly)

	secured.POST("/sos", h.SOS.Trigger)
	secured.GET("/sos", h.Admin.ListSOSAlerts, AdminOnly)
	secured.PUT("/sos/:id", h.Admin.ResolveSOS, AdminOnly)

	// Admin routes
	admin := secured.Group("/admin", AdminOnly)
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/:id/ban", h.Admin.ToggleBan)
	admin.GET("/rides", h.Admin.ListRides)
	admin.GET("/stats", h.Admin.Stats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
