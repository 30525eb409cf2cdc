package main

import (
	"log"
	"net/http"
	"os"

	_ "campool/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"campool/internal/auth"
	"campool/internal/cache"
	"campool/internal/config"
	"campool/internal/db"
	"campool/internal/handler"
	"campool/internal/mail"
	"campool/internal/metrics"
	"campool/internal/model"
	"campool/internal/repository"
	"campool/internal/router"
	"campool/internal/service"
)

// @title Campool API
// @version 1.0
// @description Campus carpooling API with ride sharing, ratings, complaints, SOS alerts, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.SOSAlert{},
			&model.Complaint{},
			&model.Rating{},
			&model.RideParticipant{},
			&model.Ride{},
			&model.EmailVerification{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.EmailVerification{},
		&model.Ride{},
		&model.RideParticipant{},
		&model.Rating{},
		&model.Complaint{},
		&model.SOSAlert{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	mailer := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	verificationRepo := repository.NewEmailVerificationRepository(gormDB)
	rideRepo := repository.NewRideRepository(gormDB)
	participantRepo := repository.NewParticipantRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	complaintRepo := repository.NewComplaintRepository(gormDB)
	sosRepo := repository.NewSOSRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, verificationRepo, jwtService, tokenStore)
	verificationService := service.NewVerificationService(verificationRepo, mailer, cfg.AllowedEmailDomain, appMetrics)
	rideService := service.NewRideService(rideRepo, participantRepo, cacheClient, appMetrics)
	ratingService := service.NewRatingService(ratingRepo, rideRepo, participantRepo, cfg.RatingsRequireCompletedRide)
	complaintService := service.NewComplaintService(complaintRepo, userRepo, rideRepo)
	sosService := service.NewSOSService(sosRepo, rideRepo, userRepo, mailer, cfg.EmergencyEmail, appMetrics)
	adminService := service.NewAdminService(userRepo, rideRepo, participantRepo, ratingRepo, complaintRepo, sosRepo)

	// Register routes
	router.Register(e, cfg, userRepo, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Verification: handler.NewVerificationHandler(verificationService),
		Ride:         handler.NewRideHandler(rideService),
		Rating:       handler.NewRatingHandler(ratingService),
		Complaint:    handler.NewComplaintHandler(complaintService),
		SOS:          handler.NewSOSHandler(sosService),
		Admin:        handler.NewAdminHandler(adminService, complaintService, sosService),
	})

	// Log swagger full path
	var swaggerURL string
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
