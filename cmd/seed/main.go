package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campool/internal/config"
	"campool/internal/db"
	"campool/internal/model"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Phone    string
	Role     string
}

var seedUsers = []seedUser{
	{Username: "admin", Email: "admin@iiitkottayam.ac.in", Password: "admin123", Phone: "+911000000000", Role: model.RoleAdmin},
	{Username: "asha", Email: "asha23bcs101@iiitkottayam.ac.in", Password: "password1", Phone: "+911000000001", Role: model.RoleUser},
	{Username: "rahul", Email: "rahul23bcs102@iiitkottayam.ac.in", Password: "password2", Phone: "+911000000002", Role: model.RoleUser},
	{Username: "meera", Email: "meera23bcs103@iiitkottayam.ac.in", Password: "password3", Phone: "+911000000003", Role: model.RoleUser},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.EmailVerification{},
		&model.Ride{},
		&model.RideParticipant{},
		&model.Rating{},
		&model.Complaint{},
		&model.SOSAlert{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Username, err)
		}

		user := &model.User{}
		err = gormDB.Where("email = ?", su.Email).First(user).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			user = &model.User{
				Username:     su.Username,
				Email:        su.Email,
				PasswordHash: string(hash),
				PhoneNumber:  su.Phone,
				IsActive:     true,
				Role:         su.Role,
			}
			if err := gormDB.Create(user).Error; err != nil {
				log.Fatalf("Failed to create user %s: %v", su.Username, err)
			}
			log.Printf("Created user %s (%s)", su.Username, su.Role)
		case err != nil:
			log.Fatalf("Failed to look up user %s: %v", su.Username, err)
		default:
			user.PasswordHash = string(hash)
			user.Role = su.Role
			if err := gormDB.Save(user).Error; err != nil {
				log.Fatalf("Failed to update user %s: %v", su.Username, err)
			}
			log.Printf("Updated user %s (%s)", su.Username, su.Role)
		}
		users[su.Username] = user
	}

	// Demo rides for the next few days, skipped when the driver already has
	// an active ride.
	demoRides := []model.Ride{
		{
			DriverID:       users["asha"].ID,
			StartLocation:  "IIIT Kottayam Campus",
			EndLocation:    "Kottayam Railway Station",
			RideDateTime:   time.Now().Add(24 * time.Hour),
			TotalSeats:     3,
			AvailableSeats: 3,
			PricePerSeat:   decimal.NewFromInt(60),
			Tags:           model.StringList{"railway", "morning"},
			Status:         model.RideStatusActive,
		},
		{
			DriverID:       users["rahul"].ID,
			StartLocation:  "IIIT Kottayam Campus",
			EndLocation:    "Cochin International Airport",
			RideDateTime:   time.Now().Add(48 * time.Hour),
			TotalSeats:     4,
			AvailableSeats: 4,
			PricePerSeat:   decimal.NewFromInt(350),
			Tags:           model.StringList{"airport"},
			VehicleInfo:    model.JSONMap{"model": "Maruti Ertiga", "color": "white"},
			Status:         model.RideStatusActive,
		},
	}
	for _, ride := range demoRides {
		var count int64
		if err := gormDB.Model(&model.Ride{}).
			Where("driver_id = ? AND status = ?", ride.DriverID, model.RideStatusActive).
			Count(&count).Error; err != nil {
			log.Fatalf("Failed to count rides: %v", err)
		}
		if count > 0 {
			log.Printf("Skipping ride to %s, driver already has an active ride", ride.EndLocation)
			continue
		}
		if err := gormDB.Create(&ride).Error; err != nil {
			log.Fatalf("Failed to create ride to %s: %v", ride.EndLocation, err)
		}
		log.Printf("Created ride %s -> %s", ride.StartLocation, ride.EndLocation)
	}

	log.Println("Seed completed")
}
