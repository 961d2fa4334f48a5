package main

import (
	"context"
	"log"
	"time"

	"donorlink/internal/models"
	"donorlink/internal/repository"
	"donorlink/pkg/auth"
	"donorlink/pkg/config"
	"donorlink/pkg/logger"
	"donorlink/pkg/postgres"

	"github.com/google/uuid"
)

// Seeds demo accounts and donation history for local development:
// an admin, a first-time donor, and a repeat donor who donated recently
// (so the chat personalization paths can be exercised end to end).
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	donationRepo := repository.NewDonationRepository(db, appLogger)

	password, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	users := []*models.User{
		{
			ID:        uuid.New(),
			Username:  "admin",
			Email:     "admin@donorlink.example",
			Password:  password,
			Role:      models.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New(),
			Username:  "firsttimer",
			Email:     "firsttimer@donorlink.example",
			Password:  password,
			Role:      models.RoleDonor,
			BloodType: "A+",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New(),
			Username:  "regular",
			Email:     "regular@donorlink.example",
			Password:  password,
			Role:      models.RoleDonor,
			BloodType: "O-",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, u := range users {
		if existing, _ := userRepo.GetByEmail(ctx, u.Email); existing != nil {
			log.Printf("User %s already exists, skipping", u.Email)
			continue
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
		log.Printf("Created user %s (%s)", u.Email, u.Role)
	}

	// Donation history for the repeat donor: three donations, the most
	// recent 10 days ago so they are still inside the waiting period.
	regular, err := userRepo.GetByEmail(ctx, "regular@donorlink.example")
	if err != nil {
		log.Fatalf("Failed to load regular donor: %v", err)
	}

	for _, daysAgo := range []int{220, 130, 10} {
		donation := &models.Donation{
			ID:           uuid.New(),
			DonorID:      regular.ID,
			BloodBank:    "Central City Blood Bank",
			Units:        1,
			DonationDate: now.AddDate(0, 0, -daysAgo),
			CreatedAt:    now,
		}
		if err := donationRepo.Create(ctx, donation); err != nil {
			log.Fatalf("Failed to create donation: %v", err)
		}
	}
	log.Printf("Seeded 3 donations for %s", regular.Email)
}
