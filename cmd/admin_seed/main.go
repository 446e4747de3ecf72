// Package main seeds the admin account and the platform operator account
// that collects fees and pays commissions.
package main

import (
	"log"
	"os"

	"takapay/internal/config"
	"takapay/internal/models"
	"takapay/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")

	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("Failed to close PostgreSQL connection: %v", err)
				}
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	seedAdmin(adminEmail, adminPassword, adminPhone)
	seedPlatformAccount()
}

func seedAdmin(email, password, phone string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		FirstName:    "Platform",
		LastName:     "Admin",
		Email:        email,
		Phone:        phone,
		Password:     string(hashed),
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Println("Admin account created")
}

// seedPlatformAccount creates the operator account and its wallet. Fees are
// credited to this wallet and commissions and welcome bonuses are paid out of
// it, so every deployment needs exactly one.
func seedPlatformAccount() {
	platformEmail := config.GetEnv("PLATFORM_EMAIL", "platform@takapay.internal")

	var existing models.User
	if err := repositories.DB.Where("email = ?", platformEmail).First(&existing).Error; err == nil {
		log.Printf("Platform operator account already exists (user %d)", existing.ID)
		return
	}

	// The operator account can never be logged into.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash platform password:", err)
	}

	operator := models.User{
		FirstName:    "TakaPay",
		LastName:     "Platform",
		Email:        platformEmail,
		Phone:        config.GetEnv("PLATFORM_PHONE", "+8800000000000"),
		Password:     string(hashed),
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&operator).Error; err != nil {
		log.Fatal("Failed to create platform operator:", err)
	}

	// The operator wallet must never hit spend caps. A literal zero would be
	// dropped on insert and replaced by the column defaults, so the uncapped
	// state is stored as -1.
	w := models.Wallet{
		UserID:       operator.ID,
		Currency:     "BDT",
		Status:       models.WalletStatusActive,
		DailyLimit:   models.LimitUnlimited,
		MonthlyLimit: models.LimitUnlimited,
	}
	if err := repositories.DB.Create(&w).Error; err != nil {
		log.Fatal("Failed to create platform wallet:", err)
	}

	operator.WalletID = &w.ID
	if err := repositories.DB.Save(&operator).Error; err != nil {
		log.Fatal("Failed to attach platform wallet:", err)
	}

	log.Printf("Platform operator account created (user %d, wallet %d)", operator.ID, w.ID)
	log.Printf("Set PLATFORM_USER_ID=%d in the server environment", operator.ID)
}
