package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
)

// SeedAdmin creates the first admin account when ADMIN_EMAIL/ADMIN_PASSWORD
// are set and no such user exists yet.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username:   cfg.AdminEmail,
		Email:      cfg.AdminEmail,
		Password:   string(hash),
		FirstName:  "Admin",
		LastName:   "Seed",
		UserType:   entity.UserTypeAdmin,
		IsActive:   true,
		IsVerified: true,
	}
	return db.Create(&admin).Error
}
