package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}

func (r *UserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *UserRepository) UpdatePassword(id uint, hash string) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Update("password", hash).Error
}

// ProfilePatch enumerates exactly the mutable profile fields. Nil means
// leave untouched.
type ProfilePatch struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	ProfileImageURL *string
	DefaultAddress  *string

	DriverLicense      *string
	VehicleType        *string
	VehiclePlate       *string
	IsAvailable        *bool
	CurrentLocationLat *float64
	CurrentLocationLng *float64
}

func (r *UserRepository) UpdateProfile(id uint, p *ProfilePatch) error {
	updates := map[string]any{}
	if p.FirstName != nil {
		updates["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		updates["last_name"] = *p.LastName
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.ProfileImageURL != nil {
		updates["profile_image_url"] = *p.ProfileImageURL
	}
	if p.DefaultAddress != nil {
		updates["default_address"] = *p.DefaultAddress
	}
	if p.DriverLicense != nil {
		updates["driver_license"] = *p.DriverLicense
	}
	if p.VehicleType != nil {
		updates["vehicle_type"] = *p.VehicleType
	}
	if p.VehiclePlate != nil {
		updates["vehicle_plate"] = *p.VehiclePlate
	}
	if p.IsAvailable != nil {
		updates["is_available"] = *p.IsAvailable
	}
	if p.CurrentLocationLat != nil {
		updates["current_location_lat"] = *p.CurrentLocationLat
	}
	if p.CurrentLocationLng != nil {
		updates["current_location_lng"] = *p.CurrentLocationLng
	}
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}
