package entity

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`

	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Phone           string     `json:"phone"`
	UserType        UserType   `gorm:"not null;default:customer" json:"user_type"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	IsVerified      bool       `gorm:"default:false" json:"is_verified"`
	ProfileImageURL string     `json:"profile_image_url"`
	LastLogin       *time.Time `json:"last_login"`

	// Driver-only fields. Present on every row, meaningful only for role=driver.
	DriverLicense      string   `json:"driver_license"`
	VehicleType        string   `json:"vehicle_type"`
	VehiclePlate       string   `json:"vehicle_plate"`
	IsAvailable        bool     `gorm:"default:false" json:"is_available"`
	CurrentLocationLat *float64 `json:"current_location_lat"`
	CurrentLocationLng *float64 `json:"current_location_lng"`

	// Customer-only field.
	DefaultAddress string `json:"default_address"`

	// Relations — preload only when needed.
	RestaurantsOwned []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	CustomerOrders   []Order      `gorm:"foreignKey:CustomerID" json:"-"`
	DriverOrders     []Order      `gorm:"foreignKey:DriverID" json:"-"`
	Reviews          []Review     `gorm:"foreignKey:CustomerID" json:"-"`
}
