package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Address     string `gorm:"not null" json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CuisineType string `json:"cuisine_type"`

	// Derived: arithmetic mean of review ratings, one decimal. Never set directly.
	Rating float64 `gorm:"default:0" json:"rating"`

	DeliveryFee           float64 `gorm:"default:0" json:"delivery_fee"`
	MinimumOrder          float64 `gorm:"default:0" json:"minimum_order"`
	EstimatedDeliveryTime int     `gorm:"default:30" json:"estimated_delivery_time"` // minutes
	IsActive              bool    `gorm:"default:true" json:"is_active"`
	ImageURL              string  `json:"image_url"`
	OpeningHours          string  `json:"opening_hours"`

	OwnerID uint `gorm:"not null" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	MenuItems []MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Orders    []Order    `json:"-"`
	Reviews   []Review   `json:"-"`
}
