package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`

	IsAvailable  bool `gorm:"default:true" json:"is_available"`
	IsVegetarian bool `gorm:"default:false" json:"is_vegetarian"`
	IsVegan      bool `gorm:"default:false" json:"is_vegan"`
	IsGlutenFree bool `gorm:"default:false" json:"is_gluten_free"`

	Calories        *int   `json:"calories,omitempty"`
	PreparationTime int    `gorm:"default:15" json:"preparation_time"` // minutes
	Ingredients     string `json:"ingredients"`
	Allergens       string `json:"allergens"`

	RestaurantID uint       `gorm:"not null" json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`

	OrderItems []OrderItem `json:"-"`
}
