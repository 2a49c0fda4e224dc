package entity

import (
	"gorm.io/gorm"
)

// Review: one per delivered order. Customer/restaurant/driver references are
// copied from the order at creation time.
type Review struct {
	gorm.Model
	Rating         int    `gorm:"not null" json:"rating"` // 1-5
	Comment        string `json:"comment"`
	FoodRating     *int   `json:"food_rating"`     // 1-5
	DeliveryRating *int   `json:"delivery_rating"` // 1-5

	CustomerID   uint       `gorm:"not null" json:"customer_id"`
	Customer     User       `gorm:"foreignKey:CustomerID" json:"-"`
	RestaurantID uint       `gorm:"not null" json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`
	OrderID      uint       `gorm:"not null" json:"order_id"`
	Order        Order      `json:"-"`
	DriverID     *uint      `json:"driver_id"`
	Driver       *User      `gorm:"foreignKey:DriverID" json:"-"`
}
