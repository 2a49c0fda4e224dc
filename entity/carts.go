package entity

import (
	"gorm.io/gorm"
)

// Cart is the per-customer staging area. At most one per user, always bound
// to a single restaurant — adding from another restaurant evicts the items
// and rebinds.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `json:"-"`

	RestaurantID uint       `json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
