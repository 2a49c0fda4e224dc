package entity

import (
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot taken at order creation. Later menu or
// cart mutations never touch it.
type OrderItem struct {
	gorm.Model
	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`

	SpecialInstructions string `json:"special_instructions"`
	Customizations      string `json:"customizations"`

	OrderID uint  `gorm:"not null" json:"order_id"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem `json:"-"`
}
