package entity

import (
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `json:"cart_id"`
	Cart   Cart `json:"-"`

	MenuItemID uint     `json:"menu_item_id"`
	MenuItem   MenuItem `json:"-"`

	Quantity int `json:"quantity"`

	// Price is copied from the menu item at add time and never refreshed.
	Price float64 `json:"price"`

	// Customizations is part of the merge identity: same item + same
	// customizations increments quantity, anything else is a new line.
	Customizations string `json:"customizations"`
}
