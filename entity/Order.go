package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	// Human-facing identifier, SD<YYYYMMDD><8 hex>.
	OrderNumber string      `gorm:"uniqueIndex;not null;size:20" json:"order_number"`
	Status      OrderStatus `gorm:"not null;default:pending" json:"status"`

	// Customer
	CustomerID          uint   `gorm:"not null" json:"customer_id"`
	Customer            User   `gorm:"foreignKey:CustomerID" json:"-"`
	DeliveryAddress     string `gorm:"not null" json:"delivery_address"`
	CustomerPhone       string `json:"customer_phone"`
	SpecialInstructions string `json:"special_instructions"`

	// Restaurant
	RestaurantID uint       `gorm:"not null" json:"restaurant_id"`
	Restaurant   Restaurant `json:"-"`

	// Driver (optional until assignment)
	DriverID *uint `json:"driver_id"`
	Driver   *User `gorm:"foreignKey:DriverID" json:"-"`

	// Pricing — all stored independently, never derived at read time.
	Subtotal       float64 `gorm:"not null" json:"subtotal"`
	DeliveryFee    float64 `gorm:"default:0" json:"delivery_fee"`
	TaxAmount      float64 `gorm:"default:0" json:"tax_amount"`
	TipAmount      float64 `gorm:"default:0" json:"tip_amount"`
	DiscountAmount float64 `gorm:"default:0" json:"discount_amount"`
	TotalAmount    float64 `gorm:"not null" json:"total_amount"`

	// Timing
	ConfirmedAt           *time.Time `json:"confirmed_at"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
	DeliveredAt           *time.Time `json:"delivered_at"`

	// Payment
	PaymentMethod        string        `json:"payment_method"`
	PaymentStatus        PaymentStatus `gorm:"default:pending" json:"payment_status"`
	PaymentTransactionID string        `json:"payment_transaction_id"`

	OrderItems []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reviews    []Review    `json:"-"`
}
