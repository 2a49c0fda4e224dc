package entity

import "fmt"

// OrderStatus is the order lifecycle state. The zero rank is pending;
// cancelled sits outside the delivery progression.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReadyForPickup OrderStatus = "ready_for_pickup"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

var orderStatusRank = map[OrderStatus]int{
	OrderPending:        0,
	OrderConfirmed:      1,
	OrderPreparing:      2,
	OrderReadyForPickup: 3,
	OrderOutForDelivery: 4,
	OrderDelivered:      5,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReadyForPickup,
		OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("invalid order status: %q", s)
}

func (s OrderStatus) String() string { return string(s) }

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// AtLeast reports whether s has reached other in the canonical delivery
// progression. Cancelled is never "at" anything.
func (s OrderStatus) AtLeast(other OrderStatus) bool {
	sr, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	or, ok := orderStatusRank[other]
	if !ok {
		return false
	}
	return sr >= or
}
