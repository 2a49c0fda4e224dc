package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
)

// TrackingService derives display projections from order state. It is
// read-only: given an order, the timeline is a pure function.
type TrackingService struct {
	OrderRepo *repository.OrderRepository
	RestRepo  *repository.RestaurantRepository
	UserRepo  *repository.UserRepository
	log       logging.Logger
}

func NewTrackingService(or *repository.OrderRepository, rr *repository.RestaurantRepository, ur *repository.UserRepository, log logging.Logger) *TrackingService {
	return &TrackingService{OrderRepo: or, RestRepo: rr, UserRepo: ur, log: log}
}

// fallbackETAMinutes is used when the order carries no estimate.
const fallbackETAMinutes = 30

type TimelineEvent struct {
	Status      string    `json:"status"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Completed   bool      `json:"completed"`
	Estimated   bool      `json:"estimated,omitempty"`
}

type DriverInfo struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Rating float64 `json:"rating"`
}

type RestaurantInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type TrackingInfo struct {
	OrderID               uint            `json:"order_id"`
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	Restaurant            RestaurantInfo  `json:"restaurant"`
	DeliveryAddress       string          `json:"delivery_address"`
	TotalAmount           float64         `json:"total_amount"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time"`
	DriverInfo            *DriverInfo     `json:"driver_info"`
	Timeline              []TimelineEvent `json:"timeline"`
}

// milestone offsets are fixed display heuristics, a canonical expected
// cadence rather than measured durations.
var milestones = []struct {
	displayStatus string
	title         string
	description   string
	offsetMinutes int
	reached       entity.OrderStatus
}{
	{"placed", "Order Placed", "Your order has been received and is being processed", 0, entity.OrderPending},
	{"confirmed", "Order Confirmed", "Restaurant has confirmed your order", 2, entity.OrderConfirmed},
	{"preparing", "Preparing Your Order", "The restaurant is preparing your delicious meal", 5, entity.OrderPreparing},
	{"ready", "Ready for Pickup", "Your order is ready and waiting for the driver", 15, entity.OrderReadyForPickup},
	{"picked_up", "Out for Delivery", "Your order is on its way to you", 20, entity.OrderOutForDelivery},
}

// ProjectTimeline synthesizes the milestone sequence for an order. Each
// milestone is completed only when the current status is at or beyond it;
// delivery appears as an estimate until the order is actually delivered.
func ProjectTimeline(order *entity.Order, etaMinutes int) []TimelineEvent {
	if etaMinutes <= 0 {
		etaMinutes = fallbackETAMinutes
	}
	base := order.CreatedAt

	timeline := []TimelineEvent{}
	for _, m := range milestones {
		if m.reached != entity.OrderPending && !order.Status.AtLeast(m.reached) {
			continue
		}
		timeline = append(timeline, TimelineEvent{
			Status:      m.displayStatus,
			Title:       m.title,
			Description: m.description,
			Timestamp:   base.Add(time.Duration(m.offsetMinutes) * time.Minute),
			Completed:   true,
		})
	}

	deliveryTime := base.Add(time.Duration(etaMinutes) * time.Minute)
	if order.Status == entity.OrderDelivered {
		timeline = append(timeline, TimelineEvent{
			Status:      "delivered",
			Title:       "Delivered",
			Description: "Your order has been delivered. Enjoy your meal!",
			Timestamp:   deliveryTime,
			Completed:   true,
		})
	} else {
		timeline = append(timeline, TimelineEvent{
			Status:      "delivered",
			Title:       "Estimated Delivery",
			Description: "Your order will be delivered around this time",
			Timestamp:   deliveryTime,
			Completed:   false,
			Estimated:   true,
		})
	}
	return timeline
}

// Track assembles the full tracking view for one order.
func (s *TrackingService) Track(orderID uint) (*TrackingInfo, error) {
	order, err := s.OrderRepo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	info := &TrackingInfo{
		OrderID:               order.ID,
		Status:                string(order.Status),
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
		DeliveryAddress:       order.DeliveryAddress,
		TotalAmount:           order.TotalAmount,
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
		Restaurant:            RestaurantInfo{Name: "Unknown Restaurant"},
	}

	if rest, err := s.RestRepo.Get(order.RestaurantID); err == nil {
		info.Restaurant = RestaurantInfo{Name: rest.Name, Phone: rest.Phone, Address: rest.Address}
	}

	if order.DriverID != nil {
		if driver, err := s.UserRepo.FindByID(*order.DriverID); err == nil {
			info.DriverInfo = &DriverInfo{
				Name:  driver.FirstName + " " + driver.LastName,
				Phone: driver.Phone,
				// Placeholder until driver ratings are aggregated.
				Rating: 4.5,
			}
		}
	}

	etaMinutes := 0
	if order.EstimatedDeliveryTime != nil {
		etaMinutes = int(order.EstimatedDeliveryTime.Sub(order.CreatedAt) / time.Minute)
	}
	info.Timeline = ProjectTimeline(order, etaMinutes)
	return info, nil
}

// ----- Role-scoped tracking lists -----

var activeStatuses = []entity.OrderStatus{
	entity.OrderPending, entity.OrderConfirmed, entity.OrderPreparing,
	entity.OrderReadyForPickup, entity.OrderOutForDelivery,
}

type ActiveOrderView struct {
	ID                    uint       `json:"id"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	RestaurantName        string     `json:"restaurant_name"`
	TotalAmount           float64    `json:"total_amount"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
	DeliveryAddress       string     `json:"delivery_address"`
}

// ActiveForCustomer lists the customer's undelivered, uncancelled orders.
func (s *TrackingService) ActiveForCustomer(customerID uint) ([]ActiveOrderView, error) {
	orders, err := s.OrderRepo.ListByCustomerAndStatuses(customerID, activeStatuses)
	if err != nil {
		return nil, err
	}

	out := make([]ActiveOrderView, 0, len(orders))
	for _, o := range orders {
		name := "Unknown Restaurant"
		if rest, err := s.RestRepo.Get(o.RestaurantID); err == nil {
			name = rest.Name
		}
		out = append(out, ActiveOrderView{
			ID:                    o.ID,
			Status:                string(o.Status),
			CreatedAt:             o.CreatedAt,
			UpdatedAt:             o.UpdatedAt,
			RestaurantName:        name,
			TotalAmount:           o.TotalAmount,
			EstimatedDeliveryTime: o.EstimatedDeliveryTime,
			DeliveryAddress:       o.DeliveryAddress,
		})
	}
	return out, nil
}

type PendingOrderItemView struct {
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	Customizations string  `json:"customizations"`
}

type PendingOrderView struct {
	ID                  uint                   `json:"id"`
	Status              string                 `json:"status"`
	CreatedAt           time.Time              `json:"created_at"`
	CustomerName        string                 `json:"customer_name"`
	CustomerPhone       string                 `json:"customer_phone"`
	TotalAmount         float64                `json:"total_amount"`
	DeliveryAddress     string                 `json:"delivery_address"`
	SpecialInstructions string                 `json:"special_instructions"`
	Items               []PendingOrderItemView `json:"items"`
}

// PendingForRestaurant lists orders that still need restaurant attention,
// oldest first.
func (s *TrackingService) PendingForRestaurant(restaurantID uint) ([]PendingOrderView, error) {
	statuses := []entity.OrderStatus{entity.OrderPending, entity.OrderConfirmed, entity.OrderPreparing}
	orders, err := s.OrderRepo.ListByRestaurantAndStatuses(restaurantID, statuses)
	if err != nil {
		return nil, err
	}

	out := make([]PendingOrderView, 0, len(orders))
	for _, o := range orders {
		view := PendingOrderView{
			ID:                  o.ID,
			Status:              string(o.Status),
			CreatedAt:           o.CreatedAt,
			CustomerName:        "Unknown Customer",
			TotalAmount:         o.TotalAmount,
			DeliveryAddress:     o.DeliveryAddress,
			SpecialInstructions: o.SpecialInstructions,
			Items:               []PendingOrderItemView{},
		}
		if customer, err := s.UserRepo.FindByID(o.CustomerID); err == nil {
			view.CustomerName = customer.FirstName + " " + customer.LastName
			view.CustomerPhone = customer.Phone
		}

		items, err := s.OrderRepo.GetOrderItems(o.ID)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			name := ""
			if mi, err := s.RestRepo.GetMenuItem(it.MenuItemID); err == nil {
				name = mi.Name
			}
			view.Items = append(view.Items, PendingOrderItemView{
				Name:           name,
				Quantity:       it.Quantity,
				Price:          it.UnitPrice,
				Customizations: it.Customizations,
			})
		}
		out = append(out, view)
	}
	return out, nil
}

type AssignedOrderView struct {
	ID                  uint           `json:"id"`
	Status              string         `json:"status"`
	CreatedAt           time.Time      `json:"created_at"`
	Restaurant          RestaurantInfo `json:"restaurant"`
	CustomerName        string         `json:"customer_name"`
	CustomerPhone       string         `json:"customer_phone"`
	DeliveryAddress     string         `json:"delivery_address"`
	TotalAmount         float64        `json:"total_amount"`
	SpecialInstructions string         `json:"special_instructions"`
}

// AssignedForDriver lists the driver's in-flight orders, oldest first.
func (s *TrackingService) AssignedForDriver(driverID uint) ([]AssignedOrderView, error) {
	statuses := []entity.OrderStatus{entity.OrderReadyForPickup, entity.OrderOutForDelivery}
	orders, err := s.OrderRepo.ListByDriverAndStatuses(driverID, statuses)
	if err != nil {
		return nil, err
	}

	out := make([]AssignedOrderView, 0, len(orders))
	for _, o := range orders {
		view := AssignedOrderView{
			ID:                  o.ID,
			Status:              string(o.Status),
			CreatedAt:           o.CreatedAt,
			Restaurant:          RestaurantInfo{Name: "Unknown Restaurant"},
			CustomerName:        "Unknown Customer",
			DeliveryAddress:     o.DeliveryAddress,
			TotalAmount:         o.TotalAmount,
			SpecialInstructions: o.SpecialInstructions,
		}
		if rest, err := s.RestRepo.Get(o.RestaurantID); err == nil {
			view.Restaurant = RestaurantInfo{Name: rest.Name, Phone: rest.Phone, Address: rest.Address}
		}
		if customer, err := s.UserRepo.FindByID(o.CustomerID); err == nil {
			view.CustomerName = customer.FirstName + " " + customer.LastName
			view.CustomerPhone = customer.Phone
		}
		out = append(out, view)
	}
	return out, nil
}
