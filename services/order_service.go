package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository
	UserRepo *repository.UserRepository
	log      logging.Logger
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	userRepo *repository.UserRepository,
	log logging.Logger,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, RestRepo: restRepo, UserRepo: userRepo, log: log}
}

// ----- DTOs -----

type OrderItemIn struct {
	MenuItemID          uint    `json:"menu_item_id" binding:"required"`
	Quantity            int     `json:"quantity" binding:"required,min=1"`
	UnitPrice           float64 `json:"unit_price"`
	TotalPrice          float64 `json:"total_price"`
	SpecialInstructions string  `json:"special_instructions"`
	Customizations      string  `json:"customizations"`
}

type CreateOrderIn struct {
	CustomerID          uint          `json:"customer_id" binding:"required"`
	RestaurantID        uint          `json:"restaurant_id" binding:"required"`
	DeliveryAddress     string        `json:"delivery_address" binding:"required"`
	CustomerPhone       string        `json:"customer_phone"`
	SpecialInstructions string        `json:"special_instructions"`
	Subtotal            float64       `json:"subtotal" binding:"required"`
	DeliveryFee         *float64      `json:"delivery_fee"`
	TaxAmount           float64       `json:"tax_amount"`
	TipAmount           float64       `json:"tip_amount"`
	DiscountAmount      float64       `json:"discount_amount"`
	TotalAmount         float64       `json:"total_amount" binding:"required"`
	PaymentMethod       string        `json:"payment_method"`
	Items               []OrderItemIn `json:"items"`
}

// NewOrderNumber builds the human-facing identifier:
// SD + UTC date + 8 uppercase hex chars of a fresh UUID. Collisions are
// accepted as negligible and not re-checked.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SD%s%s", now.UTC().Format("20060102"), suffix)
}

// Create builds the order and its item snapshots in one transaction.
// Any invalid line aborts the whole order.
func (s *OrderService) Create(in *CreateOrderIn) (*entity.Order, error) {
	customer, err := s.UserRepo.FindByID(in.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid customer")
		}
		return nil, err
	}
	if customer.UserType != entity.UserTypeCustomer {
		return nil, apperr.Validation("invalid customer")
	}

	restaurant, err := s.RestRepo.Get(in.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid restaurant")
		}
		return nil, err
	}

	now := time.Now().UTC()
	estimated := now.Add(time.Duration(restaurant.EstimatedDeliveryTime) * time.Minute)

	deliveryFee := restaurant.DeliveryFee
	if in.DeliveryFee != nil {
		deliveryFee = *in.DeliveryFee
	}

	order := &entity.Order{
		OrderNumber:           NewOrderNumber(now),
		Status:                entity.OrderPending,
		CustomerID:            in.CustomerID,
		RestaurantID:          in.RestaurantID,
		DeliveryAddress:       in.DeliveryAddress,
		CustomerPhone:         in.CustomerPhone,
		SpecialInstructions:   in.SpecialInstructions,
		Subtotal:              in.Subtotal,
		DeliveryFee:           deliveryFee,
		TaxAmount:             in.TaxAmount,
		TipAmount:             in.TipAmount,
		DiscountAmount:        in.DiscountAmount,
		TotalAmount:           in.TotalAmount,
		PaymentMethod:         in.PaymentMethod,
		PaymentStatus:         entity.PaymentPending,
		EstimatedDeliveryTime: &estimated,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, order); err != nil {
			return err
		}
		for _, line := range in.Items {
			item, err := s.Repo.MenuItemExists(tx, line.MenuItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return apperr.Validation("invalid menu item ID: %d", line.MenuItemID)
			}
			oi := entity.OrderItem{
				OrderID:             order.ID,
				MenuItemID:          line.MenuItemID,
				Quantity:            line.Quantity,
				UnitPrice:           line.UnitPrice,
				TotalPrice:          line.TotalPrice,
				SpecialInstructions: line.SpecialInstructions,
				Customizations:      line.Customizations,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created", map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	return order, nil
}

// ----- Queries -----

func (s *OrderService) Get(orderID uint) (*entity.Order, []entity.OrderItem, error) {
	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("order not found")
		}
		return nil, nil, err
	}
	items, err := s.Repo.GetOrderItems(orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *OrderService) List(f repository.OrderFilter) ([]entity.Order, error) {
	return s.Repo.List(f)
}

// ListAvailableForPickup returns unassigned ready_for_pickup orders,
// oldest first so waiting drivers get FIFO fairness.
func (s *OrderService) ListAvailableForPickup() ([]entity.Order, error) {
	return s.Repo.ListAvailableForPickup()
}
