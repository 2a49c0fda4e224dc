package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *OrderRepository) FindByPaymentIntent(intentID string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("payment_transaction_id = ?", intentID).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Save(tx *gorm.DB, o *entity.Order) error {
	return tx.Save(o).Error
}

// OrderFilter is a conjunctive filter; zero values mean "any".
type OrderFilter struct {
	CustomerID   uint
	RestaurantID uint
	DriverID     uint
	Status       entity.OrderStatus
}

func (r *OrderRepository) List(f OrderFilter) ([]entity.Order, error) {
	q := r.DB.Model(&entity.Order{})
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.DriverID != 0 {
		q = q.Where("driver_id = ?", f.DriverID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []entity.Order
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListAvailableForPickup: ready_for_pickup, no driver, oldest first.
func (r *OrderRepository) ListAvailableForPickup() ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.
		Where("status = ? AND driver_id IS NULL", entity.OrderReadyForPickup).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListByCustomerAndStatuses(customerID uint, statuses []entity.OrderStatus) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.
		Where("customer_id = ? AND status IN ?", customerID, statuses).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListByRestaurantAndStatuses(restaurantID uint, statuses []entity.OrderStatus) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.
		Where("restaurant_id = ? AND status IN ?", restaurantID, statuses).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListByDriverAndStatuses(driverID uint, statuses []entity.OrderStatus) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.
		Where("driver_id = ? AND status IN ?", driverID, statuses).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// ---------------- Reviews ----------------

func (r *OrderRepository) ReviewExists(orderID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Review{}).Where("order_id = ?", orderID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *OrderRepository) CreateReview(tx *gorm.DB, rev *entity.Review) error {
	return tx.Create(rev).Error
}

// RestaurantRatings returns the overall rating of every review for the
// restaurant, read inside the caller's transaction so the recompute sees
// its own insert.
func (r *OrderRepository) RestaurantRatings(tx *gorm.DB, restaurantID uint) ([]int, error) {
	var ratings []int
	err := tx.Model(&entity.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

// ---------------- Helpers ----------------

// MenuItemExists reads on the caller's handle so order creation checks
// lines inside its own transaction.
func (r *OrderRepository) MenuItemExists(tx *gorm.DB, id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := tx.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
