package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
)

// ----- Status transitions -----

type UpdateStatusIn struct {
	Status   string  `json:"status" binding:"required"`
	DriverID *uint   `json:"driver_id"`
	Notes    *string `json:"notes"`
}

// UpdateStatus moves the order to a new lifecycle state. Delivered and
// cancelled orders are final and reject further changes. Entering
// confirmed/delivered stamps the matching timestamp. A supplied driver id
// is applied only when it resolves to a driver account; anything else is
// ignored without error. Notes overwrite special_instructions.
func (s *OrderService) UpdateStatus(orderID uint, in *UpdateStatusIn) (*entity.Order, error) {
	status, err := entity.ParseOrderStatus(in.Status)
	if err != nil {
		return nil, apperr.Validation("invalid status: %s", in.Status)
	}

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	if order.Status.Terminal() {
		return nil, apperr.Validation("order is %s and cannot change status", order.Status)
	}

	now := time.Now().UTC()
	order.Status = status
	switch status {
	case entity.OrderConfirmed:
		order.ConfirmedAt = &now
	case entity.OrderDelivered:
		order.DeliveredAt = &now
	}

	if in.DriverID != nil {
		driver, err := s.UserRepo.FindByID(*in.DriverID)
		if err == nil && driver.UserType == entity.UserTypeDriver {
			order.DriverID = in.DriverID
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// A non-driver id is silently dropped, not an error.
	}

	if in.Notes != nil {
		order.SpecialInstructions = *in.Notes
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order status updated", map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return order, nil
}

// AssignDriver records the driver on the order. When the order is sitting
// at ready_for_pickup the assignment implies pickup-in-progress and the
// status auto-advances to out_for_delivery.
func (s *OrderService) AssignDriver(orderID, driverID uint) (*entity.Order, error) {
	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	driver, err := s.UserRepo.FindByID(driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid driver")
		}
		return nil, err
	}
	if driver.UserType != entity.UserTypeDriver {
		return nil, apperr.Validation("invalid driver")
	}

	order.DriverID = &driverID
	if order.Status == entity.OrderReadyForPickup {
		order.Status = entity.OrderOutForDelivery
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("driver assigned", map[string]any{
		"order_id":  order.ID,
		"driver_id": driverID,
		"status":    order.Status,
	})
	return order, nil
}

// ----- Reviews -----

type AddReviewIn struct {
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Comment        string `json:"comment"`
	FoodRating     *int   `json:"food_rating" binding:"omitempty,min=1,max=5"`
	DeliveryRating *int   `json:"delivery_rating" binding:"omitempty,min=1,max=5"`
}

// AddReview closes the loop on a delivered order: one review per order,
// then the restaurant rating is recomputed as the mean of all its reviews,
// rounded to one decimal. Review insert and rating write share one
// transaction.
func (s *OrderService) AddReview(orderID uint, in *AddReviewIn) (*entity.Review, error) {
	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	if order.Status != entity.OrderDelivered {
		return nil, apperr.Validation("can only review delivered orders")
	}

	exists, err := s.Repo.ReviewExists(orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("order already reviewed")
	}

	review := &entity.Review{
		Rating:         in.Rating,
		Comment:        in.Comment,
		FoodRating:     in.FoodRating,
		DeliveryRating: in.DeliveryRating,
		CustomerID:     order.CustomerID,
		RestaurantID:   order.RestaurantID,
		OrderID:        order.ID,
		DriverID:       order.DriverID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateReview(tx, review); err != nil {
			return err
		}
		ratings, err := s.Repo.RestaurantRatings(tx, order.RestaurantID)
		if err != nil {
			return err
		}
		if len(ratings) == 0 {
			return nil
		}
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
		return s.RestRepo.UpdateRating(tx, order.RestaurantID, avg)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("review added", map[string]any{
		"order_id":      orderID,
		"restaurant_id": order.RestaurantID,
		"rating":        in.Rating,
	})
	return review, nil
}
