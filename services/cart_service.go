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

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	RestRepo *repository.RestaurantRepository
	log      logging.Logger
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, rr *repository.RestaurantRepository, log logging.Logger) *CartService {
	return &CartService{DB: db, CartRepo: cr, RestRepo: rr, log: log}
}

type AddToCartIn struct {
	MenuItemID     uint   `json:"menu_item_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	Customizations string `json:"customizations"`
}

type CartLineView struct {
	ID             uint    `json:"id"`
	MenuItemID     uint    `json:"menu_item_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	Customizations string  `json:"customizations"`
	ItemTotal      float64 `json:"item_total"`
	ImageURL       string  `json:"image_url"`
}

type CartRestaurantView struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	CuisineType  string  `json:"cuisine_type"`
	DeliveryFee  float64 `json:"delivery_fee"`
	MinimumOrder float64 `json:"minimum_order"`
}

type CartView struct {
	ID         uint                `json:"id,omitempty"`
	Items      []CartLineView      `json:"items"`
	TotalItems int                 `json:"total_items"`
	Subtotal   float64             `json:"subtotal"`
	Restaurant *CartRestaurantView `json:"restaurant"`
	UpdatedAt  string              `json:"updated_at,omitempty"`
}

// Get never errors on an absent cart: the empty shape is a valid cart.
func (s *CartService) Get(userID uint) (*CartView, error) {
	cart, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartView{Items: []CartLineView{}, TotalItems: 0, Subtotal: 0.0, Restaurant: nil}, nil
	}

	view := &CartView{ID: cart.ID, Items: []CartLineView{}, UpdatedAt: cart.UpdatedAt.UTC().Format(time.RFC3339)}
	for _, line := range cart.Items {
		// Line totals come from the price locked in at add time, never the
		// live menu price.
		itemTotal := line.Price * float64(line.Quantity)
		view.Items = append(view.Items, CartLineView{
			ID:             line.ID,
			MenuItemID:     line.MenuItemID,
			Name:           line.MenuItem.Name,
			Description:    line.MenuItem.Description,
			Price:          line.Price,
			Quantity:       line.Quantity,
			Customizations: line.Customizations,
			ItemTotal:      itemTotal,
			ImageURL:       line.MenuItem.ImageURL,
		})
		view.TotalItems += line.Quantity
		view.Subtotal += itemTotal
	}

	if cart.Restaurant.ID != 0 {
		view.Restaurant = &CartRestaurantView{
			ID:           cart.Restaurant.ID,
			Name:         cart.Restaurant.Name,
			Address:      cart.Restaurant.Address,
			Phone:        cart.Restaurant.Phone,
			CuisineType:  cart.Restaurant.CuisineType,
			DeliveryFee:  cart.Restaurant.DeliveryFee,
			MinimumOrder: cart.Restaurant.MinimumOrder,
		}
	}
	return view, nil
}

// Add puts quantity of a menu item in the user's cart. A cart bound to a
// different restaurant is evicted and rebound (cart affinity rule).
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Quantity <= 0 {
		return apperr.Validation("quantity must be greater than 0")
	}

	// Availability of the menu item is intentionally not checked here,
	// matching the established checkout flow. See DESIGN.md.
	item, err := s.RestRepo.GetMenuItem(in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("menu item not found")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetCart(tx, userID)
		if err != nil {
			return err
		}
		switch {
		case cart == nil:
			cart, err = s.CartRepo.CreateCart(tx, userID, item.RestaurantID)
			if err != nil {
				return err
			}
		case cart.RestaurantID != item.RestaurantID:
			if err := s.CartRepo.Rebind(tx, cart.ID, item.RestaurantID); err != nil {
				return err
			}
		}

		line := &entity.CartItem{
			MenuItemID:     item.ID,
			Quantity:       in.Quantity,
			Price:          item.Price,
			Customizations: in.Customizations,
		}
		return s.CartRepo.UpsertItem(tx, cart.ID, line)
	})
}

// Clear drops the cart and its lines. Clearing an absent cart is a no-op.
func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, userID)
	})
}

// Count is the badge counter: any failure collapses to 0 rather than an
// error so the UI always renders.
func (s *CartService) Count(userID uint) int {
	if userID == 0 {
		return 0
	}
	total, err := s.CartRepo.SumQuantities(userID)
	if err != nil {
		s.log.Warn("cart count failed", map[string]any{"user_id": userID, "error": err.Error()})
		return 0
	}
	return total
}
