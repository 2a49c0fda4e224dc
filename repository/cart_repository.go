package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the user's cart with lines preloaded, or nil
// (not an error) when none exists.
func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Restaurant").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCart reads on the caller's handle; Add resolves affinity inside its
// transaction.
func (r *CartRepository) GetCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) CreateCart(tx *gorm.DB, userID, restaurantID uint) (*entity.Cart, error) {
	c := entity.Cart{UserID: userID, RestaurantID: restaurantID}
	if err := tx.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Rebind discards every line and points the cart at a new restaurant.
// This is the single-restaurant affinity eviction.
func (r *CartRepository) Rebind(tx *gorm.DB, cartID, restaurantID uint) error {
	if err := tx.Unscoped().Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("restaurant_id", restaurantID).Error
}

// UpsertItem merges into an existing line when (menu_item, customizations)
// matches, otherwise appends a new one. Touches the cart's updated_at.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ? AND customizations = ?",
		cartID, row.MenuItemID, row.Customizations).
		First(&exist).Error
	if err == nil {
		exist.Quantity += row.Quantity
		if err := tx.Save(&exist).Error; err != nil {
			return err
		}
		return r.touch(tx, cartID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	if err := tx.Create(row).Error; err != nil {
		return err
	}
	return r.touch(tx, cartID)
}

func (r *CartRepository) touch(tx *gorm.DB, cartID uint) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Update("updated_at", tx.NowFunc()).Error
}

// SumQuantities is the badge count: total quantity across the user's cart.
func (r *CartRepository) SumQuantities(userID uint) (int, error) {
	var total *int
	err := r.DB.Model(&entity.CartItem{}).
		Select("SUM(quantity)").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ? AND carts.deleted_at IS NULL", userID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	var c entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Unscoped().Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	// Hard delete: the unique index on user_id must be free for the next cart.
	return tx.Unscoped().Delete(&c).Error
}
