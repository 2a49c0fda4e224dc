package repository

import (
	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// RestaurantFilter is a conjunctive list filter.
type RestaurantFilter struct {
	CuisineType string
	Search      string
	IsActive    bool
}

func (r *RestaurantRepository) List(f RestaurantFilter) ([]entity.Restaurant, error) {
	q := r.DB.Where("is_active = ?", f.IsActive)
	if f.CuisineType != "" {
		q = q.Where("cuisine_type = ?", f.CuisineType)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	var out []entity.Restaurant
	err := q.Find(&out).Error
	return out, err
}

// RestaurantPatch enumerates the mutable restaurant fields; rating is
// deliberately absent (derived from reviews only).
type RestaurantPatch struct {
	Name                  *string
	Description           *string
	Address               *string
	Phone                 *string
	Email                 *string
	CuisineType           *string
	DeliveryFee           *float64
	MinimumOrder          *float64
	EstimatedDeliveryTime *int
	IsActive              *bool
	ImageURL              *string
	OpeningHours          *string
}

func (r *RestaurantRepository) Update(id uint, p *RestaurantPatch) error {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.CuisineType != nil {
		updates["cuisine_type"] = *p.CuisineType
	}
	if p.DeliveryFee != nil {
		updates["delivery_fee"] = *p.DeliveryFee
	}
	if p.MinimumOrder != nil {
		updates["minimum_order"] = *p.MinimumOrder
	}
	if p.EstimatedDeliveryTime != nil {
		updates["estimated_delivery_time"] = *p.EstimatedDeliveryTime
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if p.ImageURL != nil {
		updates["image_url"] = *p.ImageURL
	}
	if p.OpeningHours != nil {
		updates["opening_hours"] = *p.OpeningHours
	}
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes the restaurant; menu items go with it via the cascade
// constraint.
func (r *RestaurantRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&entity.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Restaurant{}, id).Error
	})
}

func (r *RestaurantRepository) UpdateRating(tx *gorm.DB, id uint, rating float64) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", id).Update("rating", rating).Error
}

// ---------------- Menu items ----------------

func (r *RestaurantRepository) CreateMenuItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *RestaurantRepository) GetMenuItem(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

type MenuFilter struct {
	Category    string
	IsAvailable bool
}

func (r *RestaurantRepository) ListMenu(restID uint, f MenuFilter) ([]entity.MenuItem, error) {
	q := r.DB.Where("restaurant_id = ? AND is_available = ?", restID, f.IsAvailable)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var out []entity.MenuItem
	err := q.Find(&out).Error
	return out, err
}

type MenuItemPatch struct {
	Name            *string
	Description     *string
	Price           *float64
	Category        *string
	ImageURL        *string
	IsAvailable     *bool
	IsVegetarian    *bool
	IsVegan         *bool
	IsGlutenFree    *bool
	Calories        *int
	PreparationTime *int
	Ingredients     *string
	Allergens       *string
}

func (r *RestaurantRepository) UpdateMenuItem(id uint, p *MenuItemPatch) error {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.ImageURL != nil {
		updates["image_url"] = *p.ImageURL
	}
	if p.IsAvailable != nil {
		updates["is_available"] = *p.IsAvailable
	}
	if p.IsVegetarian != nil {
		updates["is_vegetarian"] = *p.IsVegetarian
	}
	if p.IsVegan != nil {
		updates["is_vegan"] = *p.IsVegan
	}
	if p.IsGlutenFree != nil {
		updates["is_gluten_free"] = *p.IsGlutenFree
	}
	if p.Calories != nil {
		updates["calories"] = *p.Calories
	}
	if p.PreparationTime != nil {
		updates["preparation_time"] = *p.PreparationTime
	}
	if p.Ingredients != nil {
		updates["ingredients"] = *p.Ingredients
	}
	if p.Allergens != nil {
		updates["allergens"] = *p.Allergens
	}
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}

func (r *RestaurantRepository) DeleteMenuItem(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}
