package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
)

type MenuService struct {
	Repo *repository.RestaurantRepository
	log  logging.Logger
}

func NewMenuService(repo *repository.RestaurantRepository, log logging.Logger) *MenuService {
	return &MenuService{Repo: repo, log: log}
}

type CreateMenuItemIn struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required"`
	Category        string  `json:"category"`
	ImageURL        string  `json:"image_url"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	IsGlutenFree    bool    `json:"is_gluten_free"`
	Calories        *int    `json:"calories"`
	PreparationTime int     `json:"preparation_time"`
	Ingredients     string  `json:"ingredients"`
	Allergens       string  `json:"allergens"`
}

// Create adds a menu item to the caller's restaurant.
func (s *MenuService) Create(restaurantID, callerID uint, callerType entity.UserType, in *CreateMenuItemIn) (*entity.MenuItem, error) {
	if err := s.authorize(restaurantID, callerID, callerType); err != nil {
		return nil, err
	}
	if in.Price <= 0 {
		return nil, apperr.Validation("price must be positive")
	}

	prep := in.PreparationTime
	if prep <= 0 {
		prep = 15
	}
	item := &entity.MenuItem{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Category:        in.Category,
		ImageURL:        in.ImageURL,
		IsAvailable:     true,
		IsVegetarian:    in.IsVegetarian,
		IsVegan:         in.IsVegan,
		IsGlutenFree:    in.IsGlutenFree,
		Calories:        in.Calories,
		PreparationTime: prep,
		Ingredients:     in.Ingredients,
		Allergens:       in.Allergens,
		RestaurantID:    restaurantID,
	}
	if err := s.Repo.CreateMenuItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns the restaurant's available menu, optionally narrowed to one
// category.
func (s *MenuService) List(restaurantID uint, category string) ([]entity.MenuItem, error) {
	exists, err := s.Repo.Exists(restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("restaurant not found")
	}
	return s.Repo.ListMenu(restaurantID, repository.MenuFilter{
		Category:    category,
		IsAvailable: true,
	})
}

func (s *MenuService) Get(id uint) (*entity.MenuItem, error) {
	item, err := s.Repo.GetMenuItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, err
	}
	return item, nil
}

type UpdateMenuItemIn struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	Category        *string  `json:"category"`
	ImageURL        *string  `json:"image_url"`
	IsAvailable     *bool    `json:"is_available"`
	IsVegetarian    *bool    `json:"is_vegetarian"`
	IsVegan         *bool    `json:"is_vegan"`
	IsGlutenFree    *bool    `json:"is_gluten_free"`
	Calories        *int     `json:"calories"`
	PreparationTime *int     `json:"preparation_time"`
	Ingredients     *string  `json:"ingredients"`
	Allergens       *string  `json:"allergens"`
}

func (s *MenuService) Update(id, callerID uint, callerType entity.UserType, in *UpdateMenuItemIn) (*entity.MenuItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(item.RestaurantID, callerID, callerType); err != nil {
		return nil, err
	}
	if in.Price != nil && *in.Price <= 0 {
		return nil, apperr.Validation("price must be positive")
	}

	patch := &repository.MenuItemPatch{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Category:        in.Category,
		ImageURL:        in.ImageURL,
		IsAvailable:     in.IsAvailable,
		IsVegetarian:    in.IsVegetarian,
		IsVegan:         in.IsVegan,
		IsGlutenFree:    in.IsGlutenFree,
		Calories:        in.Calories,
		PreparationTime: in.PreparationTime,
		Ingredients:     in.Ingredients,
		Allergens:       in.Allergens,
	}
	if err := s.Repo.UpdateMenuItem(id, patch); err != nil {
		return nil, err
	}
	return s.Repo.GetMenuItem(id)
}

func (s *MenuService) Delete(id, callerID uint, callerType entity.UserType) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.authorize(item.RestaurantID, callerID, callerType); err != nil {
		return err
	}
	return s.Repo.DeleteMenuItem(id)
}

func (s *MenuService) authorize(restID, callerID uint, callerType entity.UserType) error {
	exists, err := s.Repo.Exists(restID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("restaurant not found")
	}
	if callerType == entity.UserTypeAdmin {
		return nil
	}
	owned, err := s.Repo.IsOwnedBy(restID, callerID)
	if err != nil {
		return err
	}
	if !owned {
		return apperr.Auth("not authorized for this restaurant")
	}
	return nil
}
