package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
)

type RestaurantService struct {
	Repo     *repository.RestaurantRepository
	UserRepo *repository.UserRepository
	log      logging.Logger
}

func NewRestaurantService(repo *repository.RestaurantRepository, ur *repository.UserRepository, log logging.Logger) *RestaurantService {
	return &RestaurantService{Repo: repo, UserRepo: ur, log: log}
}

type CreateRestaurantIn struct {
	Name                  string  `json:"name" binding:"required"`
	Description           string  `json:"description"`
	Address               string  `json:"address" binding:"required"`
	Phone                 string  `json:"phone"`
	Email                 string  `json:"email"`
	CuisineType           string  `json:"cuisine_type"`
	DeliveryFee           float64 `json:"delivery_fee"`
	MinimumOrder          float64 `json:"minimum_order"`
	EstimatedDeliveryTime int     `json:"estimated_delivery_time"`
	ImageURL              string  `json:"image_url"`
	OpeningHours          string  `json:"opening_hours"`
}

// Create registers a restaurant owned by ownerID. Only restaurant accounts
// may own restaurants.
func (s *RestaurantService) Create(ownerID uint, in *CreateRestaurantIn) (*entity.Restaurant, error) {
	owner, err := s.UserRepo.FindByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid restaurant owner")
		}
		return nil, err
	}
	if owner.UserType != entity.UserTypeRestaurantOwner {
		return nil, apperr.Validation("invalid restaurant owner")
	}

	eta := in.EstimatedDeliveryTime
	if eta <= 0 {
		eta = 30
	}
	rest := &entity.Restaurant{
		Name:                  in.Name,
		Description:           in.Description,
		Address:               in.Address,
		Phone:                 in.Phone,
		Email:                 in.Email,
		CuisineType:           in.CuisineType,
		DeliveryFee:           in.DeliveryFee,
		MinimumOrder:          in.MinimumOrder,
		EstimatedDeliveryTime: eta,
		IsActive:              true,
		ImageURL:              in.ImageURL,
		OpeningHours:          in.OpeningHours,
		OwnerID:               ownerID,
	}
	if err := s.Repo.Create(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) Get(id uint) (*entity.Restaurant, error) {
	rest, err := s.Repo.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("restaurant not found")
		}
		return nil, err
	}
	return rest, nil
}

// List returns active restaurants matching the filter. Inactive restaurants
// are only visible through Get.
func (s *RestaurantService) List(cuisineType, search string) ([]entity.Restaurant, error) {
	return s.Repo.List(repository.RestaurantFilter{
		CuisineType: cuisineType,
		Search:      search,
		IsActive:    true,
	})
}

type UpdateRestaurantIn struct {
	Name                  *string  `json:"name"`
	Description           *string  `json:"description"`
	Address               *string  `json:"address"`
	Phone                 *string  `json:"phone"`
	Email                 *string  `json:"email"`
	CuisineType           *string  `json:"cuisine_type"`
	DeliveryFee           *float64 `json:"delivery_fee"`
	MinimumOrder          *float64 `json:"minimum_order"`
	EstimatedDeliveryTime *int     `json:"estimated_delivery_time"`
	IsActive              *bool    `json:"is_active"`
	ImageURL              *string  `json:"image_url"`
	OpeningHours          *string  `json:"opening_hours"`
}

// Update patches the restaurant after checking the caller owns it. Admins
// bypass the ownership check.
func (s *RestaurantService) Update(id, callerID uint, callerType entity.UserType, in *UpdateRestaurantIn) (*entity.Restaurant, error) {
	if err := s.authorize(id, callerID, callerType); err != nil {
		return nil, err
	}
	patch := &repository.RestaurantPatch{
		Name:                  in.Name,
		Description:           in.Description,
		Address:               in.Address,
		Phone:                 in.Phone,
		Email:                 in.Email,
		CuisineType:           in.CuisineType,
		DeliveryFee:           in.DeliveryFee,
		MinimumOrder:          in.MinimumOrder,
		EstimatedDeliveryTime: in.EstimatedDeliveryTime,
		IsActive:              in.IsActive,
		ImageURL:              in.ImageURL,
		OpeningHours:          in.OpeningHours,
	}
	if err := s.Repo.Update(id, patch); err != nil {
		return nil, err
	}
	return s.Repo.Get(id)
}

func (s *RestaurantService) Delete(id, callerID uint, callerType entity.UserType) error {
	if err := s.authorize(id, callerID, callerType); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *RestaurantService) authorize(restID, callerID uint, callerType entity.UserType) error {
	if _, err := s.Repo.Get(restID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("restaurant not found")
		}
		return err
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
