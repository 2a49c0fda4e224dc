package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
)

// newTestDB opens a private in-memory database per test. The name keeps
// parallel tests from sharing state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, userType entity.UserType) *entity.User {
	t.Helper()
	u := &entity.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		FirstName: "Test",
		LastName:  username,
		Phone:     "555-0100",
		UserType:  userType,
		IsActive:  true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRestaurant(t *testing.T, db *gorm.DB, ownerID uint, name string) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{
		Name:                  name,
		Address:               "1 Main St",
		Phone:                 "555-0200",
		CuisineType:           "thai",
		DeliveryFee:           2.99,
		EstimatedDeliveryTime: 30,
		IsActive:              true,
		OwnerID:               ownerID,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedMenuItem(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		Name:         name,
		Price:        price,
		Category:     "mains",
		IsAvailable:  true,
		RestaurantID: restaurantID,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db, repository.NewCartRepository(db), repository.NewRestaurantRepository(db), logging.Nop{})
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewUserRepository(db),
		logging.Nop{},
	)
}

func newTrackingService(db *gorm.DB) *TrackingService {
	return NewTrackingService(
		repository.NewOrderRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewUserRepository(db),
		logging.Nop{},
	)
}
