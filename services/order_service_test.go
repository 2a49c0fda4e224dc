package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/repository"
)

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^SD20260315[0-9A-F]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := NewOrderNumber(now)
		assert.Regexp(t, re, n)
		assert.False(t, seen[n], "order numbers should not repeat")
		seen[n] = true
	}
}

func TestOrderCreateDerivesETA(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place") // 30 minute estimate
	pad := seedMenuItem(t, db, rest.ID, "Pad Thai", 9.50)

	before := time.Now().UTC()
	order, err := svc.Create(&CreateOrderIn{
		CustomerID:      customer.ID,
		RestaurantID:    rest.ID,
		DeliveryAddress: "2 Elm St",
		Subtotal:        20.00,
		TaxAmount:       1.60,
		TotalAmount:     24.59,
		Items: []OrderItemIn{
			{MenuItemID: pad.ID, Quantity: 2, UnitPrice: 9.50, TotalPrice: 19.00},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, order.Status)
	// Delivery fee falls back to the restaurant's when the request omits it.
	assert.Equal(t, 2.99, order.DeliveryFee)

	require.NotNil(t, order.EstimatedDeliveryTime)
	eta := order.EstimatedDeliveryTime.Sub(before)
	assert.GreaterOrEqual(t, eta, 29*time.Minute)
	assert.LessOrEqual(t, eta, 31*time.Minute)

	items, err := svc.Repo.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 9.50, items[0].UnitPrice)
}

func TestOrderCreateAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")
	pad := seedMenuItem(t, db, rest.ID, "Pad Thai", 9.50)

	_, err := svc.Create(&CreateOrderIn{
		CustomerID:      customer.ID,
		RestaurantID:    rest.ID,
		DeliveryAddress: "2 Elm St",
		Subtotal:        19.00,
		TotalAmount:     21.99,
		Items: []OrderItemIn{
			{MenuItemID: pad.ID, Quantity: 1, UnitPrice: 9.50, TotalPrice: 9.50},
			{MenuItemID: 9999, Quantity: 1}, // does not exist
		},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// The bad line rolled back the whole order.
	var orders, items int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&entity.OrderItem{}).Count(&items).Error)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), items)
}

func TestOrderCreateRejectsNonCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	driver := seedUser(t, db, "dan", entity.UserTypeDriver)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")

	_, err := svc.Create(&CreateOrderIn{
		CustomerID:      driver.ID,
		RestaurantID:    rest.ID,
		DeliveryAddress: "2 Elm St",
		Subtotal:        10,
		TotalAmount:     12,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	_, err = svc.Create(&CreateOrderIn{
		CustomerID:      customer.ID,
		RestaurantID:    999,
		DeliveryAddress: "2 Elm St",
		Subtotal:        10,
		TotalAmount:     12,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestOrderListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	other := seedUser(t, db, "bob", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")

	mk := func(cust uint, status entity.OrderStatus) {
		require.NoError(t, db.Create(&entity.Order{
			OrderNumber:     NewOrderNumber(time.Now()),
			Status:          status,
			CustomerID:      cust,
			RestaurantID:    rest.ID,
			DeliveryAddress: "x",
			Subtotal:        1,
			TotalAmount:     1,
		}).Error)
	}
	mk(customer.ID, entity.OrderPending)
	mk(customer.ID, entity.OrderDelivered)
	mk(other.ID, entity.OrderPending)

	orders, err := svc.List(repository.OrderFilter{CustomerID: customer.ID})
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = svc.List(repository.OrderFilter{CustomerID: customer.ID, Status: entity.OrderDelivered})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestListAvailableForPickupExcludesAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	driver := seedUser(t, db, "dan", entity.UserTypeDriver)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")

	free := &entity.Order{
		OrderNumber: NewOrderNumber(time.Now()), Status: entity.OrderReadyForPickup,
		CustomerID: customer.ID, RestaurantID: rest.ID, DeliveryAddress: "x", Subtotal: 1, TotalAmount: 1,
	}
	taken := &entity.Order{
		OrderNumber: NewOrderNumber(time.Now()), Status: entity.OrderReadyForPickup,
		CustomerID: customer.ID, RestaurantID: rest.ID, DeliveryAddress: "x", Subtotal: 1, TotalAmount: 1,
		DriverID: &driver.ID,
	}
	pending := &entity.Order{
		OrderNumber: NewOrderNumber(time.Now()), Status: entity.OrderPending,
		CustomerID: customer.ID, RestaurantID: rest.ID, DeliveryAddress: "x", Subtotal: 1, TotalAmount: 1,
	}
	require.NoError(t, db.Create(free).Error)
	require.NoError(t, db.Create(taken).Error)
	require.NoError(t, db.Create(pending).Error)

	orders, err := svc.ListAvailableForPickup()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, free.ID, orders[0].ID)
}
