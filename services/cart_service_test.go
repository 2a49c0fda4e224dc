package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
)

func TestCartGetEmptyShape(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	view, err := svc.Get(42)
	require.NoError(t, err)
	assert.Equal(t, []CartLineView{}, view.Items)
	assert.Equal(t, 0, view.TotalItems)
	assert.Equal(t, 0.0, view.Subtotal)
	assert.Nil(t, view.Restaurant)
}

func TestCartAddCreatesAndMerges(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")
	pad := seedMenuItem(t, db, rest.ID, "Pad Thai", 9.50)

	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 2}))
	// Same item and customizations merge into one line.
	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 1}))
	// Different customizations start a new line.
	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 1, Customizations: "no peanuts"}))

	view, err := svc.Get(customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 4, view.TotalItems)
	assert.InDelta(t, 4*9.50, view.Subtotal, 1e-9)
	require.NotNil(t, view.Restaurant)
	assert.Equal(t, rest.ID, view.Restaurant.ID)
}

func TestCartAddLocksPriceAtAddTime(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")
	pad := seedMenuItem(t, db, rest.ID, "Pad Thai", 9.50)

	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 1}))

	// Menu price change after the add must not leak into the cart line.
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", pad.ID).Update("price", 12.00).Error)

	view, err := svc.Get(customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 9.50, view.Items[0].Price)
}

func TestCartAffinityEvictsOnRestaurantSwitch(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	thai := seedRestaurant(t, db, owner.ID, "Thai Place")
	pizza := seedRestaurant(t, db, owner.ID, "Pizza Place")
	pad := seedMenuItem(t, db, thai.ID, "Pad Thai", 9.50)
	margherita := seedMenuItem(t, db, pizza.ID, "Margherita", 11.00)

	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 3}))
	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: margherita.ID, Quantity: 1}))

	view, err := svc.Get(customer.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, margherita.ID, view.Items[0].MenuItemID)
	require.NotNil(t, view.Restaurant)
	assert.Equal(t, pizza.ID, view.Restaurant.ID)

	// The evicted lines are hard deleted, not soft deleted.
	var count int64
	require.NoError(t, db.Unscoped().Model(&entity.CartItem{}).Where("menu_item_id = ?", pad.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCartAddRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)

	err := svc.Add(customer.ID, &AddToCartIn{MenuItemID: 1, Quantity: 0})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = svc.Add(customer.ID, &AddToCartIn{MenuItemID: 999, Quantity: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCartClearAllowsNewCart(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")
	pad := seedMenuItem(t, db, rest.ID, "Pad Thai", 9.50)

	// Clearing with no cart is fine.
	require.NoError(t, svc.Clear(customer.ID))

	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 2}))
	require.NoError(t, svc.Clear(customer.ID))

	view, err := svc.Get(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// The one-cart-per-customer constraint must not block a fresh cart.
	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 1}))
	assert.Equal(t, 1, svc.Count(customer.ID))
}

func TestCartCountIsFailureTolerant(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	assert.Equal(t, 0, svc.Count(0))
	assert.Equal(t, 0, svc.Count(42))

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")
	pad := seedMenuItem(t, db, rest.ID, "Pad Thai", 9.50)
	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 2}))
	require.NoError(t, svc.Add(customer.ID, &AddToCartIn{MenuItemID: pad.ID, Quantity: 3}))

	assert.Equal(t, 5, svc.Count(customer.ID))
}
