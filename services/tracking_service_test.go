package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
)

func timelineStatuses(events []TimelineEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Status)
	}
	return out
}

func TestProjectTimelineOffsets(t *testing.T) {
	created := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	order := &entity.Order{Status: entity.OrderOutForDelivery}
	order.CreatedAt = created

	timeline := ProjectTimeline(order, 30)
	require.Equal(t, []string{"placed", "confirmed", "preparing", "ready", "picked_up", "delivered"}, timelineStatuses(timeline))

	offsets := []time.Duration{0, 2 * time.Minute, 5 * time.Minute, 15 * time.Minute, 20 * time.Minute, 30 * time.Minute}
	for i, e := range timeline {
		assert.Equal(t, created.Add(offsets[i]), e.Timestamp, "milestone %s", e.Status)
	}

	// Everything up to the current status is completed; delivery is still
	// an estimate.
	for _, e := range timeline[:5] {
		assert.True(t, e.Completed, "milestone %s", e.Status)
	}
	last := timeline[5]
	assert.False(t, last.Completed)
	assert.True(t, last.Estimated)
}

func TestProjectTimelineEarlyStatus(t *testing.T) {
	order := &entity.Order{Status: entity.OrderConfirmed}
	order.CreatedAt = time.Now().UTC()

	timeline := ProjectTimeline(order, 0) // fallback 30
	require.Equal(t, []string{"placed", "confirmed", "delivered"}, timelineStatuses(timeline))
	assert.Equal(t, order.CreatedAt.Add(30*time.Minute), timeline[2].Timestamp)
}

func TestProjectTimelineCancelled(t *testing.T) {
	order := &entity.Order{Status: entity.OrderCancelled}
	order.CreatedAt = time.Now().UTC()

	// A cancelled order sits outside the delivery progression: only the
	// placement it actually passed shows, plus the delivery estimate.
	timeline := ProjectTimeline(order, 30)
	require.Equal(t, []string{"placed", "delivered"}, timelineStatuses(timeline))
	assert.True(t, timeline[0].Completed)
	assert.False(t, timeline[1].Completed)
	assert.True(t, timeline[1].Estimated)
}

func TestProjectTimelineDelivered(t *testing.T) {
	order := &entity.Order{Status: entity.OrderDelivered}
	order.CreatedAt = time.Now().UTC()

	timeline := ProjectTimeline(order, 45)
	last := timeline[len(timeline)-1]
	assert.Equal(t, "delivered", last.Status)
	assert.True(t, last.Completed)
	assert.False(t, last.Estimated)
}

func TestTrackAssemblesView(t *testing.T) {
	db := newTestDB(t)
	svc := newTrackingService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	driver := seedUser(t, db, "dan", entity.UserTypeDriver)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")

	order := seedOrder(t, db, customer.ID, rest.ID, entity.OrderOutForDelivery)
	order.DriverID = &driver.ID
	require.NoError(t, db.Save(order).Error)

	info, err := svc.Track(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, info.OrderID)
	assert.Equal(t, "out_for_delivery", info.Status)
	assert.Equal(t, "Thai Place", info.Restaurant.Name)
	require.NotNil(t, info.DriverInfo)
	assert.Equal(t, "Test dan", info.DriverInfo.Name)
	assert.NotEmpty(t, info.Timeline)

	_, err = svc.Track(9999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRoleScopedTrackingLists(t *testing.T) {
	db := newTestDB(t)
	svc := newTrackingService(db)

	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	driver := seedUser(t, db, "dan", entity.UserTypeDriver)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")

	active := seedOrder(t, db, customer.ID, rest.ID, entity.OrderPreparing)
	done := seedOrder(t, db, customer.ID, rest.ID, entity.OrderDelivered)
	assigned := seedOrder(t, db, customer.ID, rest.ID, entity.OrderOutForDelivery)
	assigned.DriverID = &driver.ID
	require.NoError(t, db.Save(assigned).Error)

	activeOrders, err := svc.ActiveForCustomer(customer.ID)
	require.NoError(t, err)
	ids := map[uint]bool{}
	for _, o := range activeOrders {
		ids[o.ID] = true
	}
	assert.True(t, ids[active.ID])
	assert.True(t, ids[assigned.ID])
	assert.False(t, ids[done.ID], "delivered orders are not active")

	pending, err := svc.PendingForRestaurant(rest.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, active.ID, pending[0].ID)
	assert.Equal(t, "Test alice", pending[0].CustomerName)

	driving, err := svc.AssignedForDriver(driver.ID)
	require.NoError(t, err)
	require.Len(t, driving, 1)
	assert.Equal(t, assigned.ID, driving[0].ID)
	assert.Equal(t, "Thai Place", driving[0].Restaurant.Name)
}
