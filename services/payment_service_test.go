package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/gateway"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
)

// fakeGateway records calls and plays back canned intents.
type fakeGateway struct {
	lastAmount   int64
	lastMetadata map[string]string
	intents      map[string]*gateway.Intent
	createErr    error
	nextEvent    *gateway.Event
	verifyErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: map[string]*gateway.Intent{}}
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64, _ string, metadata map[string]string) (*gateway.Intent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastAmount = amount
	f.lastMetadata = metadata
	in := &gateway.Intent{ID: "pi_test_1", ClientSecret: "pi_test_1_secret", Status: "requires_payment_method"}
	f.intents[in.ID] = in
	return in, nil
}

func (f *fakeGateway) RetrieveIntent(_ context.Context, intentID string) (*gateway.Intent, error) {
	in, ok := f.intents[intentID]
	if !ok {
		return nil, errors.New("no such intent")
	}
	return in, nil
}

func (f *fakeGateway) VerifyWebhook(_ []byte, _ string) (*gateway.Event, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.nextEvent, nil
}

func newPaymentService(db *gorm.DB, gw gateway.Client) *PaymentService {
	return NewPaymentService(db, repository.NewOrderRepository(db), gw, logging.Nop{})
}

func seedPayableOrder(t *testing.T, db *gorm.DB, total float64) (*entity.Order, uint) {
	t.Helper()
	customer := seedUser(t, db, "alice", entity.UserTypeCustomer)
	owner := seedUser(t, db, "owner", entity.UserTypeRestaurantOwner)
	rest := seedRestaurant(t, db, owner.ID, "Thai Place")
	order := &entity.Order{
		OrderNumber:     NewOrderNumber(time.Now()),
		Status:          entity.OrderPending,
		CustomerID:      customer.ID,
		RestaurantID:    rest.ID,
		DeliveryAddress: "2 Elm St",
		Subtotal:        total,
		TotalAmount:     total,
		PaymentStatus:   entity.PaymentPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order, customer.ID
}

func TestCentsRounding(t *testing.T) {
	assert.Equal(t, int64(2000), Cents(19.999))
	assert.Equal(t, int64(2459), Cents(24.59))
	assert.Equal(t, int64(0), Cents(0))
	assert.Equal(t, int64(1), Cents(0.005))
}

func TestCreateIntentStoresTransactionID(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := newPaymentService(db, gw)

	order, customerID := seedPayableOrder(t, db, 19.999)

	view, err := svc.CreateIntent(context.Background(), customerID, &CreateIntentIn{OrderID: order.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), gw.lastAmount)
	assert.Equal(t, order.OrderNumber, gw.lastMetadata["order_number"])
	assert.Equal(t, "pi_test_1", view.PaymentIntentID)
	assert.Equal(t, "pi_test_1_secret", view.ClientSecret)

	var stored entity.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, "pi_test_1", stored.PaymentTransactionID)
	assert.Equal(t, entity.PaymentPending, stored.PaymentStatus)
}

func TestCreateIntentErrors(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := newPaymentService(db, gw)

	order, customerID := seedPayableOrder(t, db, 10)

	_, err := svc.CreateIntent(context.Background(), customerID, &CreateIntentIn{OrderID: 9999})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Another customer's order looks absent, not forbidden.
	_, err = svc.CreateIntent(context.Background(), customerID+100, &CreateIntentIn{OrderID: order.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	gw.createErr = errors.New("stripe is down")
	_, err = svc.CreateIntent(context.Background(), customerID, &CreateIntentIn{OrderID: order.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindGateway))
}

func TestConfirmMovesOrderToConfirmed(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := newPaymentService(db, gw)

	order, customerID := seedPayableOrder(t, db, 24.59)
	_, err := svc.CreateIntent(context.Background(), customerID, &CreateIntentIn{OrderID: order.ID})
	require.NoError(t, err)

	// Processor still waiting: confirm is premature.
	_, err = svc.Confirm(context.Background(), &ConfirmPaymentIn{PaymentIntentID: "pi_test_1"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	gw.intents["pi_test_1"].Status = gateway.IntentSucceeded
	view, err := svc.Confirm(context.Background(), &ConfirmPaymentIn{PaymentIntentID: "pi_test_1"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", view.Status)
	assert.Equal(t, "completed", view.PaymentStatus)

	var stored entity.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, entity.OrderConfirmed, stored.Status)
	assert.Equal(t, entity.PaymentCompleted, stored.PaymentStatus)
	assert.Equal(t, "credit_card", stored.PaymentMethod)
	assert.NotNil(t, stored.ConfirmedAt)
}

func TestConfirmAppliesEffectToProgressedOrder(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := newPaymentService(db, gw)

	order, customerID := seedPayableOrder(t, db, 24.59)
	_, err := svc.CreateIntent(context.Background(), customerID, &CreateIntentIn{OrderID: order.ID})
	require.NoError(t, err)

	// Restaurant staff moved the order along before payment settled. The
	// payment-succeeded effect still applies as written: confirmed status,
	// confirmed_at stamped.
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", order.ID).
		Update("status", entity.OrderPreparing).Error)

	gw.intents["pi_test_1"].Status = gateway.IntentSucceeded
	_, err = svc.Confirm(context.Background(), &ConfirmPaymentIn{PaymentIntentID: "pi_test_1"})
	require.NoError(t, err)

	var stored entity.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, entity.OrderConfirmed, stored.Status)
	assert.Equal(t, entity.PaymentCompleted, stored.PaymentStatus)
	require.NotNil(t, stored.ConfirmedAt)
}

func TestWebhookSuccessAndFailure(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	svc := newPaymentService(db, gw)

	order, customerID := seedPayableOrder(t, db, 10)
	_, err := svc.CreateIntent(context.Background(), customerID, &CreateIntentIn{OrderID: order.ID})
	require.NoError(t, err)

	gw.nextEvent = &gateway.Event{Type: gateway.EventPaymentSucceeded, IntentID: "pi_test_1"}
	require.NoError(t, svc.HandleWebhook([]byte("{}"), "sig"))

	var stored entity.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, entity.OrderConfirmed, stored.Status)
	assert.Equal(t, entity.PaymentCompleted, stored.PaymentStatus)

	// Failure only flips payment status; the order itself stays put.
	order2 := &entity.Order{
		OrderNumber: NewOrderNumber(time.Now()), Status: entity.OrderPending,
		CustomerID: stored.CustomerID, RestaurantID: stored.RestaurantID,
		DeliveryAddress: "x", Subtotal: 5, TotalAmount: 5,
		PaymentStatus: entity.PaymentPending, PaymentTransactionID: "pi_test_2",
	}
	require.NoError(t, db.Create(order2).Error)

	gw.nextEvent = &gateway.Event{Type: gateway.EventPaymentFailed, IntentID: "pi_test_2"}
	require.NoError(t, svc.HandleWebhook([]byte("{}"), "sig"))

	stored = entity.Order{}
	require.NoError(t, db.First(&stored, order2.ID).Error)
	assert.Equal(t, entity.OrderPending, stored.Status)
	assert.Equal(t, entity.PaymentFailed, stored.PaymentStatus)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway()
	gw.verifyErr = gateway.ErrInvalidSignature
	svc := newPaymentService(db, gw)

	err := svc.HandleWebhook([]byte("{}"), "bad")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
