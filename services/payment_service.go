package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/gateway"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
)

// PaymentService owns the intent lifecycle for orders. All money sent to the
// processor is in minor units; entities keep the decimal amounts.
type PaymentService struct {
	DB      *gorm.DB
	Repo    *repository.OrderRepository
	Gateway gateway.Client
	log     logging.Logger
}

func NewPaymentService(db *gorm.DB, repo *repository.OrderRepository, gw gateway.Client, log logging.Logger) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, Gateway: gw, log: log}
}

type CreateIntentIn struct {
	OrderID uint `json:"order_id" binding:"required"`
}

type IntentView struct {
	ClientSecret    string  `json:"client_secret"`
	PaymentIntentID string  `json:"payment_intent_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// Cents converts a decimal amount to minor units, rounding half away from
// zero so 19.999 becomes 2000 rather than truncating to 1999.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent opens a processor intent for the order total and records the
// intent id on the order. Calling it again for the same order opens a fresh
// intent and overwrites the stored id.
func (s *PaymentService) CreateIntent(ctx context.Context, customerID uint, in *CreateIntentIn) (*IntentView, error) {
	order, err := s.Repo.GetOrder(in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperr.NotFound("order not found")
	}
	if order.PaymentStatus == entity.PaymentCompleted {
		return nil, apperr.Conflict("order already paid")
	}

	intent, err := s.Gateway.CreateIntent(ctx, Cents(order.TotalAmount), "usd", map[string]string{
		"order_id":     fmt.Sprintf("%d", order.ID),
		"order_number": order.OrderNumber,
	})
	if err != nil {
		s.log.Error("payment intent creation failed", err, map[string]any{"order_id": order.ID})
		return nil, apperr.Gateway("payment processing error", err)
	}

	order.PaymentTransactionID = intent.ID
	order.PaymentStatus = entity.PaymentPending
	if err := s.Repo.Save(s.DB, order); err != nil {
		return nil, err
	}

	return &IntentView{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          order.TotalAmount,
		Currency:        "usd",
	}, nil
}

type ConfirmPaymentIn struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type ConfirmPaymentView struct {
	OrderID       uint   `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// Confirm re-checks the intent with the processor and, when it has
// succeeded, marks the order paid and moves it to confirmed. The effect is
// idempotent: confirming an already-paid order reports success again.
func (s *PaymentService) Confirm(ctx context.Context, in *ConfirmPaymentIn) (*ConfirmPaymentView, error) {
	intent, err := s.Gateway.RetrieveIntent(ctx, in.PaymentIntentID)
	if err != nil {
		return nil, apperr.Gateway("payment processing error", err)
	}
	if intent.Status != gateway.IntentSucceeded {
		return nil, apperr.Validation("payment not completed")
	}

	order, err := s.markPaid(intent.ID)
	if err != nil {
		return nil, err
	}
	return &ConfirmPaymentView{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
	}, nil
}

// markPaid applies the payment-succeeded effect to whichever order carries
// the intent.
func (s *PaymentService) markPaid(intentID string) (*entity.Order, error) {
	order, err := s.Repo.FindByPaymentIntent(intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found for this payment")
		}
		return nil, err
	}

	order.PaymentStatus = entity.PaymentCompleted
	order.PaymentMethod = "credit_card"
	order.Status = entity.OrderConfirmed
	now := time.Now()
	order.ConfirmedAt = &now
	if err := s.Repo.Save(s.DB, order); err != nil {
		return nil, err
	}
	return order, nil
}

// HandleWebhook applies a verified processor event. Unknown event types are
// acknowledged and ignored so the processor does not retry them.
func (s *PaymentService) HandleWebhook(payload []byte, signatureHeader string) error {
	event, err := s.Gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return apperr.Validation("invalid webhook signature")
	}

	switch event.Type {
	case gateway.EventPaymentSucceeded:
		if _, err := s.markPaid(event.IntentID); err != nil {
			// The intent may belong to another system; log and ack.
			s.log.Warn("webhook for unknown intent", map[string]any{"intent_id": event.IntentID, "error": err.Error()})
		}
	case gateway.EventPaymentFailed:
		order, err := s.Repo.FindByPaymentIntent(event.IntentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn("webhook for unknown intent", map[string]any{"intent_id": event.IntentID})
				return nil
			}
			return err
		}
		// Failure touches payment state only; the order stays where it is
		// so the customer can retry.
		order.PaymentStatus = entity.PaymentFailed
		if err := s.Repo.Save(s.DB, order); err != nil {
			return err
		}
	default:
		s.log.Info("ignoring webhook event", map[string]any{"type": event.Type})
	}
	return nil
}

type PaymentMethodView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// PaymentMethods reports the methods the platform accepts.
func (s *PaymentService) PaymentMethods() []PaymentMethodView {
	return []PaymentMethodView{
		{ID: "credit_card", Name: "Credit Card", Description: "Pay with Visa, Mastercard, or American Express", Enabled: true},
		{ID: "debit_card", Name: "Debit Card", Description: "Pay directly from your bank account", Enabled: true},
		{ID: "cash", Name: "Cash on Delivery", Description: "Pay with cash when your order arrives", Enabled: false},
	}
}
