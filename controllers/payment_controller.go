package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/services"
	"github.com/januaraliosada/super-delivery/utils"
)

type PaymentController struct {
	Svc *services.PaymentService
	T   *resp.Translator
}

func NewPaymentController(svc *services.PaymentService, t *resp.Translator) *PaymentController {
	return &PaymentController{Svc: svc, T: t}
}

// POST /payments/create-payment-intent
func (h *PaymentController) CreateIntent(c *gin.Context) {
	var req services.CreateIntentIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := h.Svc.CreateIntent(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "payment", view)
}

// POST /payments/confirm-payment
func (h *PaymentController) Confirm(c *gin.Context) {
	var req services.ConfirmPaymentIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := h.Svc.Confirm(c.Request.Context(), &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Payment confirmed", gin.H{"order": view})
}

// POST /payments/webhook
//
// Unauthenticated by design; authenticity comes from the signature header.
func (h *PaymentController) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		resp.BadRequest(c, "unable to read payload")
		return
	}
	if err := h.Svc.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.T.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// GET /payments/payment-methods
func (h *PaymentController) Methods(c *gin.Context) {
	resp.OK(c, "payment_methods", h.Svc.PaymentMethods())
}
