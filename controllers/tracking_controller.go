package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/services"
)

type TrackingController struct {
	Svc *services.TrackingService
	T   *resp.Translator
}

func NewTrackingController(svc *services.TrackingService, t *resp.Translator) *TrackingController {
	return &TrackingController{Svc: svc, T: t}
}

// GET /orders/:id/tracking
func (h *TrackingController) Track(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	info, err := h.Svc.Track(id)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "tracking", info)
}

// GET /orders/customer/:id/active
func (h *TrackingController) CustomerActive(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid customer id")
		return
	}
	orders, err := h.Svc.ActiveForCustomer(id)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "orders", orders)
}

// GET /orders/restaurant/:id/pending
func (h *TrackingController) RestaurantPending(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	orders, err := h.Svc.PendingForRestaurant(id)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "orders", orders)
}

// GET /orders/driver/:id/assigned
func (h *TrackingController) DriverAssigned(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid driver id")
		return
	}
	orders, err := h.Svc.AssignedForDriver(id)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "orders", orders)
}
