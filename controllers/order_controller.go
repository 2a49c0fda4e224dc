package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/repository"
	"github.com/januaraliosada/super-delivery/services"
	"github.com/januaraliosada/super-delivery/utils"
)

type OrderController struct {
	Svc *services.OrderService
	T   *resp.Translator
}

func NewOrderController(svc *services.OrderService, t *resp.Translator) *OrderController {
	return &OrderController{Svc: svc, T: t}
}

// GET /orders
func (h *OrderController) List(c *gin.Context) {
	var f repository.OrderFilter
	if v, err := strconv.ParseUint(c.Query("customer_id"), 10, 32); err == nil {
		f.CustomerID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 32); err == nil {
		f.RestaurantID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("driver_id"), 10, 32); err == nil {
		f.DriverID = uint(v)
	}
	if s := c.Query("status"); s != "" {
		status, err := entity.ParseOrderStatus(s)
		if err != nil {
			resp.BadRequest(c, "invalid status filter")
			return
		}
		f.Status = status
	}

	orders, err := h.Svc.List(f)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "orders", orders)
}

// POST /orders
func (h *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	// Customers always order as themselves.
	if utils.CurrentUserType(c) == entity.UserTypeCustomer {
		req.CustomerID = utils.CurrentUserID(c)
	}
	order, err := h.Svc.Create(&req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.CreatedMessage(c, "Order created successfully", gin.H{"order": order})
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	order, items, err := h.Svc.Get(id)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "order", gin.H{
		"order": order,
		"items": items,
	})
}

// PUT /orders/:id/status
func (h *OrderController) UpdateStatus(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req services.UpdateStatusIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.UpdateStatus(id, &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Order status updated", gin.H{"order": order})
}

// PUT /orders/:id/assign-driver
func (h *OrderController) AssignDriver(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req struct {
		DriverID uint `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.AssignDriver(id, req.DriverID)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Driver assigned successfully", gin.H{"order": order})
}

// POST /orders/:id/review
func (h *OrderController) AddReview(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req services.AddReviewIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	review, err := h.Svc.AddReview(id, &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.CreatedMessage(c, "Review added successfully", gin.H{"review": review})
}

// GET /orders/available
func (h *OrderController) Available(c *gin.Context) {
	orders, err := h.Svc.ListAvailableForPickup()
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "orders", orders)
}
