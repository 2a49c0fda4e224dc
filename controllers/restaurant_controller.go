package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/services"
	"github.com/januaraliosada/super-delivery/utils"
)

type RestaurantController struct {
	Svc *services.RestaurantService
	T   *resp.Translator
}

func NewRestaurantController(svc *services.RestaurantService, t *resp.Translator) *RestaurantController {
	return &RestaurantController{Svc: svc, T: t}
}

// pathID parses the :id segment; 0 means it was malformed.
func pathID(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// GET /restaurants
func (h *RestaurantController) List(c *gin.Context) {
	restaurants, err := h.Svc.List(c.Query("cuisine_type"), c.Query("search"))
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "restaurants", restaurants)
}

// POST /restaurants
func (h *RestaurantController) Create(c *gin.Context) {
	var req services.CreateRestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := h.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.Created(c, "restaurant", rest)
}

// GET /restaurants/:id
func (h *RestaurantController) Detail(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	rest, err := h.Svc.Get(id)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "restaurant", rest)
}

// PUT /restaurants/:id
func (h *RestaurantController) Update(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	var req services.UpdateRestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := h.Svc.Update(id, utils.CurrentUserID(c), utils.CurrentUserType(c), &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Restaurant updated successfully", gin.H{"restaurant": rest})
}

// DELETE /restaurants/:id
func (h *RestaurantController) Delete(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	if err := h.Svc.Delete(id, utils.CurrentUserID(c), utils.CurrentUserType(c)); err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Restaurant deleted successfully", nil)
}
