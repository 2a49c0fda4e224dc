package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/services"
	"github.com/januaraliosada/super-delivery/utils"
)

type MenuController struct {
	Svc *services.MenuService
	T   *resp.Translator
}

func NewMenuController(svc *services.MenuService, t *resp.Translator) *MenuController {
	return &MenuController{Svc: svc, T: t}
}

// GET /restaurants/:id/menu
func (h *MenuController) List(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	items, err := h.Svc.List(id, c.Query("category"))
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "menu_items", items)
}

// POST /restaurants/:id/menu
func (h *MenuController) Create(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	var req services.CreateMenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.Create(id, utils.CurrentUserID(c), utils.CurrentUserType(c), &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.Created(c, "menu_item", item)
}

// PUT /menu-items/:id
func (h *MenuController) Update(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	var req services.UpdateMenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.Update(id, utils.CurrentUserID(c), utils.CurrentUserType(c), &req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Menu item updated successfully", gin.H{"menu_item": item})
}

// DELETE /menu-items/:id
func (h *MenuController) Delete(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	if err := h.Svc.Delete(id, utils.CurrentUserID(c), utils.CurrentUserType(c)); err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Menu item deleted successfully", nil)
}
