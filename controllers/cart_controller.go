package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/services"
	"github.com/januaraliosada/super-delivery/utils"
)

type CartController struct {
	Svc       *services.CartService
	T         *resp.Translator
	JWTSecret string
}

func NewCartController(svc *services.CartService, t *resp.Translator, jwtSecret string) *CartController {
	return &CartController{Svc: svc, T: t, JWTSecret: jwtSecret}
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	cart, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "cart", cart)
}

// POST /cart/add
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Add(utils.CurrentUserID(c), &req); err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Item added to cart", nil)
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentUserID(c)); err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Cart cleared", nil)
}

// GET /cart/count
//
// Runs outside the auth middleware: a missing or bad token yields count 0
// rather than 401 so the badge never breaks the page.
func (h *CartController) Count(c *gin.Context) {
	count := 0
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if claims, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "), h.JWTSecret); err == nil {
			count = h.Svc.Count(claims.UserID)
		}
	}
	resp.OK(c, "count", count)
}
