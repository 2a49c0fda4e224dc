package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/repository"
	"github.com/januaraliosada/super-delivery/services"
	"github.com/januaraliosada/super-delivery/utils"
)

type AuthController struct {
	Svc       *services.AuthService
	T         *resp.Translator
	JWTSecret string
}

func NewAuthController(svc *services.AuthService, t *resp.Translator, jwtSecret string) *AuthController {
	return &AuthController{Svc: svc, T: t, JWTSecret: jwtSecret}
}

// userView is the public shape of an account.
type userView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	UserType  string `json:"user_type"`
	Address   string `json:"address"`
}

func viewOf(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		UserType:  string(u.UserType),
		Address:   u.DefaultAddress,
	}
}

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req services.RegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.Svc.Register(&req)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.CreatedMessage(c, "User registered successfully", gin.H{
		"user":  viewOf(user),
		"token": token,
	})
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Login successful", gin.H{
		"user":  viewOf(user),
		"token": token,
	})
}

// POST /auth/logout
//
// Tokens are stateless, so logout is client-side; the endpoint exists for
// symmetry.
func (h *AuthController) Logout(c *gin.Context) {
	resp.OKMessage(c, "Logged out successfully", nil)
}

// GET /auth/verify
func (h *AuthController) Verify(c *gin.Context) {
	claims, ok := h.bearerClaims(c)
	if !ok {
		return
	}
	user, err := h.Svc.GetProfile(claims.UserID)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "user", gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"phone":       user.Phone,
		"address":     user.DefaultAddress,
		"user_type":   string(user.UserType),
		"token_valid": true,
	})
}

// POST /auth/refresh
func (h *AuthController) Refresh(c *gin.Context) {
	claims, ok := h.bearerClaims(c)
	if !ok {
		return
	}
	token, err := h.Svc.RefreshToken(claims)
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Token refreshed successfully", gin.H{"token": token})
}

// GET /auth/profile
func (h *AuthController) Profile(c *gin.Context) {
	user, err := h.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OK(c, "user", viewOf(user))
}

// PUT /auth/profile
func (h *AuthController) UpdateProfile(c *gin.Context) {
	var req struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Phone          *string `json:"phone"`
		DefaultAddress *string `json:"default_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := h.Svc.UpdateProfile(utils.CurrentUserID(c), &repository.ProfilePatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		DefaultAddress: req.DefaultAddress,
	})
	if err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Profile updated successfully", gin.H{"user": viewOf(user)})
}

// PUT /auth/change-password
func (h *AuthController) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.ChangePassword(utils.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		h.T.Error(c, err)
		return
	}
	resp.OKMessage(c, "Password changed successfully", nil)
}

// bearerClaims parses the raw Authorization header. Verify and Refresh run
// outside the auth middleware: they must answer about the token itself
// rather than reject at the gate.
func (h *AuthController) bearerClaims(c *gin.Context) (*utils.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		resp.Unauthorized(c, "No token provided")
		return nil, false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	claims, err := utils.ParseToken(token, h.JWTSecret)
	if err != nil {
		resp.Unauthorized(c, "Invalid or expired token")
		return nil, false
	}
	return claims, true
}
