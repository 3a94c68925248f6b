package handler

import (
	"net/http"

	"marketmate-be/internal/middleware"
	"marketmate-be/internal/user"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	ShopName    string `json:"shopName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the flat account-plus-token body returned by register and login.
type sessionResponse struct {
	Message     string     `json:"message"`
	ID          string     `json:"_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        *user.Role `json:"role,omitempty"`
	IsApproved  *bool      `json:"isApproved,omitempty"`
	ShopName    string     `json:"shopName,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Address     string     `json:"address,omitempty"`
	Token       string     `json:"token"`
}

func newSession(message string, a *user.Account, token string) sessionResponse {
	return sessionResponse{
		Message:     message,
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		ShopName:    a.ShopName,
		PhoneNumber: a.PhoneNumber,
		Address:     a.Address,
		Token:       token,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	a, token, err := h.users.Register(c.Request.Context(), user.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		ShopName:    req.ShopName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newSession("Registration successful", a, token)
	resp.Role = &a.Role
	resp.IsApproved = &a.IsApproved
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	a, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSession("Login successful", a, token))
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	a, token, err := h.users.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newSession("Admin login successful", a, token)
	resp.Role = &a.Role
	resp.IsApproved = &a.IsApproved
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	a, ok := middleware.AccountFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": middleware.MsgNoToken})
		return
	}

	profile, err := h.users.Profile(c.Request.Context(), a.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
