package handler

import (
	"net/http"

	"marketmate-be/internal/cart"
	"marketmate-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts cart.Service
}

func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// quantity defaults to 1 when the client omits it.
func (r cartLineRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

func accountID(c *gin.Context) string {
	a, _ := middleware.AccountFrom(c)
	return a.ID
}

func (h *CartHandler) Get(c *gin.Context) {
	v, err := h.carts.Get(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) Add(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	v, err := h.carts.Add(c.Request.Context(), accountID(c), req.ProductID, req.quantity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) Update(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}
	if req.Quantity == nil {
		respondError(c, cart.ErrInvalidQuantity)
		return
	}

	v, err := h.carts.Update(c.Request.Context(), accountID(c), req.ProductID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) Remove(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	v, err := h.carts.Remove(c.Request.Context(), accountID(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) Clear(c *gin.Context) {
	v, err := h.carts.Clear(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": v})
}
