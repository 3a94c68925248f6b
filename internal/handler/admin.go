package handler

import (
	"net/http"

	"marketmate-be/internal/user"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users user.Service
}

func NewAdminHandler(users user.Service) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) listShopkeepers(c *gin.Context, approved bool) {
	list, err := h.users.ListShopkeepers(c.Request.Context(), approved)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []user.Account{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) PendingShopkeepers(c *gin.Context) {
	h.listShopkeepers(c, false)
}

func (h *AdminHandler) ApprovedShopkeepers(c *gin.Context) {
	h.listShopkeepers(c, true)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	a, err := h.users.ApproveShopkeeper(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shopkeeper approved successfully",
		"shopkeeper": gin.H{
			"_id":        a.ID,
			"username":   a.Username,
			"email":      a.Email,
			"shopName":   a.ShopName,
			"isApproved": a.IsApproved,
		},
	})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	id, err := h.users.RejectShopkeeper(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Shopkeeper rejected and deleted",
		"deletedId": id,
	})
}
