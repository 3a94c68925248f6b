package middleware

import (
	"net/http"
	"slices"

	"marketmate-be/internal/user"

	"github.com/gin-gonic/gin"
)

const (
	MsgForbidden          = "Not authorized for this action"
	MsgShopkeeperOnly     = "Only shopkeepers can perform this action"
	MsgShopkeeperNotReady = "Shopkeeper account not approved by admin yet"
)

// RequireRole admits only accounts whose role is listed.
// It must run after Authenticate.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := AccountFrom(c)
		if !ok || !slices.Contains(roles, a.Role) {
			abortMessage(c, http.StatusForbidden, MsgForbidden)
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin)
}

// RequireShopper admits accounts allowed to use a cart and place orders.
func RequireShopper() gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := AccountFrom(c)
		if !ok || !a.Role.CanShop() {
			abortMessage(c, http.StatusForbidden, MsgForbidden)
			return
		}
		if !a.CanShop() {
			abortMessage(c, http.StatusForbidden, MsgShopkeeperNotReady)
			return
		}
		c.Next()
	}
}

func RequireApprovedShopkeeper() gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := AccountFrom(c)
		if !ok || !a.Role.CanManageCatalog() {
			abortMessage(c, http.StatusForbidden, MsgShopkeeperOnly)
			return
		}
		if !a.IsApproved {
			abortMessage(c, http.StatusForbidden, MsgShopkeeperNotReady)
			return
		}
		c.Next()
	}
}
